//go:build unix

package harness

import (
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

func notifySuspend(flag *atomic.Bool) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, unix.SIGUSR1)
	go func() {
		for range c {
			flag.Store(true)
		}
	}()
}
