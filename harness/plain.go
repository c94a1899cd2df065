package harness

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/reusee/tapec/checkpoints"
)

const (
	EnvSuspendAfter = "TAPEC_SUSPEND_AFTER"
	EnvCheckpoint   = "TAPEC_CHECKPOINT"
)

// Plain uses buffered streams and flushes after every write.
// Bound to a resumable program it suspends at the next I/O boundary
// after SIGUSR1 or after SuspendAfter completed I/O operations.
type Plain struct {
	// CheckpointPrefix names the checkpoint pair, PREFIX.pos and PREFIX.tape.
	CheckpointPrefix string
	SuspendAfter     int

	in        *bufio.Reader
	out       *bufio.Writer
	state     *State
	ops       int
	requested atomic.Bool
}

var _ Driver = new(Plain)

func NewPlain() *Plain {
	return NewPlainWith(os.Stdin, os.Stdout)
}

func NewPlainWith(in io.Reader, out io.Writer) *Plain {
	return &Plain{
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
	}
}

func (p *Plain) Bind(state *State) {
	p.state = state
}

func (p *Plain) Enter() error {
	if p.state == nil {
		return nil
	}
	if p.CheckpointPrefix == "" {
		p.CheckpointPrefix = os.Getenv(EnvCheckpoint)
	}
	if p.CheckpointPrefix == "" {
		p.CheckpointPrefix = "checkpoint"
	}
	if v := os.Getenv(EnvSuspendAfter); v != "" && p.SuspendAfter == 0 {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s=%q", ErrArgs, EnvSuspendAfter, v)
		}
		p.SuspendAfter = n
	}
	notifySuspend(&p.requested)
	return nil
}

// Suspend requests a suspension at the next I/O boundary.
func (p *Plain) Suspend() {
	p.requested.Store(true)
}

func (p *Plain) boundary() error {
	if p.state == nil {
		return nil
	}
	if !p.requested.Load() && (p.SuspendAfter == 0 || p.ops < p.SuspendAfter) {
		return nil
	}
	if err := checkpoints.WriteFiles(
		p.CheckpointPrefix+".pos",
		p.CheckpointPrefix+".tape",
		&checkpoints.Checkpoint{
			Position: *p.state.Position,
			Pointer:  *p.state.Pointer,
			Tape:     p.state.Tape,
		},
	); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return ErrSuspended
}

func (p *Plain) Read(b *byte) error {
	if err := p.boundary(); err != nil {
		return err
	}
	c, err := p.in.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	*b = c
	p.ops++
	return nil
}

func (p *Plain) Write(b byte) error {
	if err := p.boundary(); err != nil {
		return err
	}
	if err := p.out.WriteByte(b); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := p.out.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	p.ops++
	return nil
}
