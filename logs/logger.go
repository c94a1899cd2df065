package logs

import (
	"context"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/reusee/tapec/cmds"
	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

var (
	level     = new(slog.LevelVar)
	useJSON   = cmds.Switch("-log-json", "write terminal logs as json")
	noJournal = cmds.Switch("-log-no-journal", "do not send logs to the systemd journal")
)

func init() {
	level.Set(slog.LevelWarn)
	for name, l := range map[string]slog.Level{
		"-log-debug": slog.LevelDebug,
		"-log-info":  slog.LevelInfo,
		"-log-warn":  slog.LevelWarn,
		"-log-error": slog.LevelError,
	} {
		cmds.Define(name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+strings.ToLower(l.String())))
	}
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
) Logger {
	var handlers []slog.Handler

	// terminal
	var terminalHandler slog.Handler
	if !underSystemd() {
		options := &slog.HandlerOptions{
			Level: level,
		}
		if *useJSON {
			terminalHandler = slog.NewJSONHandler(writer, options)
		} else {
			terminalHandler = slog.NewTextHandler(writer, options)
		}
		handlers = append(handlers, terminalHandler)
	}

	// systemd journal
	if !*noJournal {
		journalHandler, err := slogjournal.NewHandler(&slogjournal.Options{
			Level:        level,
			ReplaceGroup: toJournalKey,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if terminalHandler != nil {
				record := slog.NewRecord(time.Now(), slog.LevelWarn, "journal unavailable", 0)
				record.Add("error", err)
				_ = terminalHandler.Handle(context.Background(), record)
			}
		} else {
			handlers = append(handlers, journalHandler)
		}
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func toJournalKey(str string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, strings.ToUpper(str))
}

func underSystemd() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	for line := range strings.SplitSeq(strings.TrimSpace(string(content)), "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) == 3 && strings.HasSuffix(path.Dir(parts[2]), ".service") {
			return true
		}
	}
	return false
}
