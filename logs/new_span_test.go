package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestNewSpan(t *testing.T) {
	level.Set(slog.LevelDebug)
	defer level.Set(slog.LevelWarn)

	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		newSpan NewSpan,
	) {
		ctx := context.Background()
		ctx1, compile := newSpan(ctx, "")
		ctx2, execute := newSpan(ctx1, "")
		_, resume := newSpan(ctx2, compile)

		var lines []string
		for line := range strings.SplitSeq(buf.String(), "\n") {
			if strings.Contains(line, "new span") {
				lines = append(lines, line)
			}
		}
		if len(lines) != 3 {
			t.Fatalf("got %v", lines)
		}
		if !strings.Contains(lines[0], "span="+string(compile)) {
			t.Fatalf("got %v", lines[0])
		}
		if strings.Contains(lines[0], "parent=") {
			t.Fatalf("got %v", lines[0])
		}
		if !strings.Contains(lines[1], "span="+string(execute)) ||
			!strings.Contains(lines[1], "parent="+string(compile)) {
			t.Fatalf("got %v", lines[1])
		}
		if !strings.Contains(lines[2], "span="+string(resume)) ||
			!strings.Contains(lines[2], "parent="+string(compile)) ||
			!strings.Contains(lines[2], "creator="+string(execute)) {
			t.Fatalf("got %v", lines[2])
		}
	})
}
