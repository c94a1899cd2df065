package tapelang

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/reusee/dscope"
	"github.com/reusee/tapec/logs"
	"github.com/reusee/tapec/tapeconfigs"
)

type Module struct {
	dscope.Module
}

type Load func(ctx context.Context, path string) (*Program, error)

func (Module) Load(
	logger logs.Logger,
	maxLength tapeconfigs.MaxCodeLength,
	maxDepth tapeconfigs.MaxLoopDepth,
) Load {
	return func(ctx context.Context, path string) (*Program, error) {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		program, err := load(ctx, logger, path, file, Limits{
			MaxLength:    int(maxLength),
			MaxLoopDepth: maxDepth.Limit(),
		})
		if err != nil {
			return nil, logs.WrapSpan(ctx, err)
		}
		return program, nil
	}
}

// sniffLength is the prefix inspected for the MIME type, mimetype's default read limit.
const sniffLength = 3072

// load parses from r, reading no more than the limits need.
func load(ctx context.Context, logger logs.Logger, name string, r io.Reader, limits Limits) (*Program, error) {
	reader := bufio.NewReaderSize(r, sniffLength)

	prefix, err := reader.Peek(sniffLength)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if !looksLikeText(prefix) {
		logger.WarnContext(ctx, "source does not look like text",
			"path", name,
			"mime", mimetype.Detect(prefix).String(),
		)
	}

	program, err := Parse(reader, limits)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	logger.DebugContext(ctx, "program loaded",
		"path", name,
		"instructions", program.Len(),
		"loops", len(program.Loops()),
		"ios", len(program.IOs),
	)

	return program, nil
}

func looksLikeText(content []byte) bool {
	if len(content) == 0 {
		return true
	}
	for mtype := mimetype.Detect(content); mtype != nil; mtype = mtype.Parent() {
		if mtype.Is("text/plain") {
			return true
		}
	}
	return false
}
