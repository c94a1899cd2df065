package tapego

import (
	"context"
	"io"

	"github.com/reusee/dscope"
	"github.com/reusee/tapec/logs"
	"github.com/reusee/tapec/tapeconfigs"
	"github.com/reusee/tapec/tapelang"
)

type Module struct {
	dscope.Module
}

// Compile generates a program with the configured options.
type Compile func(ctx context.Context, w io.Writer, program *tapelang.Program, name string) error

func (Module) Compile(
	logger logs.Logger,
	tapeLength tapeconfigs.TapeLength,
	resumable tapeconfigs.Resumable,
	maxReentryPoints tapeconfigs.MaxReentryPoints,
	sandboxed tapeconfigs.Sandboxed,
	lineWidth tapeconfigs.LineWidth,
	format tapeconfigs.Format,
	emitter Emitter,
) Compile {
	return func(ctx context.Context, w io.Writer, program *tapelang.Program, name string) error {
		options := Options{
			TapeLength:       int(tapeLength),
			Resumable:        bool(resumable),
			MaxReentryPoints: int(maxReentryPoints),
			Sandboxed:        bool(sandboxed),
			LineWidth:        int(lineWidth),
			Format:           bool(format),
			Emitter:          emitter,
			Name:             name,
		}
		if err := Generate(w, program, options); err != nil {
			return logs.WrapSpan(ctx, err)
		}
		logger.InfoContext(ctx, "program generated",
			"name", name,
			"fingerprint", program.Fingerprint(),
			"resumable", options.Resumable,
			"sandboxed", options.Sandboxed,
			"reentry_points", program.LastPosition()+1,
		)
		return nil
	}
}

func (Module) Emitter() Emitter {
	return DefaultEmitter
}
