package tapego

import (
	"bytes"
	"fmt"
	"io"

	"github.com/reusee/tapec/tapelang"
	"github.com/reusee/tapec/vars"
	"golang.org/x/tools/imports"
)

type Options struct {
	TapeLength       int
	Resumable        bool
	MaxReentryPoints int
	Sandboxed        bool
	// LineWidth is the column budget of packed statements, DefaultLineWidth if zero.
	LineWidth int
	// Format runs the output through gofmt and goimports.
	Format bool
	// Emitter renders the source file, DefaultEmitter if nil.
	Emitter Emitter
	// Name is the source path recorded in the header.
	Name string
}

// Generate writes a complete main package running program.
// Nothing is written if any step fails.
func Generate(w io.Writer, program *tapelang.Program, options Options) error {
	width := vars.FirstNonZero(options.LineWidth, DefaultLineWidth)

	var unit string
	var err error
	if options.Resumable {
		unit, err = translateResumable(program, options.TapeLength, options.MaxReentryPoints, width)
	} else {
		unit, err = translateDirect(program, options.TapeLength, width)
	}
	if err != nil {
		return err
	}

	emitter := vars.FirstNonZero[Emitter](options.Emitter, DefaultEmitter)
	buf := new(bytes.Buffer)
	if err := emitter.Emit(buf, Unit{
		Name:        options.Name,
		Fingerprint: program.Fingerprint(),
		Resumable:   options.Resumable,
		Sandboxed:   options.Sandboxed,
		Unit:        unit,
	}); err != nil {
		return fmt.Errorf("emit: %w", err)
	}

	src := buf.Bytes()
	if options.Format {
		src, err = imports.Process(vars.FirstNonZero(options.Name, "main.go"), src, &imports.Options{
			Comments:   true,
			TabIndent:  true,
			TabWidth:   8,
			FormatOnly: true,
		})
		if err != nil {
			return fmt.Errorf("format: %w", err)
		}
	}

	_, err = w.Write(src)
	return err
}
