package tapevm

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/reusee/dscope"
	"github.com/reusee/tapec/checkpoints"
	"github.com/reusee/tapec/debugs"
	"github.com/reusee/tapec/logs"
	"github.com/reusee/tapec/tapeconfigs"
	"github.com/reusee/tapec/tapelang"
)

type Module struct {
	dscope.Module
}

// ResumeID names a stored checkpoint to continue from. Empty means a fresh run.
type ResumeID string

func (Module) ResumeID() ResumeID {
	return ""
}

type Result struct {
	Pointer int
	Tape    []byte
	// Checkpoint is set when the run was suspended.
	Checkpoint *checkpoints.Record
}

// Execute runs a program against in and out.
// When ctx is done the machine stops at the next I/O boundary,
// stores a checkpoint and returns ErrSuspended.
type Execute func(ctx context.Context, program *tapelang.Program, in io.Reader, out io.Writer) (Result, error)

func (Module) Execute(
	logger logs.Logger,
	newSpan logs.NewSpan,
	tapeLength tapeconfigs.TapeLength,
	store checkpoints.Store,
	resumeID ResumeID,
	tapOnFailure debugs.TapOnFailure,
	tap debugs.Tap,
) Execute {
	return func(ctx context.Context, program *tapelang.Program, in io.Reader, out io.Writer) (Result, error) {
		ctx, _ = newSpan(ctx, "")

		machine, err := prepare(ctx, program, int(tapeLength), store, resumeID)
		if err != nil {
			return Result{}, logs.WrapSpan(ctx, err)
		}
		if resumeID != "" {
			logger.InfoContext(ctx, "resume",
				"checkpoint", resumeID,
				"position", machine.Position,
			)
		}

		output := bufio.NewWriter(out)
		machine.Input = bufio.NewReader(in)
		machine.Output = flushWriter{output}

		for interrupt, err := range machine.Run {
			if err != nil {
				logger.ErrorContext(ctx, "execution failed",
					"error", err,
					"pc", machine.PC,
					"pointer", machine.Pointer,
				)
				if tapOnFailure {
					tap(ctx, "execution failed", map[string]any{
						"error":   err.Error(),
						"program": program.String(),
						"tape":    machine.Tape,
						"pointer": machine.Pointer,
						"pc":      machine.PC,
						"stack":   machine.Stack,
					})
				}
				return Result{Pointer: machine.Pointer, Tape: machine.Tape}, logs.WrapSpan(ctx, err)
			}

			if ctx.Err() == nil {
				continue
			}
			record, err := suspend(ctx, machine, store)
			if err != nil {
				return Result{Pointer: machine.Pointer, Tape: machine.Tape}, logs.WrapSpan(ctx, err)
			}
			logger.InfoContext(ctx, "suspended",
				"checkpoint", record.ID,
				"position", interrupt.Position,
			)
			return Result{
				Pointer:    machine.Pointer,
				Tape:       machine.Tape,
				Checkpoint: record,
			}, ErrSuspended
		}

		if resumeID != "" {
			if err := store.Delete(ctx, string(resumeID)); err != nil {
				logger.WarnContext(ctx, "delete checkpoint", "error", err)
			}
		}
		logger.DebugContext(ctx, "execution done",
			"pointer", machine.Pointer,
		)
		return Result{Pointer: machine.Pointer, Tape: machine.Tape}, nil
	}
}

func prepare(ctx context.Context, program *tapelang.Program, tapeLength int, store checkpoints.Store, resumeID ResumeID) (*Machine, error) {
	if tapeLength < 1 {
		return nil, ErrEmptyTape
	}
	if resumeID == "" {
		return NewMachine(program, tapeLength), nil
	}
	record, err := store.Load(ctx, string(resumeID))
	if err != nil {
		return nil, err
	}
	if record.Program != program.Fingerprint() {
		return nil, fmt.Errorf("%w: %s", ErrProgram, resumeID)
	}
	if err := record.Validate(program.LastPosition(), tapeLength); err != nil {
		return nil, err
	}
	return Resume(program, &record.Checkpoint)
}

func suspend(ctx context.Context, machine *Machine, store checkpoints.Store) (*checkpoints.Record, error) {
	checkpoint, err := machine.Checkpoint()
	if err != nil {
		return nil, err
	}
	record := &checkpoints.Record{
		Program:    machine.Program.Fingerprint(),
		Checkpoint: *checkpoint,
	}
	// the run context is done
	if err := store.Save(context.WithoutCancel(ctx), record); err != nil {
		return nil, err
	}
	return record, nil
}

type flushWriter struct {
	*bufio.Writer
}

func (f flushWriter) WriteByte(b byte) error {
	if err := f.Writer.WriteByte(b); err != nil {
		return err
	}
	return f.Flush()
}

var _ io.ByteWriter = flushWriter{}

// IsSuspended reports whether err is a suspension rather than a failure.
func IsSuspended(err error) bool {
	return errors.Is(err, ErrSuspended)
}
