package harness

import (
	"errors"
	"fmt"
	"os"
)

const (
	ExitSuccess   = 0
	ExitFailure   = 1
	ExitSuspended = 75
)

// Execute restores state from args, enters the driver and runs execute.
// A nil state marks a program that cannot be resumed and takes no arguments.
func Execute(driver Driver, state *State, args []string, execute func(Driver) error) error {
	if state == nil {
		if len(args) > 0 {
			return fmt.Errorf("%w: program is not resumable", ErrArgs)
		}
	} else {
		checkpoint, err := Restore(args, state.LastPosition, len(state.Tape))
		if err != nil {
			return err
		}
		if checkpoint != nil {
			*state.Position = checkpoint.Position
			*state.Pointer = checkpoint.Pointer
			copy(state.Tape, checkpoint.Tape)
		}
		if b, ok := driver.(binder); ok {
			b.Bind(state)
		}
	}

	if err := driver.Enter(); err != nil {
		return err
	}
	return execute(driver)
}

func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrSuspended):
		return ExitSuspended
	}
	return ExitFailure
}

func Main(driver Driver, state *State, execute func(Driver) error) {
	err := Execute(driver, state, os.Args[1:], execute)
	if err != nil && !errors.Is(err, ErrSuspended) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(ExitCode(err))
}
