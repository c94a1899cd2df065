package tapeconfigs

import (
	"errors"
	"fmt"

	"github.com/reusee/tapec/configs"
)

var ErrInvalid = errors.New("invalid configuration")

// Validate checks config files against the schema and flags against the same bounds.
type Validate func() error

func (Module) Validate(
	loader configs.Loader,
) Validate {
	return func() error {
		if err := loader.Check(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return checkFlags()
	}
}

func checkFlags() error {
	var errs []error
	nonNegative := func(name string, n int) {
		if n < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalid, name, n))
		}
	}
	if p := *maxCodeLengthFlag; p != nil {
		nonNegative("-max-code-length", int(*p))
	}
	if p := *maxLoopDepthFlag; p != nil && *p < -1 {
		errs = append(errs, fmt.Errorf("%w: -max-loop-depth must be -1 or more, got %d", ErrInvalid, *p))
	}
	if p := *maxReentryPointsFlag; p != nil {
		nonNegative("-max-reentry-points", int(*p))
	}
	if p := *lineWidthFlag; p != nil {
		nonNegative("-line-width", int(*p))
	}
	if p := *tapeLengthFlag; p != nil && *p < 1 {
		errs = append(errs, fmt.Errorf("%w: -tape-length must be positive, got %d", ErrInvalid, *p))
	}
	if p := *checkpointStoreFlag; p != nil {
		switch *p {
		case FileCheckpointStore, SQLiteCheckpointStore:
		default:
			errs = append(errs, fmt.Errorf("%w: unknown checkpoint store %q", ErrInvalid, *p))
		}
	}
	return errors.Join(errs...)
}
