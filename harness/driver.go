// Package harness is the runtime linked into generated programs.
package harness

import "errors"

var (
	ErrTooLeft            = errors.New("pointer out of bounds: moving left")
	ErrTooRight           = errors.New("pointer out of bounds: moving right")
	ErrInput              = errors.New("input error")
	ErrOutput             = errors.New("output error")
	ErrPosition           = errors.New("bad re-entry position")
	ErrSuspended          = errors.New("suspended")
	ErrSandboxUnsupported = errors.New("sandbox not supported on this platform")
	ErrArgs               = errors.New("bad arguments")
)

// Driver moves bytes between a running program and its environment.
type Driver interface {
	// Enter is called once, after restoring state and before the first instruction.
	Enter() error
	Read(*byte) error
	Write(byte) error
}

// State exposes the variables of a resumable program.
type State struct {
	Position     *int
	Pointer      *int
	Tape         []byte
	LastPosition int
}

// binder is implemented by drivers able to suspend a resumable program.
type binder interface {
	Bind(*State)
}
