package tapevm

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds   = errors.New("pointer out of bounds")
	ErrInput         = errors.New("input error")
	ErrOutput        = errors.New("output error")
	ErrEmptyTape     = errors.New("empty tape")
	ErrNotAtBoundary = errors.New("machine is not at an I/O boundary")
	ErrSuspended     = errors.New("suspended")
	ErrProgram       = errors.New("checkpoint belongs to another program")
)

type Direction uint8

const (
	Left Direction = iota + 1
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// OutOfBoundsError is returned when a move would leave the tape.
// The pointer and tape are left as they were before the move.
type OutOfBoundsError struct {
	Direction Direction
	// PC is the index of the failing instruction.
	PC int
}

func (o *OutOfBoundsError) Error() string {
	return fmt.Sprintf("pointer out of bounds: moving %s at instruction %d", o.Direction, o.PC)
}

func (o *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
