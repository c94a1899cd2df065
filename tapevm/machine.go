package tapevm

import (
	"fmt"
	"io"
	"slices"

	"github.com/reusee/tapec/checkpoints"
	"github.com/reusee/tapec/tapelang"
)

type Machine struct {
	Program *tapelang.Program
	Tape    []byte
	Pointer int
	// PC is the index of the next instruction.
	PC int
	// Position is the label of the last I/O boundary reached, 0 before any.
	Position int
	// Stack holds the LoopStart indices of the loops being iterated.
	Stack []int

	Input  io.ByteReader
	Output io.ByteWriter
}

func NewMachine(program *tapelang.Program, tapeLength int) *Machine {
	return &Machine{
		Program: program,
		Tape:    make([]byte, tapeLength),
	}
}

// Resume returns a machine stopped at the checkpoint's re-entry label.
// The open loop stack is rebuilt from the jump table, loop conditions re-test the restored tape.
func Resume(program *tapelang.Program, checkpoint *checkpoints.Checkpoint) (*Machine, error) {
	if len(checkpoint.Tape) == 0 {
		return nil, ErrEmptyTape
	}
	if err := checkpoint.Validate(program.LastPosition(), len(checkpoint.Tape)); err != nil {
		return nil, err
	}
	pc := 0
	if checkpoint.Position > 0 {
		pc = program.IOs[checkpoint.Position-1]
	}
	return &Machine{
		Program:  program,
		Tape:     slices.Clone(checkpoint.Tape),
		Pointer:  checkpoint.Pointer,
		PC:       pc,
		Position: checkpoint.Position,
		Stack:    program.Enclosing(pc),
	}, nil
}

// Done reports whether the program has run to completion.
func (m *Machine) Done() bool {
	return m.PC >= len(m.Program.Instructions)
}

// Checkpoint captures the machine state at the program start or at an I/O boundary.
func (m *Machine) Checkpoint() (*checkpoints.Checkpoint, error) {
	atStart := m.Position == 0 && m.PC == 0 && len(m.Stack) == 0
	atBoundary := m.Position > 0 && m.Program.IOs[m.Position-1] == m.PC
	if !atStart && !atBoundary {
		return nil, fmt.Errorf("%w: pc %d", ErrNotAtBoundary, m.PC)
	}
	return &checkpoints.Checkpoint{
		Position: m.Position,
		Pointer:  m.Pointer,
		Tape:     slices.Clone(m.Tape),
	}, nil
}

// Run executes until completion, an error, or the consumer declining an interrupt.
// An error ends the run. The failing instruction has no effect on the tape.
func (m *Machine) Run(yield func(*Interrupt, error) bool) {
	if len(m.Tape) == 0 {
		yield(nil, ErrEmptyTape)
		return
	}

	program := m.Program
	last := len(m.Tape) - 1

	for m.PC < len(program.Instructions) {
		switch program.Instructions[m.PC] {

		case tapelang.LoopStart:
			if m.Tape[m.Pointer] == 0 {
				m.PC = program.Jumps[m.PC] + 1
				continue
			}
			m.Stack = append(m.Stack, m.PC)

		case tapelang.LoopEnd:
			m.PC = m.Stack[len(m.Stack)-1]
			m.Stack = m.Stack[:len(m.Stack)-1]
			continue

		case tapelang.Read:
			m.Position = program.Label(m.PC)
			if !yield(&Interrupt{Position: m.Position}, nil) {
				return
			}
			b, err := m.Input.ReadByte()
			if err != nil {
				yield(nil, fmt.Errorf("%w: %w", ErrInput, err))
				return
			}
			m.Tape[m.Pointer] = b

		case tapelang.Write:
			m.Position = program.Label(m.PC)
			if !yield(&Interrupt{Position: m.Position}, nil) {
				return
			}
			if err := m.Output.WriteByte(m.Tape[m.Pointer]); err != nil {
				yield(nil, fmt.Errorf("%w: %w", ErrOutput, err))
				return
			}

		case tapelang.Decrement:
			m.Tape[m.Pointer]--

		case tapelang.Increment:
			m.Tape[m.Pointer]++

		case tapelang.MoveLeft:
			if m.Pointer == 0 {
				yield(nil, &OutOfBoundsError{
					Direction: Left,
					PC:        m.PC,
				})
				return
			}
			m.Pointer--

		case tapelang.MoveRight:
			if m.Pointer == last {
				yield(nil, &OutOfBoundsError{
					Direction: Right,
					PC:        m.PC,
				})
				return
			}
			m.Pointer++

		}
		m.PC++
	}
}
