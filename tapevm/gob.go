package tapevm

import (
	"encoding/gob"
	"io"

	"github.com/reusee/tapec/tapelang"
)

type machineState struct {
	Program  *tapelang.Program
	Tape     []byte
	Pointer  int
	PC       int
	Position int
	Stack    []int
}

// Snapshot encodes the machine, program included. Input and Output are not encoded.
func (m *Machine) Snapshot(w io.Writer) error {
	return gob.NewEncoder(w).Encode(machineState{
		Program:  m.Program,
		Tape:     m.Tape,
		Pointer:  m.Pointer,
		PC:       m.PC,
		Position: m.Position,
		Stack:    m.Stack,
	})
}

// Restore replaces the machine state with a snapshot, keeping Input and Output.
func (m *Machine) Restore(r io.Reader) error {
	var state machineState
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return err
	}
	m.Program = state.Program
	m.Tape = state.Tape
	m.Pointer = state.Pointer
	m.PC = state.PC
	m.Position = state.Position
	m.Stack = state.Stack
	return nil
}
