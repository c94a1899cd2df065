package tapevm

import (
	"io"

	"github.com/reusee/tapec/tapelang"
)

// Run executes program over tape and returns the final pointer offset.
// Cells written before a failure keep their values.
func Run(program *tapelang.Program, tape []byte, read io.ByteReader, write io.ByteWriter) (int, error) {
	m := &Machine{
		Program: program,
		Tape:    tape,
		Input:   read,
		Output:  write,
	}
	for _, err := range m.Run {
		if err != nil {
			return m.Pointer, err
		}
	}
	return m.Pointer, nil
}
