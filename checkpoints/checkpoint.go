package checkpoints

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var ErrBadCheckpoint = errors.New("bad checkpoint")

// Checkpoint is the state needed to restart a program at a re-entry label.
// Position 0 is the program start, position k is the k-th I/O instruction, which runs next.
type Checkpoint struct {
	Position int
	Pointer  int
	Tape     []byte
}

func (c *Checkpoint) Validate(lastPosition int, tapeLength int) error {
	if c.Position < 0 || c.Position > lastPosition {
		return fmt.Errorf("%w: position %d out of range 0..%d", ErrBadCheckpoint, c.Position, lastPosition)
	}
	if c.Pointer < 0 || c.Pointer >= tapeLength {
		return fmt.Errorf("%w: pointer %d out of range 0..%d", ErrBadCheckpoint, c.Pointer, tapeLength-1)
	}
	if len(c.Tape) != tapeLength {
		return fmt.Errorf("%w: tape has %d bytes, want %d", ErrBadCheckpoint, len(c.Tape), tapeLength)
	}
	return nil
}

// ReadCheckpoint decodes a restart descriptor, two whitespace-separated unsigned integers,
// and a raw tape snapshot of exactly tapeLength bytes.
func ReadCheckpoint(descriptor io.Reader, snapshot io.Reader, lastPosition int, tapeLength int) (*Checkpoint, error) {
	var positionText, pointerText string
	if _, err := fmt.Fscan(descriptor, &positionText, &pointerText); err != nil {
		return nil, fmt.Errorf("%w: descriptor: %v", ErrBadCheckpoint, err)
	}
	// plain decimal only, no sign, base prefix or digit separator
	position, err := strconv.ParseUint(positionText, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: descriptor position: %v", ErrBadCheckpoint, err)
	}
	pointer, err := strconv.ParseUint(pointerText, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: descriptor pointer: %v", ErrBadCheckpoint, err)
	}
	if position > uint64(lastPosition) {
		return nil, fmt.Errorf("%w: position %d out of range 0..%d", ErrBadCheckpoint, position, lastPosition)
	}
	if pointer >= uint64(tapeLength) {
		return nil, fmt.Errorf("%w: pointer %d out of range 0..%d", ErrBadCheckpoint, pointer, tapeLength-1)
	}

	tape := make([]byte, tapeLength)
	if _, err := io.ReadFull(snapshot, tape); err != nil {
		return nil, fmt.Errorf("%w: snapshot: %v", ErrBadCheckpoint, err)
	}
	var extra [1]byte
	if _, err := io.ReadFull(snapshot, extra[:]); err == nil {
		return nil, fmt.Errorf("%w: snapshot longer than %d bytes", ErrBadCheckpoint, tapeLength)
	} else if !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: snapshot: %v", ErrBadCheckpoint, err)
	}

	return &Checkpoint{
		Position: int(position),
		Pointer:  int(pointer),
		Tape:     tape,
	}, nil
}

func WriteCheckpoint(descriptor io.Writer, snapshot io.Writer, checkpoint *Checkpoint) error {
	if _, err := fmt.Fprintf(descriptor, "%d %d\n", checkpoint.Position, checkpoint.Pointer); err != nil {
		return err
	}
	if _, err := snapshot.Write(checkpoint.Tape); err != nil {
		return err
	}
	return nil
}
