package checkpoints

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCheckpointCodec(t *testing.T) {
	checkpoint := &Checkpoint{
		Position: 3,
		Pointer:  1,
		Tape:     []byte{0, 16, 255, 7},
	}
	descriptor := new(bytes.Buffer)
	snapshot := new(bytes.Buffer)
	if err := WriteCheckpoint(descriptor, snapshot, checkpoint); err != nil {
		t.Fatal(err)
	}
	if descriptor.String() != "3 1\n" {
		t.Fatalf("got %q", descriptor.String())
	}

	got, err := ReadCheckpoint(descriptor, snapshot, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got.Position != 3 || got.Pointer != 1 || !bytes.Equal(got.Tape, checkpoint.Tape) {
		t.Fatalf("got %+v", got)
	}
}

func TestReadCheckpointErrors(t *testing.T) {
	cases := []struct {
		name       string
		descriptor string
		snapshot   string
	}{
		{"empty descriptor", "", "abcd"},
		{"one number", "1", "abcd"},
		{"not a number", "x 1", "abcd"},
		{"negative", "-1 0", "abcd"},
		{"position out of range", "3 0", "abcd"},
		{"pointer out of range", "0 4", "abcd"},
		{"short snapshot", "0 0", "abc"},
		{"long snapshot", "0 0", "abcde"},
		{"hex position", "0x1 0", "abcd"},
		{"binary pointer", "0 0b1", "abcd"},
		{"digit separator", "0_1 0", "abcd"},
		{"plus sign", "+1 0", "abcd"},
		{"trailing garbage", "1x 0", "abcd"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ReadCheckpoint(
				strings.NewReader(c.descriptor),
				strings.NewReader(c.snapshot),
				2, 4,
			)
			if !errors.Is(err, ErrBadCheckpoint) {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestReadCheckpointWhitespace(t *testing.T) {
	got, err := ReadCheckpoint(
		strings.NewReader("  2\n\t3  \n"),
		strings.NewReader("abcd"),
		2, 4,
	)
	if err != nil {
		t.Fatal(err)
	}
	if got.Position != 2 || got.Pointer != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestValidate(t *testing.T) {
	checkpoint := &Checkpoint{
		Position: 1,
		Pointer:  0,
		Tape:     make([]byte, 8),
	}
	if err := checkpoint.Validate(1, 8); err != nil {
		t.Fatal(err)
	}
	if err := checkpoint.Validate(0, 8); !errors.Is(err, ErrBadCheckpoint) {
		t.Fatalf("got %v", err)
	}
	if err := checkpoint.Validate(1, 16); !errors.Is(err, ErrBadCheckpoint) {
		t.Fatalf("got %v", err)
	}
	checkpoint.Pointer = 8
	if err := checkpoint.Validate(1, 8); !errors.Is(err, ErrBadCheckpoint) {
		t.Fatalf("got %v", err)
	}
}
