package tapevm

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/reusee/tapec/checkpoints"
	"github.com/reusee/tapec/tapelang"
)

// repeats every input byte three times until a zero byte
const tripleSource = ",[>+++[<.>-]<,]"

const tripleInput = "abc\x00"

func TestMachineInterrupts(t *testing.T) {
	program := tapelang.MustParse(tripleSource)
	machine := NewMachine(program, 2)
	machine.Input = strings.NewReader(tripleInput)
	out := new(bytes.Buffer)
	machine.Output = out

	var positions []int
	for interrupt, err := range machine.Run {
		if err != nil {
			t.Fatal(err)
		}
		positions = append(positions, interrupt.Position)
	}
	if !machine.Done() {
		t.Fatal()
	}
	if out.String() != "aaabbbccc" {
		t.Fatalf("got %q", out.String())
	}
	want := []int{1, 2, 2, 2, 3, 2, 2, 2, 3, 2, 2, 2, 3}
	if !slices.Equal(positions, want) {
		t.Fatalf("got %v", positions)
	}
}

func TestMachineResumeRoundTrip(t *testing.T) {
	program := tapelang.MustParse(tripleSource)

	for stop := range 13 {
		input := strings.NewReader(tripleInput)
		out := new(bytes.Buffer)

		machine := NewMachine(program, 2)
		machine.Input = input
		machine.Output = out
		n := 0
		for _, err := range machine.Run {
			if err != nil {
				t.Fatal(err)
			}
			if n == stop {
				break
			}
			n++
		}
		if machine.Done() {
			t.Fatalf("stop %d: done", stop)
		}

		checkpoint, err := machine.Checkpoint()
		if err != nil {
			t.Fatal(err)
		}

		resumed, err := Resume(program, checkpoint)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(resumed.Stack, machine.Stack) {
			t.Fatalf("stop %d: stack %v, want %v", stop, resumed.Stack, machine.Stack)
		}
		resumed.Input = input
		resumed.Output = out
		for _, err := range resumed.Run {
			if err != nil {
				t.Fatal(err)
			}
		}
		if out.String() != "aaabbbccc" {
			t.Fatalf("stop %d: got %q", stop, out.String())
		}
	}
}

func TestMachineCheckpointBoundary(t *testing.T) {
	// no I/O, so only the start is a boundary
	machine := NewMachine(tapelang.MustParse("+>+"), 2)
	checkpoint, err := machine.Checkpoint()
	if err != nil {
		t.Fatal(err)
	}
	if checkpoint.Position != 0 {
		t.Fatal()
	}
	for _, err := range machine.Run {
		if err != nil {
			t.Fatal(err)
		}
	}
	if _, err := machine.Checkpoint(); !errors.Is(err, ErrNotAtBoundary) {
		t.Fatalf("got %v", err)
	}
}

func TestMachineCheckpointIsCopy(t *testing.T) {
	machine := NewMachine(tapelang.MustParse("+"), 1)
	checkpoint, err := machine.Checkpoint()
	if err != nil {
		t.Fatal(err)
	}
	machine.Tape[0] = 42
	if checkpoint.Tape[0] != 0 {
		t.Fatal()
	}
}

func TestResumeErrors(t *testing.T) {
	program := tapelang.MustParse(",.")
	_, err := Resume(program, &checkpoints.Checkpoint{
		Position: 3,
		Tape:     make([]byte, 1),
	})
	if !errors.Is(err, checkpoints.ErrBadCheckpoint) {
		t.Fatalf("got %v", err)
	}
	_, err = Resume(program, &checkpoints.Checkpoint{
		Pointer: 1,
		Tape:    make([]byte, 1),
	})
	if !errors.Is(err, checkpoints.ErrBadCheckpoint) {
		t.Fatalf("got %v", err)
	}
	_, err = Resume(program, &checkpoints.Checkpoint{})
	if !errors.Is(err, ErrEmptyTape) {
		t.Fatalf("got %v", err)
	}
}

func TestResumeAtLabel(t *testing.T) {
	// resuming at the write inside the inner loop
	program := tapelang.MustParse(tripleSource)
	machine, err := Resume(program, &checkpoints.Checkpoint{
		Position: 2,
		Pointer:  0,
		Tape:     []byte{'x', 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(machine.Stack, []int{1, 6}) {
		t.Fatalf("got %v", machine.Stack)
	}
	out := new(bytes.Buffer)
	machine.Input = strings.NewReader("y\x00")
	machine.Output = out
	for _, err := range machine.Run {
		if err != nil {
			t.Fatal(err)
		}
	}
	if out.String() != "xxyyy" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSnapshotRestore(t *testing.T) {
	program := tapelang.MustParse(tripleSource)
	input := strings.NewReader(tripleInput)
	out := new(bytes.Buffer)

	machine := NewMachine(program, 2)
	machine.Input = input
	machine.Output = out
	n := 0
	for _, err := range machine.Run {
		if err != nil {
			t.Fatal(err)
		}
		if n == 6 {
			break
		}
		n++
	}

	buf := new(bytes.Buffer)
	if err := machine.Snapshot(buf); err != nil {
		t.Fatal(err)
	}
	restored := &Machine{
		Input:  input,
		Output: out,
	}
	if err := restored.Restore(buf); err != nil {
		t.Fatal(err)
	}
	if restored.Program.String() != program.String() {
		t.Fatal()
	}
	for _, err := range restored.Run {
		if err != nil {
			t.Fatal(err)
		}
	}
	if out.String() != "aaabbbccc" {
		t.Fatalf("got %q", out.String())
	}
}
