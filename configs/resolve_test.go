package configs

import (
	"testing"
)

type testTapeLength int

func (testTapeLength) ConfigPath() string {
	return "tape_length"
}

type testLineWidth int

func (testLineWidth) ConfigPath() string {
	return "line_width"
}

func TestResolve(t *testing.T) {
	loader := NewLoader([]string{"test2.cue"}, testSchema)

	// default
	width, err := Resolve[testLineWidth](loader, nil, 62)
	if err != nil {
		t.Fatal(err)
	}
	if width != 62 {
		t.Fatalf("got %d", width)
	}

	// config
	length, err := Resolve[testTapeLength](loader, nil, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if length != 4096 {
		t.Fatalf("got %d", length)
	}

	// flag
	flag := testTapeLength(16)
	length, err = Resolve(loader, &flag, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if length != 16 {
		t.Fatalf("got %d", length)
	}
}
