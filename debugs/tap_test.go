package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/tapec/logs"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		new(logs.Module),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"tape":    []byte{0, 16},
			"pointer": 1,
		})
	})
}

func TestInspect(t *testing.T) {
	dscope.New(
		new(Module),
		new(logs.Module),
	).Call(func(
		inspect Inspect,
	) {
		globals := map[string]any{
			"tape":    []byte{0, 16, 3},
			"pointer": 1,
		}

		value, err := inspect("list(tape.elems())[pointer]", globals)
		if err != nil {
			t.Fatal(err)
		}
		if equal, _ := starlark.Equal(value, starlark.MakeInt(16)); !equal {
			t.Fatalf("got %v", value)
		}

		value, err = inspect("len([c for c in tape.elems() if c != 0])", globals)
		if err != nil {
			t.Fatal(err)
		}
		if equal, _ := starlark.Equal(value, starlark.MakeInt(2)); !equal {
			t.Fatalf("got %v", value)
		}

		if _, err := inspect("tape[", globals); err == nil {
			t.Fatal("should error")
		}
		if _, err := inspect("undefined", globals); err == nil {
			t.Fatal("should error")
		}
	})
}

func TestTapOnFailure(t *testing.T) {
	dscope.New(
		new(Module),
		new(logs.Module),
	).Call(func(
		enabled TapOnFailure,
	) {
		if enabled {
			t.Fatal()
		}
	})
}
