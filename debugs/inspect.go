package debugs

import (
	"fmt"

	"go.starlark.net/starlark"
)

// Inspect evaluates a starlark expression with globals bound.
type Inspect func(expr string, globals map[string]any) (starlark.Value, error)

func (Module) Inspect() Inspect {
	return func(expr string, globals map[string]any) (starlark.Value, error) {
		thread := &starlark.Thread{
			Name: "inspect",
		}
		value, err := starlark.EvalOptions(fileOptions, thread, "inspect", expr, toStringDict(globals))
		if err != nil {
			return nil, fmt.Errorf("inspect %q: %w", expr, err)
		}
		return value, nil
	}
}
