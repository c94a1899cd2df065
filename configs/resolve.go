package configs

import (
	"errors"

	"github.com/reusee/tapec/vars"
)

// Configurable is a typed setting stored under a cue path.
type Configurable interface {
	ConfigPath() string
}

// Resolve picks a setting from, in order, the command line flag (nil means unset),
// the first config file defining its path, and the default.
func Resolve[T Configurable](loader Loader, flag *T, def T) (T, error) {
	var fromFile *T
	var value T
	err := loader.AssignFirst(def.ConfigPath(), &value)
	if err == nil {
		fromFile = &value
	} else if !errors.Is(err, ErrValueNotFound) {
		return def, err
	}
	return vars.DerefOrZero(vars.FirstNonNil(flag, fromFile, &def)), nil
}
