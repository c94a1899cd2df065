package cmds

// Var defines a word taking one argument; "name." resets the value.
func Var[T any](name string, desc ...string) *T {
	var value T

	Define(name, Func(func(v T) {
		value = v
	}).Desc(first(desc)))

	var zero T
	Define(name+".", Func(func() {
		value = zero
	}).Desc("reset "+name))

	return &value
}

// Switch defines a word setting a flag; "!name" clears it.
func Switch(name string, desc ...string) *bool {
	var value bool

	Define(name, Func(func() {
		value = true
	}).Desc(first(desc)))

	Define("!"+name, Func(func() {
		value = false
	}).Desc("unset "+name))

	return &value
}

// Collect defines a word appending its argument to a list.
func Collect[T any](name string, desc ...string) *[]T {
	var value []T
	Define(name, Func(func(v T) {
		value = append(value, v)
	}).Desc(first(desc)))
	return &value
}

func first(strs []string) string {
	if len(strs) == 0 {
		return ""
	}
	return strs[0]
}
