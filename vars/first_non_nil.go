package vars

// FirstNonNil returns the first non-nil pointer, for settings where the zero value is meaningful.
func FirstNonNil[T any](ptrs ...*T) *T {
	for _, ptr := range ptrs {
		if ptr != nil {
			return ptr
		}
	}
	return nil
}
