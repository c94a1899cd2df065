//go:build !(linux && amd64)

package harness

// Sandboxed is only available on linux/amd64.
type Sandboxed struct{}

var _ Driver = new(Sandboxed)

func NewSandboxed() *Sandboxed {
	return new(Sandboxed)
}

func (s *Sandboxed) Enter() error {
	return ErrSandboxUnsupported
}

func (s *Sandboxed) Read(*byte) error {
	return ErrSandboxUnsupported
}

func (s *Sandboxed) Write(byte) error {
	return ErrSandboxUnsupported
}
