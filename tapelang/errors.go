package tapelang

import (
	"errors"
	"fmt"
)

var (
	ErrTooMuchCode           = errors.New("too much code")
	ErrLoopTooDeep           = errors.New("too deep loop")
	ErrUnmatchedRightBracket = errors.New("unexpected right bracket")
	ErrUnbalancedBrackets    = errors.New("unbalanced brackets")
)

// SyntaxError locates a parse failure by character offset.
type SyntaxError struct {
	Err    error
	Offset int
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%v at character %d", s.Err, s.Offset)
}

func (s *SyntaxError) Unwrap() error {
	return s.Err
}
