package tapelang

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Limits struct {
	// MaxLength bounds the number of characters read, comments included.
	MaxLength int
	// MaxLoopDepth bounds bracket nesting; nil means no limit.
	MaxLoopDepth *int
}

func Parse(source io.Reader, limits Limits) (*Program, error) {
	reader, ok := source.(io.RuneReader)
	if !ok {
		reader = bufio.NewReader(source)
	}

	program := &Program{}
	var stack []int

	n := 0
	for ; n < limits.MaxLength; n++ {
		r, _, err := reader.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("read source: %w", err)
		}

		inst, ok := instructionOf(r)
		if !ok {
			// comment
			continue
		}
		pos := len(program.Instructions)

		switch inst {
		case LoopStart:
			stack = append(stack, pos)
			if limits.MaxLoopDepth != nil && len(stack) > *limits.MaxLoopDepth {
				return nil, &SyntaxError{Err: ErrLoopTooDeep, Offset: n}
			}
			program.Jumps = append(program.Jumps, -1)

		case LoopEnd:
			if len(stack) == 0 {
				return nil, &SyntaxError{Err: ErrUnmatchedRightBracket, Offset: n}
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			program.Jumps[start] = pos
			program.Jumps = append(program.Jumps, start)

		case Read, Write:
			program.IOs = append(program.IOs, pos)
			program.Jumps = append(program.Jumps, -1)

		default:
			program.Jumps = append(program.Jumps, -1)
		}

		program.Instructions = append(program.Instructions, inst)
	}

	if n == limits.MaxLength {
		_, _, err := reader.ReadRune()
		if err == nil {
			return nil, &SyntaxError{Err: ErrTooMuchCode, Offset: n}
		} else if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read source: %w", err)
		}
	}

	if len(stack) != 0 {
		return nil, &SyntaxError{Err: ErrUnbalancedBrackets, Offset: n}
	}

	return program, nil
}

// MustParse parses without a length or depth limit and panics on error.
func MustParse(source string) *Program {
	program, err := ParseString(source)
	if err != nil {
		panic(err)
	}
	return program
}

func ParseString(source string) (*Program, error) {
	// the rune count never exceeds the byte length
	return Parse(strings.NewReader(source), Limits{
		MaxLength: len(source),
	})
}
