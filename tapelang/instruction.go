package tapelang

import "fmt"

type Instruction byte

const (
	LoopStart Instruction = iota
	LoopEnd
	Read
	Write
	Decrement
	Increment
	MoveLeft
	MoveRight
)

var instructionChars = [...]rune{
	LoopStart: '[',
	LoopEnd:   ']',
	Read:      ',',
	Write:     '.',
	Decrement: '-',
	Increment: '+',
	MoveLeft:  '<',
	MoveRight: '>',
}

func (i Instruction) String() string {
	if int(i) < len(instructionChars) {
		return string(instructionChars[i])
	}
	return fmt.Sprintf("Instruction(%d)", byte(i))
}

// IsIO reports whether the instruction transfers a byte.
func (i Instruction) IsIO() bool {
	return i == Read || i == Write
}

func instructionOf(r rune) (Instruction, bool) {
	switch r {
	case '[':
		return LoopStart, true
	case ']':
		return LoopEnd, true
	case ',':
		return Read, true
	case '.':
		return Write, true
	case '-':
		return Decrement, true
	case '+':
		return Increment, true
	case '<':
		return MoveLeft, true
	case '>':
		return MoveRight, true
	}
	return 0, false
}
