package tapego

import (
	"fmt"
	"strings"

	"github.com/reusee/tapec/tapelang"
)

const DefaultLineWidth = 62

var statements = [...]string{
	tapelang.Read:      "if err := driver.Read(&tape[pointer]); err != nil { return err };",
	tapelang.Write:     "if err := driver.Write(tape[pointer]); err != nil { return err };",
	tapelang.Decrement: "tape[pointer]--;",
	tapelang.Increment: "tape[pointer]++;",
	tapelang.MoveLeft:  "if pointer == 0 { return harness.ErrTooLeft }; pointer--;",
	tapelang.MoveRight: "if pointer == last { return harness.ErrTooRight }; pointer++;",
}

// TranslateDirect renders the tape declarations and an execute function
// mapping each instruction to one statement, loops to native for loops.
func TranslateDirect(program *tapelang.Program, tapeLength int) (string, error) {
	return translateDirect(program, tapeLength, DefaultLineWidth)
}

func translateDirect(program *tapelang.Program, tapeLength int, width int) (string, error) {
	if tapeLength < 1 {
		return "", fmt.Errorf("bad tape length: %d", tapeLength)
	}

	b := new(strings.Builder)
	fmt.Fprintf(b, `
const tapeLength = %d

const last = tapeLength - 1

var (
	tape    [tapeLength]byte
	pointer = 0
)

func execute(driver harness.Driver) error {`, tapeLength)

	l := &lines{
		b:     b,
		width: width,
	}
	for _, inst := range program.Instructions {
		switch inst {
		case tapelang.LoopStart:
			l.statement("for tape[pointer] != 0 {")
		case tapelang.LoopEnd:
			l.statement("};")
		default:
			l.statement(statements[inst])
		}
	}

	b.WriteString("\n\treturn nil\n}\n")
	return b.String(), nil
}

// TranslateResumable renders an execute function that can start at any re-entry label.
// Label 0 is the start, label k the k-th I/O instruction.
// Loops are lowered to function level labels so a dispatch can jump into any loop body.
func TranslateResumable(program *tapelang.Program, tapeLength int, maxReentryPoints int) (string, error) {
	return translateResumable(program, tapeLength, maxReentryPoints, DefaultLineWidth)
}

func translateResumable(program *tapelang.Program, tapeLength int, maxReentryPoints int, width int) (string, error) {
	if tapeLength < 1 {
		return "", fmt.Errorf("bad tape length: %d", tapeLength)
	}
	lastPosition := program.LastPosition()
	if lastPosition > maxReentryPoints {
		return "", fmt.Errorf("%w: %d, limit %d", ErrTooManyIOs, lastPosition, maxReentryPoints)
	}

	b := new(strings.Builder)
	fmt.Fprintf(b, `
const tapeLength = %d

const last = tapeLength - 1

const lastPosition = %d

var (
	tape     [tapeLength]byte
	pointer  = 0
	position = 0
)

func execute(driver harness.Driver) error {
	switch position {
`, tapeLength, lastPosition)
	for k := 0; k <= lastPosition; k++ {
		fmt.Fprintf(b, "\tcase %d:\n\t\tgoto r%d\n", k, k)
	}
	b.WriteString("\tdefault:\n\t\treturn harness.ErrPosition\n\t}")

	l := &lines{
		b:     b,
		width: width,
	}
	label := func(k int) {
		l.lineBreak()
		l.statement(fmt.Sprintf("r%d: position = %d;", k, k))
	}

	label(0)
	for i, inst := range program.Instructions {
		switch inst {
		case tapelang.LoopStart:
			l.statement(fmt.Sprintf("l%d: if tape[pointer] == 0 { goto e%d };", i, i))
		case tapelang.LoopEnd:
			start := program.Jumps[i]
			l.statement(fmt.Sprintf("goto l%d; e%d:;", start, start))
		case tapelang.Read, tapelang.Write:
			label(program.Label(i))
			l.statement(statements[inst])
		default:
			l.statement(statements[inst])
		}
	}

	b.WriteString("\n\treturn nil\n}\n")
	return b.String(), nil
}
