package tapelang

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseScenario(t *testing.T) {
	program, err := ParseString("++++[>++++<-]>.")
	if err != nil {
		t.Fatal(err)
	}
	// fifteen significant characters
	if program.Len() != 15 {
		t.Fatalf("got %d instructions", program.Len())
	}
	loops := program.Loops()
	if len(loops) != 1 {
		t.Fatalf("got %v", loops)
	}
	if loops[4] != 12 {
		t.Fatalf("got %v", loops)
	}
	if program.Match(12) != 4 {
		t.Fatalf("got %d", program.Match(12))
	}
	if len(program.IOs) != 1 || program.IOs[0] != 14 {
		t.Fatalf("got %v", program.IOs)
	}
	if program.String() != "++++[>++++<-]>." {
		t.Fatalf("got %s", program.String())
	}
}

func TestParseComments(t *testing.T) {
	program, err := ParseString("hello + world, ünïcode . [ - ] done")
	if err != nil {
		t.Fatal(err)
	}
	if str := program.String(); str != "+,.[-]" {
		t.Fatalf("got %q", str)
	}
	if len(program.IOs) != 2 || program.IOs[0] != 1 || program.IOs[1] != 2 {
		t.Fatalf("got %v", program.IOs)
	}
}

func TestParseErrors(t *testing.T) {
	depth := 2
	cases := []struct {
		name   string
		source string
		limits Limits
		want   error
	}{
		{"right bracket", "]", Limits{MaxLength: 10}, ErrUnmatchedRightBracket},
		{"left bracket", "[", Limits{MaxLength: 10}, ErrUnbalancedBrackets},
		{"excess right", "[[]]]", Limits{MaxLength: 10}, ErrUnmatchedRightBracket},
		{"excess left", "[[[]]", Limits{MaxLength: 10}, ErrUnbalancedBrackets},
		{"too much code", "+++", Limits{MaxLength: 2}, ErrTooMuchCode},
		{"too much comment", "+ ", Limits{MaxLength: 1}, ErrTooMuchCode},
		{"too deep", "[[[]]]", Limits{MaxLength: 10, MaxLoopDepth: &depth}, ErrLoopTooDeep},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.source), c.limits)
			if !errors.Is(err, c.want) {
				t.Fatalf("got %v", err)
			}
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("got %T", err)
			}
		})
	}
}

func TestParseLimitsBoundary(t *testing.T) {
	// exactly at the limit
	if _, err := Parse(strings.NewReader("+++"), Limits{MaxLength: 3}); err != nil {
		t.Fatal(err)
	}
	// empty source with zero budget
	program, err := Parse(strings.NewReader(""), Limits{MaxLength: 0})
	if err != nil {
		t.Fatal(err)
	}
	if program.Len() != 0 {
		t.Fatal()
	}
	// depth exactly at the limit
	depth := 3
	if _, err := Parse(strings.NewReader("[[[]]]"), Limits{MaxLength: 6, MaxLoopDepth: &depth}); err != nil {
		t.Fatal(err)
	}
	// zero depth forbids loops
	zero := 0
	if _, err := Parse(strings.NewReader("[]"), Limits{MaxLength: 6, MaxLoopDepth: &zero}); !errors.Is(err, ErrLoopTooDeep) {
		t.Fatalf("got %v", err)
	}
}

func TestParseReadError(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("boom")), Limits{MaxLength: 10})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("got %v", err)
	}
}

func TestParseJumpBijection(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		source := randomProgram(rnd, 64)
		program, err := ParseString(source)
		if err != nil {
			t.Fatalf("%s: %v", source, err)
		}
		loops := program.Loops()
		ends := make(map[int]bool)
		for start, end := range loops {
			if start >= end {
				t.Fatalf("%s: %d >= %d", source, start, end)
			}
			if program.Instructions[end] != LoopEnd {
				t.Fatalf("%s: %d is not a loop end", source, end)
			}
			if program.Match(end) != start {
				t.Fatalf("%s: reverse jump of %d", source, end)
			}
			if ends[end] {
				t.Fatalf("%s: %d matched twice", source, end)
			}
			ends[end] = true
		}
		for i, inst := range program.Instructions {
			switch inst {
			case LoopStart:
				if _, ok := loops[i]; !ok {
					t.Fatalf("%s: start %d not mapped", source, i)
				}
			case LoopEnd:
				if !ends[i] {
					t.Fatalf("%s: end %d not mapped", source, i)
				}
			default:
				if program.Jumps[i] != -1 {
					t.Fatalf("%s: jump at %d", source, i)
				}
			}
		}
		// no crossing
		for s1, e1 := range loops {
			for s2, e2 := range loops {
				if s1 < s2 && s2 < e1 && e1 < e2 {
					t.Fatalf("%s: crossing %d-%d %d-%d", source, s1, e1, s2, e2)
				}
			}
		}
	}
}

func TestParseExcessBrackets(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	for range 100 {
		source := randomProgram(rnd, 32)
		if _, err := ParseString(source + "]"); !errors.Is(err, ErrUnmatchedRightBracket) {
			t.Fatalf("%s]: got %v", source, err)
		}
		if _, err := ParseString("[" + source); !errors.Is(err, ErrUnbalancedBrackets) {
			t.Fatalf("[%s: got %v", source, err)
		}
	}
}

func TestEnclosing(t *testing.T) {
	program := MustParse("[,[-]>[.<]]+,")
	// the first read is inside the outer loop
	if got := program.Enclosing(program.IOs[0]); len(got) != 1 || got[0] != 0 {
		t.Fatalf("got %v", got)
	}
	// the write is inside both
	if got := program.Enclosing(program.IOs[1]); len(got) != 2 || got[0] != 0 || got[1] != 6 {
		t.Fatalf("got %v", got)
	}
	// the last read is outside
	if got := program.Enclosing(program.IOs[2]); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
	if program.LastPosition() != 3 {
		t.Fatal()
	}
}

func randomProgram(rnd *rand.Rand, n int) string {
	var b strings.Builder
	depth := 0
	for range n {
		switch rnd.IntN(6) {
		case 0:
			b.WriteByte('[')
			depth++
		case 1:
			if depth > 0 {
				b.WriteByte(']')
				depth--
			}
		case 2:
			b.WriteString(",.")
		case 3:
			b.WriteString(" comment ")
		default:
			b.WriteByte("+-<>"[rnd.IntN(4)])
		}
	}
	for ; depth > 0; depth-- {
		b.WriteByte(']')
	}
	return b.String()
}

func TestLabel(t *testing.T) {
	program := MustParse("+,[.-],")
	if program.Label(0) != 0 {
		t.Fatal()
	}
	if program.Label(1) != 1 || program.Label(3) != 2 || program.Label(6) != 3 {
		t.Fatalf("got %d %d %d", program.Label(1), program.Label(3), program.Label(6))
	}
}

func TestFingerprint(t *testing.T) {
	a := MustParse("+ comment [-]")
	b := MustParse("+[-]")
	c := MustParse("+[+]")
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal()
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Fatal()
	}
}
