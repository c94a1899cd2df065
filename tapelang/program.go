package tapelang

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// Program is the resolved form of a source text.
// It is never mutated after Parse returns.
type Program struct {
	Instructions []Instruction
	// Jumps holds, for each bracket, the index of its matching bracket, and -1 for other instructions.
	Jumps []int
	// IOs holds the indices of Read and Write instructions in order.
	IOs []int
}

func (p *Program) Len() int {
	return len(p.Instructions)
}

// Match returns the index of the bracket matching the one at pos.
func (p *Program) Match(pos int) int {
	return p.Jumps[pos]
}

// Loops returns the LoopStart to LoopEnd mapping.
func (p *Program) Loops() map[int]int {
	ret := make(map[int]int)
	for i, inst := range p.Instructions {
		if inst == LoopStart {
			ret[i] = p.Jumps[i]
		}
	}
	return ret
}

// LastPosition is the highest re-entry label, one per I/O instruction.
func (p *Program) LastPosition() int {
	return len(p.IOs)
}

// Label returns the re-entry label of the I/O instruction at pos, or 0 if pos is not an I/O instruction.
func (p *Program) Label(pos int) int {
	i, ok := slices.BinarySearch(p.IOs, pos)
	if !ok {
		return 0
	}
	return i + 1
}

// Enclosing returns the positions of the loops open around pos, outermost first.
func (p *Program) Enclosing(pos int) []int {
	var ret []int
	for i := 0; i < pos && i < len(p.Instructions); i++ {
		switch p.Instructions[i] {
		case LoopStart:
			if p.Jumps[i] > pos {
				ret = append(ret, i)
			} else {
				// skip closed loop
				i = p.Jumps[i]
			}
		}
	}
	return ret
}

func (p *Program) String() string {
	var b strings.Builder
	b.Grow(len(p.Instructions))
	for _, inst := range p.Instructions {
		b.WriteString(inst.String())
	}
	return b.String()
}

// Fingerprint identifies the program by its canonical source, ignoring comments.
func (p *Program) Fingerprint() string {
	sum := sha256.Sum256([]byte(p.String()))
	return hex.EncodeToString(sum[:16])
}
