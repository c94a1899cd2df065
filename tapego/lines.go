package tapego

import "strings"

const newline = "\n\t"

// lines packs statements into lines of about width columns.
// A statement starting a line is preceded by a newline and an indent.
type lines struct {
	b      *strings.Builder
	width  int
	length int
}

func (l *lines) statement(stmt string) {
	if l.length == 0 {
		l.b.WriteString(newline)
	} else {
		l.b.WriteByte(' ')
		l.length++
	}
	l.b.WriteString(stmt)
	l.length += len(stmt)
	if l.length > l.width-len(newline) {
		l.length = 0
	}
}

// lineBreak makes the next statement start a new line.
func (l *lines) lineBreak() {
	l.length = 0
}
