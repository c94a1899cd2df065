package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	p.WriteUsage(os.Stderr)
}

func (p *Executor) WriteUsage(w io.Writer) {
	writeCommands(w, p.commands, 0)
}

func writeCommands(w io.Writer, commands map[string]*Command, depth int) {
	// one line per command, listing every name bound to it
	namesOf := make(map[*Command][]string)
	var order []*Command
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil {
			continue
		}
		if _, ok := namesOf[command]; !ok {
			order = append(order, command)
		}
		namesOf[command] = append(namesOf[command], name)
	}

	for _, command := range order {
		line := strings.Repeat("  ", depth) + strings.Join(namesOf[command], ", ")
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			writeCommands(w, command.Subs, depth+1)
		}
	}
}
