package cmds

import (
	"errors"
	"fmt"
	"os"
)

var ErrUsagePrinted = errors.New("usage printed")

var GlobalExecutor = NewExecutor()

func Define(name string, command *Command) {
	GlobalExecutor.Define(name, command)
}

// Execute runs the global executor and exits the process on error.
// It returns the positional words.
func Execute(args []string) []string {
	if err := GlobalExecutor.Execute(args); err != nil {
		if errors.Is(err, ErrUsagePrinted) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	return GlobalExecutor.Args()
}
