package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusee/dscope"
	"github.com/reusee/tapec/cmds"
	"github.com/reusee/tapec/debugs"
	"github.com/reusee/tapec/harness"
	"github.com/reusee/tapec/logs"
	"github.com/reusee/tapec/modes"
	"github.com/reusee/tapec/storages"
	"github.com/reusee/tapec/tapeconfigs"
	"github.com/reusee/tapec/tapelang"
	"github.com/reusee/tapec/tapevm"
	"golang.org/x/term"
)

var (
	resumeFlag  = cmds.Var[string]("-resume", "checkpoint id to continue from")
	inspectFlag = cmds.Var[string]("-inspect", "starlark expression over tape and pointer, printed after the run")
	rawFlag     = cmds.Switch("-raw", "read the terminal byte by byte, suspend with SIGTERM")
)

func main() {
	args := cmds.Execute(os.Args[1:])
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: taperun [flags] SOURCE")
		os.Exit(2)
	}
	os.Exit(run(args[0]))
}

func run(sourcePath string) (code int) {
	scope := dscope.New(
		new(tapelang.Module),
		new(tapevm.Module),
		new(tapeconfigs.Module),
		new(storages.Module),
		new(debugs.Module),
		new(logs.Module),
		modes.ForProduction(),
	).Fork(
		dscope.Provide(tapevm.ResumeID(*resumeFlag)),
	)

	scope.Call(func(
		validate tapeconfigs.Validate,
		load tapelang.Load,
		execute tapevm.Execute,
		inspect debugs.Inspect,
	) {
		if err := validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			code = 2
			return
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		program, err := load(ctx, sourcePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			code = harness.ExitFailure
			return
		}

		if *rawFlag && term.IsTerminal(int(os.Stdin.Fd())) {
			state, err := term.MakeRaw(int(os.Stdin.Fd()))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				code = harness.ExitFailure
				return
			}
			defer term.Restore(int(os.Stdin.Fd()), state)
		}

		result, err := execute(ctx, program, os.Stdin, os.Stdout)
		if *inspectFlag != "" {
			value, err := inspect(*inspectFlag, map[string]any{
				"tape":    result.Tape,
				"pointer": result.Pointer,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			} else {
				fmt.Fprintln(os.Stderr, value.String())
			}
		}

		switch {
		case tapevm.IsSuspended(err):
			fmt.Fprintf(os.Stderr, "suspended, resume with -resume %s\n", result.Checkpoint.ID)
			code = harness.ExitSuspended
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
			code = harness.ExitFailure
		}
	})

	return
}
