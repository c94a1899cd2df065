package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reusee/dscope"
	"github.com/reusee/tapec/cmds"
	"github.com/reusee/tapec/logs"
	"github.com/reusee/tapec/modes"
	"github.com/reusee/tapec/tapeconfigs"
	"github.com/reusee/tapec/tapego"
	"github.com/reusee/tapec/tapelang"
)

var (
	outputFlag = cmds.Var[string]("-o", "output file, stdout if empty")
	checkFlag  = cmds.Switch("-check", "type-check the output package, requires -o inside a module")
)

// the translator bounds nesting unless configured otherwise
const defaultMaxLoopDepth = 125

func main() {
	args := cmds.Execute(os.Args[1:])
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: tapec [flags] SOURCE")
		os.Exit(2)
	}
	sourcePath := args[0]

	scope := dscope.New(
		new(tapelang.Module),
		new(tapego.Module),
		new(tapeconfigs.Module),
		new(logs.Module),
		modes.ForProduction(),
	).Fork(
		dscope.Provide(tapeconfigs.DefaultMaxLoopDepth(defaultMaxLoopDepth)),
	)

	scope.Call(func(
		validate tapeconfigs.Validate,
		load tapelang.Load,
		compile tapego.Compile,
		newSpan logs.NewSpan,
		logger logs.Logger,
	) {
		if err := validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		ctx, _ := newSpan(context.Background(), "")

		program, err := load(ctx, sourcePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		buf := new(bytes.Buffer)
		if err := compile(ctx, buf, program, filepath.Base(sourcePath)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if *outputFlag == "" {
			if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}

		if err := os.WriteFile(*outputFlag, buf.Bytes(), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		logger.InfoContext(ctx, "written", "path", *outputFlag)

		if *checkFlag {
			if err := tapego.Check(ctx, filepath.Dir(*outputFlag)); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	})
}
