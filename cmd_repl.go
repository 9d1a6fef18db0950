package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"lox/config"
	"lox/vm"
)

// replCmd implements the "repl" subcommand: an interactive session backed
// by one long-lived VM, so a global declared on one line is still visible
// on the next.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Lox session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session.
`
}
func (*replCmd) SetFlags(*flag.FlagSet) {}

func (*replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Welcome to lox!")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to load config: %v\n", err)
		return subcommands.ExitFailure
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: cfg.REPL.HistoryFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	machine := vm.New(os.Stdout)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.TrimSpace(line) == "exit" {
			return subcommands.ExitSuccess
		}

		if err := machine.Interpret(line); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}
