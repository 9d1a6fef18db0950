package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"lox/compiler"
)

// emitCmd implements the "emit" subcommand: compile a source file and
// print its disassembly without running it.
type emitCmd struct{}

func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Compile a source file and print its disassembly" }
func (*emitCmd) Usage() string {
	return `emit <file>:
  Compile a Lox source file and dump its bytecode disassembly.
`
}
func (*emitCmd) SetFlags(*flag.FlagSet) {}

func (*emitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	if err := chunk.Disassemble(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to disassemble chunk: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
