package main

import (
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dami-lang/goclox/pkg/compiler"
	"github.com/dami-lang/goclox/pkg/heap"
	"github.com/dami-lang/goclox/pkg/vm"
)

// runREPL reads one line at a time, compiling and running it against
// a Heap and VM that persist for the whole session — so a global
// declared on one line is visible on the next, per spec.md §4.6.
// Grounded on rami3l/golox's chzyer/readline REPL loop (SPEC_FULL.md
// §3), rather than the teacher's bufio.Scanner loop in main.go.
func runREPL(cmd *cobra.Command, log *logrus.Logger) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Clox interpreter (v%s)\n", version)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		Stdout:      out,
		Stderr:      cmd.ErrOrStderr(),
		HistoryFile: "",
	})
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	defer rl.Close()

	h := heap.New()
	m := vm.New(log)

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			fmt.Fprintln(out, "Good bye!")
			return
		}
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		if line == "" {
			continue
		}

		chunk, err := compiler.Compile(line, h, log)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			continue
		}
		if err := m.Run(chunk, h, out); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
}
