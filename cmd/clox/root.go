package main

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dami-lang/goclox/internal/diag"
	"github.com/dami-lang/goclox/pkg/compiler"
	"github.com/dami-lang/goclox/pkg/heap"
	"github.com/dami-lang/goclox/pkg/vm"
)

func newRootCmd() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:     "clox [script]",
		Short:   "A tree-free bytecode interpreter for a small Lox-family language",
		Version: version,
		Long: heredoc.Doc(`
			clox compiles and runs programs in a small dynamically-typed
			scripting language: numbers, strings, booleans, nil, global
			variables, and expression/print statements.

			Run it against a source file:

			    clox program.clox

			or omit the file to start an interactive REPL, where each line
			you enter is compiled and run against a Value Heap shared with
			every prior line in the session.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := diag.Discard()
			if trace {
				log = diag.NewLogger(logrus.DebugLevel, cmd.ErrOrStderr())
			}
			if len(args) == 1 {
				return runFile(cmd, args[0], log)
			}
			runREPL(cmd, log)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log chunk disassembly and compile diagnostics to stderr")

	// RunE prints compile/runtime errors itself (runtime errors in the
	// "line <N>: <message>" form, compile errors as the compiler's
	// accumulated error log); without this, cobra's
	// default Execute() would additionally print "Error: ..." followed
	// by the full usage block for what is just a bad script, not a bad
	// invocation.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return cmd
}

// runFile compiles and executes one source file, per spec.md §4.5 /
// SPEC_FULL.md Open Question 5: a compile or runtime error exits
// non-zero without crashing the process.
func runFile(cmd *cobra.Command, path string, log *logrus.Logger) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Clox interpreter (v%s)\n", version)

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	h := heap.New()
	chunk, err := compiler.Compile(string(source), h, log)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	m := vm.New(log)
	if err := m.Run(chunk, h, cmd.OutOrStdout()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}
