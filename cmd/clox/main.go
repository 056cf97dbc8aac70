// Command clox is the CLI front end for the interpreter: it runs a
// source file given as an argument, or drops into an interactive REPL
// when none is given. Structured as a spf13/cobra root command with a
// MakeNowJust/heredoc long description, following the CLI shape
// SPEC_FULL.md §3 grounds on rami3l/golox rather than the teacher's
// bare os.Args switch in main.go.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
