// Package diag sets up the shared debug logger used by pkg/compiler
// and pkg/vm to trace compilation and execution (chunk disassembly,
// panic-mode error entries) separately from a program's own stdout
// output, which only ever carries OP_PRINT results. Grounded on
// rami3l/golox's logrus + logrus-easy-formatter setup (see
// SPEC_FULL.md §2/§3) rather than the teacher's ad hoc fmt.Printf
// tracing in runtime/outputingpritier.go.
package diag

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// NewLogger returns a logrus.Logger that writes to w at level, formatted
// as "[clox] <level>: <message>\n". Passing nil for w defaults to
// os.Stderr, which keeps trace output off of the program's own stdout.
func NewLogger(level logrus.Level, w io.Writer) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	log.SetFormatter(&easy.Formatter{
		TimestampFormat: "",
		LogFormat:       "[clox] %lvl%: %msg%\n",
	})
	return log
}

// Discard is a logger that drops everything, used where the caller
// wants compiler/vm tracing disabled entirely (the default, non-trace
// CLI mode).
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
