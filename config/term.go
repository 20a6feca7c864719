package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// TerminalIO holds the streams ghlog reads from and logs to.
type TerminalIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var DefaultTermIO = TerminalIO{
	Stdin:  os.Stdin,
	Stdout: os.Stdout,
	Stderr: os.Stderr,
}

func (t *TerminalIO) Printf(msg string, args ...interface{}) {
	fmt.Fprintf(t.Stdout, msg, args...)
}

// ToStderr returns a copy of t whose informational output goes to stderr,
// leaving stdout free for the document itself.
func (t TerminalIO) ToStderr() TerminalIO {
	t.Stdout = t.Stderr
	return t
}

// StdoutIsTerminal reports whether Stdout is an interactive terminal. Writers
// that aren't files, such as buffers in tests, are treated as terminals.
func (t TerminalIO) StdoutIsTerminal() bool {
	f, ok := t.Stdout.(*os.File)
	if !ok {
		return true
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
