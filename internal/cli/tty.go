package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isTerminalFn reports whether f is a terminal. Tests replace it.
var isTerminalFn = func(f *os.File) bool {
	return f != nil && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// interactive reports whether the TUI can run: stdin and stdout are both
// terminals.
func interactive() bool {
	return isTerminalFn(os.Stdin) && isTerminalFn(os.Stdout)
}

// colorAllowed honours --no-color and NO_COLOR, and never colours a pipe.
func colorAllowed(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminalFn(os.Stdout)
}
