package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/p2lu/turingtoy/internal/logging"
	"golang.org/x/term"
)

// Exit codes of the turingtoy binary.
const (
	ExitOK           = 0
	ExitError        = 1
	ExitNotAccepting = 2
)

// ExitCodeError carries a process exit code through cobra's error return.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

// NewLogger configures the application logger.
// In debug mode it writes to Stderr, keeping Stdout for run output.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorProfile returns the color profile to use on w. Pipes, files and noColor get
// termenv.Ascii; terminals honor NO_COLOR and CLICOLOR_FORCE.
func ColorProfile(w io.Writer, noColor bool) termenv.Profile {
	if noColor || !IsTerminal(w) {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
