package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when stdin is not an interactive console.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Terminal holds the console in raw mode for the lifetime of the program.
// Restore must run on every exit path; it is idempotent.
type Terminal struct {
	fd        int
	state     *term.State
	out       *termenv.Output
	restoreVT func() error
}

// isTerminalFn is a test seam.
var isTerminalFn = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Open switches in to raw mode (no line buffering, no echo) and prepares out
// for cursor control sequences.
func Open(in *os.File, out io.Writer) (*Terminal, error) {
	if in == nil {
		return nil, errors.New("console input file is required")
	}
	if !isTerminalFn(in.Fd()) {
		return nil, ErrNotTerminal
	}

	output := termenv.NewOutput(out)
	restoreVT, err := termenv.EnableVirtualTerminalProcessing(output)
	if err != nil {
		// Older consoles print the sequences literally; the program still works.
		slog.Warn("[WARN-CONSOLE] virtual terminal processing unavailable", "error", err)
		restoreVT = func() error { return nil }
	}

	fd := int(in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		if restoreErr := restoreVT(); restoreErr != nil {
			slog.Warn("[WARN-CONSOLE] failed to restore console output mode", "error", restoreErr)
		}
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	slog.Debug("[DEBUG-CONSOLE] raw mode enabled", "fd", fd)

	return &Terminal{
		fd:        fd,
		state:     state,
		out:       output,
		restoreVT: restoreVT,
	}, nil
}

// Banner clears the screen and prints text at the top-left corner.
func (t *Terminal) Banner(text string) {
	t.out.ClearScreen()
	t.out.MoveCursor(1, 1)
	if _, err := t.out.WriteString(text); err != nil {
		slog.Warn("[WARN-CONSOLE] failed to print banner", "error", err)
	}
}

// Home moves the cursor to the top-left corner.
func (t *Terminal) Home() {
	t.out.MoveCursor(1, 1)
}

// Restore leaves raw mode and restores the previous console output mode.
func (t *Terminal) Restore() error {
	if t == nil || t.state == nil {
		return nil
	}
	err := term.Restore(t.fd, t.state)
	t.state = nil
	if vtErr := t.restoreVT(); vtErr != nil {
		err = errors.Join(err, vtErr)
	}
	if err != nil {
		return fmt.Errorf("restore console mode: %w", err)
	}
	slog.Debug("[DEBUG-CONSOLE] console mode restored", "fd", t.fd)
	return nil
}
