package window

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Handle is a native window handle. A Session's handles are valid only until
// its RunUntilClosed returns.
type Handle uintptr

// ControlID tags a child control in WM_COMMAND notifications.
type ControlID uint16

// DefaultControlID is the id given to the push button.
const DefaultControlID ControlID = 1001

// Options describe one window session.
type Options struct {
	// Instance is the module handle that owns the window class. Zero means
	// the current executable.
	Instance uintptr

	ClassName string
	Title     string
	// Width and Height are the outer window size. Placement is chosen by
	// the platform.
	Width  int32
	Height int32

	ButtonText   string
	ButtonX      int32
	ButtonY      int32
	ButtonWidth  int32
	ButtonHeight int32
	ControlID    ControlID

	DialogTitle string
	DialogText  string

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) validate() error {
	if strings.TrimSpace(o.ClassName) == "" {
		return errors.New("class name is required")
	}
	for _, s := range []string{o.ClassName, o.Title, o.ButtonText, o.DialogTitle, o.DialogText} {
		if strings.ContainsRune(s, 0) {
			return fmt.Errorf("string %q contains NUL", s)
		}
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.ButtonWidth <= 0 || o.ButtonHeight <= 0 {
		return fmt.Errorf("button size must be positive, got %dx%d", o.ButtonWidth, o.ButtonHeight)
	}
	if o.ButtonX < 0 || o.ButtonY < 0 {
		return fmt.Errorf("button position must not be negative, got (%d,%d)", o.ButtonX, o.ButtonY)
	}
	if o.ControlID == 0 {
		return errors.New("control id must not be 0")
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Stage names the step of Create that failed.
type Stage string

const (
	StageValidate Stage = "validate"
	StageRegister Stage = "register"
	StageWindow   Stage = "window"
	StageControl  Stage = "control"
)

// CreationError reports a failed Create. No session is returned with it;
// any handle obtained before the failure is left to the platform.
type CreationError struct {
	Stage Stage
	Err   error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("create window (%s): %v", e.Stage, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Session is one open window and its push button. It is consumed by the
// first RunUntilClosed; later calls are no-ops.
type Session struct {
	id        string
	hwnd      Handle
	button    Handle
	controlID ControlID
	cookie    uintptr
	logger    *slog.Logger
	consumed  bool
}

// ID is a unique id used to correlate log lines.
func (s *Session) ID() string { return s.id }

// Handle returns the top-level window handle, or 0 once the session is closed.
func (s *Session) Handle() Handle { return s.hwnd }

// Button returns the push button handle, or 0 once the session is closed.
// The parent window owns it.
func (s *Session) Button() Handle { return s.button }

// ControlID returns the id of the push button.
func (s *Session) ControlID() ControlID { return s.controlID }

// Closed reports whether RunUntilClosed has already run.
func (s *Session) Closed() bool { return s.consumed }
