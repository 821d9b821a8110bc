//go:build windows

package console

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"hotwin/internal/hotkeys"

	"github.com/erikgeiser/coninput"
	"golang.org/x/sys/windows"
)

// Reader reads INPUT_RECORDs from the Windows console input buffer.
type Reader struct {
	handle   windows.Handle
	prevMode uint32
	modeSet  bool
}

// NewReader creates a Reader on in. Window-size events are enabled and
// virtual terminal input is disabled so key records carry virtual-key codes
// and modifier state rather than VT sequences. Close restores the mode.
func NewReader(in *os.File) (*Reader, error) {
	if in == nil {
		return nil, errors.New("console input file is required")
	}
	handle := windows.Handle(in.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return nil, fmt.Errorf("get console input mode: %w", err)
	}
	newMode := (mode | windows.ENABLE_WINDOW_INPUT) &^ windows.ENABLE_VIRTUAL_TERMINAL_INPUT
	if err := windows.SetConsoleMode(handle, newMode); err != nil {
		return nil, fmt.Errorf("set console input mode: %w", err)
	}
	slog.Debug("[DEBUG-CONSOLE] console input mode set", "from", mode, "to", newMode)

	return &Reader{handle: handle, prevMode: mode, modeSet: true}, nil
}

// ReadEvent blocks until the console delivers a key press, a resize or
// another event. Key releases are consumed silently: a chord is reported
// once, on press.
func (r *Reader) ReadEvent() (Event, error) {
	for {
		records, err := coninput.ReadNConsoleInputs(r.handle, 1)
		if err != nil {
			return Event{}, fmt.Errorf("ReadConsoleInput: %w", err)
		}
		for _, record := range records {
			if ev, ok := translateRecord(record.Unwrap()); ok {
				return ev, nil
			}
		}
	}
}

func translateRecord(record coninput.EventRecord) (Event, bool) {
	switch e := record.(type) {
	case coninput.KeyEventRecord:
		if !e.KeyDown {
			return Event{}, false
		}
		return KeyEvent(hotkeys.VKey(e.VirtualKeyCode), modifiersFromKeyState(uint32(e.ControlKeyState))), true
	case coninput.WindowBufferSizeEventRecord:
		return Event{Kind: EventResize}, true
	default:
		return Event{Kind: EventOther}, true
	}
}

// Close restores the console input mode captured by NewReader.
func (r *Reader) Close() error {
	if r == nil || !r.modeSet {
		return nil
	}
	r.modeSet = false
	if err := windows.SetConsoleMode(r.handle, r.prevMode); err != nil {
		return fmt.Errorf("restore console input mode: %w", err)
	}
	return nil
}
