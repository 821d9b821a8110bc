package console

import (
	"fmt"

	"hotwin/internal/hotkeys"
)

// EventKind classifies a console input event.
type EventKind int

const (
	// EventOther covers input that can never match a chord: mouse, focus,
	// unrecognized escape sequences.
	EventOther EventKind = iota
	EventKey
	EventResize
)

// Event is one decoded console input event. For EventKey, Key is a Win32
// virtual-key code (0 when the key has none) and Modifiers holds the
// modifier keys down at the time of the press.
type Event struct {
	Kind      EventKind
	Key       hotkeys.VKey
	Modifiers hotkeys.Modifier
}

// KeyEvent is a convenience constructor for key presses.
func KeyEvent(key hotkeys.VKey, mods hotkeys.Modifier) Event {
	return Event{Kind: EventKey, Key: key, Modifiers: mods}
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		name := hotkeys.KeyName(e.Key)
		if mods := hotkeys.FormatModifiers(e.Modifiers); mods != "" {
			return "key " + mods + "+" + name
		}
		return "key " + name
	case EventResize:
		return "resize"
	default:
		return fmt.Sprintf("other(%d)", e.Kind)
	}
}
