package console

import (
	"fmt"
	"log/slog"
)

// EventReader blocks until one console input event is available.
type EventReader interface {
	ReadEvent() (Event, error)
}

// Cursor repositions the console cursor at the top-left corner.
type Cursor interface {
	Home()
}

// Listener yields one Signal per blocking read.
type Listener struct {
	reader   EventReader
	bindings Bindings
	cursor   Cursor
}

// NewListener creates a Listener. cursor may be nil.
func NewListener(reader EventReader, bindings Bindings, cursor Cursor) *Listener {
	return &Listener{
		reader:   reader,
		bindings: bindings,
		cursor:   cursor,
	}
}

// NextSignal blocks for one input event and decodes it. On SignalOpenWindow
// the cursor is moved home before returning. Read errors are returned
// wrapped and are not retried.
func (l *Listener) NextSignal() (Signal, error) {
	ev, err := l.reader.ReadEvent()
	if err != nil {
		return SignalIgnore, fmt.Errorf("read console event: %w", err)
	}

	sig := Decode(ev, l.bindings)
	slog.Debug("[DEBUG-CONSOLE] decoded console event", "event", ev.String(), "signal", sig.String())
	if sig == SignalOpenWindow && l.cursor != nil {
		l.cursor.Home()
	}
	return sig, nil
}
