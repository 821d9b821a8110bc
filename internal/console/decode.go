package console

import "hotwin/internal/hotkeys"

// Bindings are the chords the listener reacts to.
type Bindings struct {
	OpenWindow hotkeys.Binding
	Quit       hotkeys.Binding
}

// Decode maps ev to a Signal. Only key presses whose modifier set equals the
// binding's exactly are recognized; everything else is SignalIgnore.
func Decode(ev Event, b Bindings) Signal {
	if ev.Kind != EventKey {
		return SignalIgnore
	}
	switch {
	case b.OpenWindow.Matches(ev.Modifiers, ev.Key):
		return SignalOpenWindow
	case b.Quit.Matches(ev.Modifiers, ev.Key):
		return SignalQuit
	default:
		return SignalIgnore
	}
}
