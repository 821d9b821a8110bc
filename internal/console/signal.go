package console

// Signal is the outcome of one listener iteration.
type Signal int

const (
	SignalIgnore Signal = iota
	SignalOpenWindow
	SignalQuit
)

func (s Signal) String() string {
	switch s {
	case SignalIgnore:
		return "Ignore"
	case SignalOpenWindow:
		return "OpenWindow"
	case SignalQuit:
		return "Quit"
	default:
		return "Signal(?)"
	}
}
