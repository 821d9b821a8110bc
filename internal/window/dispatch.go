package window

// Message and notification codes used by route. They are fixed by the
// platform ABI.
const (
	wmDestroy = 0x0002
	wmCommand = 0x0111
	bnClicked = 0
)

type action int

const (
	// actionDefault hands the message to DefWindowProcW.
	actionDefault action = iota
	// actionHandled returns 0 without doing anything.
	actionHandled
	// actionShowDialog shows the modal acknowledgment dialog.
	actionShowDialog
	// actionQuit posts WM_QUIT so the message loop returns.
	actionQuit
)

func (a action) String() string {
	switch a {
	case actionDefault:
		return "default"
	case actionHandled:
		return "handled"
	case actionShowDialog:
		return "show-dialog"
	case actionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// route decides what the window procedure does with one message. It has no
// side effects; the platform-specific procedure carries out the action.
func route(button ControlID, msg uint32, wParam uintptr) action {
	switch msg {
	case wmCommand:
		if loWord(wParam) == uint16(button) && hiWord(wParam) == bnClicked {
			return actionShowDialog
		}
		return actionHandled
	case wmDestroy:
		return actionQuit
	default:
		return actionDefault
	}
}

func loWord(v uintptr) uint16 { return uint16(v & 0xFFFF) }

func hiWord(v uintptr) uint16 { return uint16((v >> 16) & 0xFFFF) }
