package console

import "hotwin/internal/hotkeys"

// Bits of KEY_EVENT_RECORD.dwControlKeyState.
const (
	rightAltPressed  uint32 = 0x0001
	leftAltPressed   uint32 = 0x0002
	rightCtrlPressed uint32 = 0x0004
	leftCtrlPressed  uint32 = 0x0008
	shiftPressed     uint32 = 0x0010
)

// modifiersFromKeyState folds the console's left/right key flags into a
// modifier set. Lock-key flags (caps, num, scroll) and ENHANCED_KEY are not
// modifiers and are dropped, so Ctrl+H with caps lock on is still Ctrl+H.
func modifiersFromKeyState(state uint32) hotkeys.Modifier {
	var mods hotkeys.Modifier
	if state&(leftCtrlPressed|rightCtrlPressed) != 0 {
		mods |= hotkeys.ModControl
	}
	if state&(leftAltPressed|rightAltPressed) != 0 {
		mods |= hotkeys.ModAlt
	}
	if state&shiftPressed != 0 {
		mods |= hotkeys.ModShift
	}
	return mods
}
