package console

import (
	"unicode/utf8"

	"hotwin/internal/hotkeys"
)

const (
	byteEscape    = 0x1b
	byteDelete    = 0x7f
	byteCtrlSpace = 0x00
)

// decodeNext decodes the first key in buf, which holds bytes read from a
// raw-mode POSIX tty, and reports how many bytes it used. A read may carry
// several keys when they are typed ahead, pasted or repeated.
//
// Control bytes 0x01..0x1A are Ctrl+letter, except that Tab (Ctrl+I) and
// Enter (Ctrl+J, Ctrl+M) are reported as themselves because the terminal
// cannot tell them apart. 0x08 is reported as Ctrl+H; most terminals send
// 0x7F for the Backspace key. "ESC x" is Alt+x. CSI and SS3 sequences
// (arrows, function keys, mouse) decode to EventOther as one unit.
func decodeNext(buf []byte) (Event, int) {
	if len(buf) == 0 {
		return Event{Kind: EventOther}, 0
	}

	b := buf[0]
	switch {
	case b == byteEscape:
		return decodeEscape(buf)
	case b >= utf8.RuneSelf:
		// A multi-byte character has no virtual-key code.
		if r, size := utf8.DecodeRune(buf); r != utf8.RuneError || size > 1 {
			return KeyEvent(0, 0), size
		}
		return Event{Kind: EventOther}, 1
	default:
		return decodeByte(b), 1
	}
}

func decodeEscape(buf []byte) (Event, int) {
	if len(buf) == 1 || buf[1] == byteEscape {
		return KeyEvent(hotkeys.KeyEscape, 0), 1
	}

	switch buf[1] {
	case '[':
		// CSI runs to its final byte; a truncated sequence takes the rest.
		for i := 2; i < len(buf); i++ {
			if buf[i] >= 0x40 && buf[i] <= 0x7e {
				return Event{Kind: EventOther}, i + 1
			}
		}
		return Event{Kind: EventOther}, len(buf)
	case 'O':
		return Event{Kind: EventOther}, min(3, len(buf))
	}

	inner, size := decodeNext(buf[1:])
	if inner.Kind == EventKey {
		inner.Modifiers |= hotkeys.ModAlt
	}
	return inner, 1 + size
}

func decodeByte(b byte) Event {
	switch {
	case b == '\t':
		return KeyEvent(hotkeys.KeyTab, 0)
	case b == '\r' || b == '\n':
		return KeyEvent(hotkeys.KeyEnter, 0)
	case b == byteDelete:
		return KeyEvent(hotkeys.KeyBackspace, 0)
	case b == byteCtrlSpace:
		return KeyEvent(hotkeys.KeySpace, hotkeys.ModControl)
	case b >= 0x01 && b <= 0x1a:
		return KeyEvent(hotkeys.VKey('A'+b-1), hotkeys.ModControl)
	case b < 0x20:
		// Ctrl+\ Ctrl+] Ctrl+^ Ctrl+_
		return KeyEvent(0, hotkeys.ModControl)
	case b >= 'a' && b <= 'z':
		return KeyEvent(hotkeys.VKey(b-'a'+'A'), 0)
	case b >= 'A' && b <= 'Z':
		return KeyEvent(hotkeys.VKey(b), hotkeys.ModShift)
	case b >= '0' && b <= '9':
		return KeyEvent(hotkeys.VKey(b), 0)
	case b == ' ':
		return KeyEvent(hotkeys.KeySpace, 0)
	case b == '`':
		return KeyEvent(hotkeys.KeyBackquote, 0)
	default:
		return KeyEvent(0, 0)
	}
}
