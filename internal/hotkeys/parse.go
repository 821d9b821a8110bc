package hotkeys

import (
	"fmt"
	"strconv"
	"strings"
)

// Virtual-key codes for the named keys ParseBinding understands.
const (
	KeyBackspace VKey = 0x08
	KeySpace     VKey = 0x20
	KeyTab       VKey = 0x09
	KeyEnter     VKey = 0x0D
	KeyEscape    VKey = 0x1B
	KeyDelete    VKey = 0x2E
	KeyLeft      VKey = 0x25
	KeyUp        VKey = 0x26
	KeyRight     VKey = 0x27
	KeyDown      VKey = 0x28
	KeyBackquote VKey = 0xC0
	KeyF1        VKey = 0x70
	KeyF2        VKey = 0x71
	KeyF3        VKey = 0x72
	KeyF4        VKey = 0x73
	KeyF5        VKey = 0x74
	KeyF6        VKey = 0x75
	KeyF7        VKey = 0x76
	KeyF8        VKey = 0x77
	KeyF9        VKey = 0x78
	KeyF10       VKey = 0x79
	KeyF11       VKey = 0x7A
	KeyF12       VKey = 0x7B
	KeyF13       VKey = 0x7C
	KeyF14       VKey = 0x7D
	KeyF15       VKey = 0x7E
	KeyF16       VKey = 0x7F
	KeyF17       VKey = 0x80
	KeyF18       VKey = 0x81
	KeyF19       VKey = 0x82
	KeyF20       VKey = 0x83
)

var modifierByName = map[string]Modifier{
	"CTRL":    ModControl,
	"CONTROL": ModControl,
	"SHIFT":   ModShift,
	"ALT":     ModAlt,
	"WIN":     ModWin,
	"SUPER":   ModWin,
}

var keyByName = map[string]VKey{
	"SPACE":     KeySpace,
	"TAB":       KeyTab,
	"ENTER":     KeyEnter,
	"RETURN":    KeyEnter,
	"ESC":       KeyEscape,
	"ESCAPE":    KeyEscape,
	"DELETE":    KeyDelete,
	"BACKSPACE": KeyBackspace,
	"LEFT":      KeyLeft,
	"RIGHT":     KeyRight,
	"UP":        KeyUp,
	"DOWN":      KeyDown,
}

var functionKeys = map[string]VKey{
	"F1":  KeyF1,
	"F2":  KeyF2,
	"F3":  KeyF3,
	"F4":  KeyF4,
	"F5":  KeyF5,
	"F6":  KeyF6,
	"F7":  KeyF7,
	"F8":  KeyF8,
	"F9":  KeyF9,
	"F10": KeyF10,
	"F11": KeyF11,
	"F12": KeyF12,
	"F13": KeyF13,
	"F14": KeyF14,
	"F15": KeyF15,
	"F16": KeyF16,
	"F17": KeyF17,
	"F18": KeyF18,
	"F19": KeyF19,
	"F20": KeyF20,
}

// ParseBinding parses a binding like "Ctrl+H" or "Ctrl+Shift+F12".
// Modifiers keep their order of appearance in the normalized form.
func ParseBinding(spec string) (Binding, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Binding{}, fmt.Errorf("hotkey spec is empty")
	}

	parts := strings.Split(raw, "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("hotkey must include modifiers and key: %s", raw)
	}

	var modifiers Modifier
	seen := map[Modifier]struct{}{}
	var normalizedMods []string

	for _, token := range parts[:len(parts)-1] {
		name := strings.ToUpper(strings.TrimSpace(token))
		mod, ok := modifierByName[name]
		if !ok {
			return Binding{}, fmt.Errorf("unknown modifier %q in hotkey %q", token, raw)
		}
		if _, exists := seen[mod]; exists {
			continue
		}
		seen[mod] = struct{}{}
		modifiers |= mod
		normalizedMods = append(normalizedMods, normalizeModifierName(mod))
	}

	keyToken := strings.TrimSpace(parts[len(parts)-1])
	key, normalizedKey, err := parseKey(keyToken)
	if err != nil {
		return Binding{}, err
	}

	if modifiers == 0 {
		return Binding{}, fmt.Errorf("at least one modifier is required: %q", raw)
	}

	normalized := strings.Join(append(normalizedMods, normalizedKey), "+")
	return Binding{
		modifiers:  modifiers,
		key:        key,
		normalized: normalized,
	}, nil
}

func parseKey(raw string) (VKey, string, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return 0, "", fmt.Errorf("missing hotkey key token")
	}

	if key, ok := functionKeys[token]; ok {
		return key, token, nil
	}
	if key, ok := keyByName[token]; ok {
		return key, token, nil
	}

	if len(token) == 1 {
		ch := token[0]
		if ch >= 'A' && ch <= 'Z' {
			return VKey(ch), token, nil
		}
		if ch >= '0' && ch <= '9' {
			return VKey(ch), token, nil
		}
		if ch == '`' {
			return KeyBackquote, "`", nil
		}
	}

	switch token {
	case "BACKQUOTE", "GRAVE":
		return KeyBackquote, "`", nil
	}

	if strings.HasPrefix(token, "0X") {
		value, err := strconv.ParseUint(token[2:], 16, 16)
		if err != nil {
			return 0, "", fmt.Errorf("invalid hex key %q", raw)
		}
		if value == 0 {
			return 0, "", fmt.Errorf("key code 0x0000 is not a valid virtual key")
		}
		return VKey(value), token, nil
	}

	return 0, "", fmt.Errorf("unknown key %q in hotkey spec", raw)
}

func normalizeModifierName(mod Modifier) string {
	switch mod {
	case ModControl:
		return "Ctrl"
	case ModShift:
		return "Shift"
	case ModAlt:
		return "Alt"
	case ModWin:
		return "Win"
	default:
		return "Mod"
	}
}

// KeyName returns the canonical token for key as ParseBinding would print
// it, or a hex code when the key has no name.
func KeyName(key VKey) string {
	switch {
	case key >= 'A' && key <= 'Z', key >= '0' && key <= '9':
		return string(rune(key))
	case key == KeyBackquote:
		return "`"
	case key >= KeyF1 && key <= KeyF20:
		return fmt.Sprintf("F%d", key-KeyF1+1)
	}
	for _, name := range []string{"SPACE", "TAB", "ENTER", "ESC", "DELETE", "BACKSPACE", "LEFT", "RIGHT", "UP", "DOWN"} {
		if keyByName[name] == key {
			return name
		}
	}
	return fmt.Sprintf("0X%02X", uint32(key))
}
