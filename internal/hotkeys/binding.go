// Package hotkeys parses key chord bindings such as "Ctrl+H".
//
// Key codes are Win32 virtual-key numbers. The Windows console reports them
// directly in KEY_EVENT_RECORD; other terminals are mapped onto the same
// codes by the console package.
package hotkeys

import "strings"

// Modifier is a bitmask of modifier keys held during a chord.
type Modifier uint32

// VKey represents a Win32 virtual-key code.
type VKey uint32

const (
	ModAlt     Modifier = 0x0001
	ModControl Modifier = 0x0002
	ModShift   Modifier = 0x0004
	ModWin     Modifier = 0x0008
)

// Binding describes a parsed key chord.
// Construct only via ParseBinding.
type Binding struct {
	modifiers  Modifier
	key        VKey
	normalized string
}

// Modifiers returns the modifier bitmask.
func (b Binding) Modifiers() Modifier { return b.modifiers }

// Key returns the virtual-key code.
func (b Binding) Key() VKey { return b.key }

// Normalized returns the canonical human-readable binding string.
func (b Binding) Normalized() string { return b.normalized }

// String implements fmt.Stringer.
func (b Binding) String() string { return b.normalized }

// IsZero reports whether b was never parsed.
func (b Binding) IsZero() bool { return b.modifiers == 0 && b.key == 0 }

// Matches reports whether a chord of key pressed with exactly mods triggers b.
// Extra modifiers never match: Ctrl+Shift+H does not trigger Ctrl+H.
func (b Binding) Matches(mods Modifier, key VKey) bool {
	if b.IsZero() {
		return false
	}
	return b.key == key && b.modifiers == mods
}

// FormatModifiers renders mods in canonical order, e.g. "Ctrl+Shift".
// Returns "" when no modifier is set.
func FormatModifiers(mods Modifier) string {
	var names []string
	for _, mod := range modifierOrder {
		if mods&mod != 0 {
			names = append(names, normalizeModifierName(mod))
		}
	}
	return strings.Join(names, "+")
}

var modifierOrder = []Modifier{ModControl, ModAlt, ModShift, ModWin}
