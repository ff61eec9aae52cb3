package event

// Keycode identifies a logical key. Printable keys use their rune value
// (lowercase for letters); keys without a printable representation live
// in a reserved block above KeySpecial. The numbering is compatible with
// SDL keycodes, so the sdlx source passes codes through unchanged.
type Keycode int32

// KeySpecial masks the reserved block for non-printable keys.
const KeySpecial Keycode = 1 << 30

// Control-range and printable special keys.
const (
	KeyNone      Keycode = 0
	KeyBackspace Keycode = 8
	KeyTab       Keycode = 9
	KeyEnter     Keycode = 13
	KeyEscape    Keycode = 27
	KeySpace     Keycode = 32
	KeyDelete    Keycode = 127
)

// Non-printable keys (SDL scancode numbering within the reserved block).
const (
	KeyF1       Keycode = KeySpecial | 58
	KeyF2       Keycode = KeySpecial | 59
	KeyF3       Keycode = KeySpecial | 60
	KeyF4       Keycode = KeySpecial | 61
	KeyF5       Keycode = KeySpecial | 62
	KeyF6       Keycode = KeySpecial | 63
	KeyF7       Keycode = KeySpecial | 64
	KeyF8       Keycode = KeySpecial | 65
	KeyF9       Keycode = KeySpecial | 66
	KeyF10      Keycode = KeySpecial | 67
	KeyF11      Keycode = KeySpecial | 68
	KeyF12      Keycode = KeySpecial | 69
	KeyInsert   Keycode = KeySpecial | 73
	KeyHome     Keycode = KeySpecial | 74
	KeyPageUp   Keycode = KeySpecial | 75
	KeyEnd      Keycode = KeySpecial | 77
	KeyPageDown Keycode = KeySpecial | 78
	KeyRight    Keycode = KeySpecial | 79
	KeyLeft     Keycode = KeySpecial | 80
	KeyDown     Keycode = KeySpecial | 81
	KeyUp       Keycode = KeySpecial | 82
)

// ModMask is a bit mask of active modifier keys.
type ModMask uint8

// Modifier bits.
const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all modifiers in m2 are set in m.
func (m ModMask) Has(m2 ModMask) bool {
	return m&m2 == m2
}

// With returns m with the modifiers in m2 added.
func (m ModMask) With(m2 ModMask) ModMask {
	return m | m2
}
