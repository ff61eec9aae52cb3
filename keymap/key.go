package keymap

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/evmap/event"
)

// Key is a parsed key specification: a keycode plus the modifiers that
// must be held.
type Key struct {
	Code event.Keycode
	Mod  event.ModMask
}

var keyNames = map[string]event.Keycode{
	"enter":     event.KeyEnter,
	"return":    event.KeyEnter,
	"cr":        event.KeyEnter,
	"escape":    event.KeyEscape,
	"esc":       event.KeyEscape,
	"tab":       event.KeyTab,
	"backspace": event.KeyBackspace,
	"bs":        event.KeyBackspace,
	"delete":    event.KeyDelete,
	"del":       event.KeyDelete,
	"insert":    event.KeyInsert,
	"ins":       event.KeyInsert,
	"space":     event.KeySpace,
	"home":      event.KeyHome,
	"end":       event.KeyEnd,
	"pageup":    event.KeyPageUp,
	"pgup":      event.KeyPageUp,
	"pagedown":  event.KeyPageDown,
	"pgdn":      event.KeyPageDown,
	"up":        event.KeyUp,
	"down":      event.KeyDown,
	"left":      event.KeyLeft,
	"right":     event.KeyRight,
	"f1":        event.KeyF1,
	"f2":        event.KeyF2,
	"f3":        event.KeyF3,
	"f4":        event.KeyF4,
	"f5":        event.KeyF5,
	"f6":        event.KeyF6,
	"f7":        event.KeyF7,
	"f8":        event.KeyF8,
	"f9":        event.KeyF9,
	"f10":       event.KeyF10,
	"f11":       event.KeyF11,
	"f12":       event.KeyF12,
}

var modNames = map[string]event.ModMask{
	"ctrl":    event.ModCtrl,
	"control": event.ModCtrl,
	"alt":     event.ModAlt,
	"shift":   event.ModShift,
	"meta":    event.ModMeta,
	"cmd":     event.ModMeta,
	"super":   event.ModMeta,
}

// Vim single-letter modifier prefixes. D is Vim's Command/Meta.
var vimMods = map[string]event.ModMask{
	"c": event.ModCtrl,
	"a": event.ModAlt,
	"s": event.ModShift,
	"m": event.ModMeta,
	"d": event.ModMeta,
}

// ParseKey parses a key specification string.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Key names: "Enter", "Escape", "Space", "F5"
//   - Modifier chords: "Ctrl+q", "Alt+F4", "Ctrl+Shift+p"
//   - Vim-style: "<C-q>", "<A-f>", "<CR>", "<Esc>"
func ParseKey(spec string) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		return parseChord(spec)
	}
	return parseBare(spec, 0)
}

// parseVimStyle parses the inside of "<...>" notation: hyphen-joined
// single-letter modifiers followed by a key name or character.
func parseVimStyle(inner string) (Key, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Key{}, fmt.Errorf("%w: empty angle brackets", ErrBadKey)
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]

	var mods event.ModMask
	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		m, ok := vimMods[p]
		if !ok {
			return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrBadKey, p)
		}
		mods = mods.With(m)
	}

	// Vim spells some characters as names to avoid delimiter clashes.
	switch strings.ToLower(keyPart) {
	case "lt":
		return Key{Code: '<', Mod: mods}, nil
	case "gt":
		return Key{Code: '>', Mod: mods}, nil
	case "bar":
		return Key{Code: '|', Mod: mods}, nil
	case "bslash":
		return Key{Code: '\\', Mod: mods}, nil
	}
	return parseBare(keyPart, mods)
}

// parseChord parses "Ctrl+Shift+p" style notation.
func parseChord(spec string) (Key, error) {
	parts := strings.Split(spec, "+")

	var mods event.ModMask
	for _, p := range parts[:len(parts)-1] {
		p = strings.ToLower(strings.TrimSpace(p))
		m, ok := modNames[p]
		if !ok {
			return Key{}, fmt.Errorf("%w: unknown modifier %q", ErrBadKey, p)
		}
		mods = mods.With(m)
	}
	return parseBare(parts[len(parts)-1], mods)
}

// parseBare parses a key name or single character.
func parseBare(spec string, mods event.ModMask) (Key, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Key{}, fmt.Errorf("%w: missing key", ErrBadKey)
	}

	if code, ok := keyNames[strings.ToLower(spec)]; ok {
		return Key{Code: code, Mod: mods}, nil
	}

	runes := []rune(spec)
	if len(runes) != 1 {
		return Key{}, fmt.Errorf("%w: %q", ErrBadKey, spec)
	}
	r := runes[0]
	if unicode.IsUpper(r) {
		return Key{Code: event.Keycode(unicode.ToLower(r)), Mod: mods.With(event.ModShift)}, nil
	}
	return Key{Code: event.Keycode(r), Mod: mods}, nil
}

// Canonical names for String, keyed by keycode.
var keycodeNames = map[event.Keycode]string{
	event.KeyEnter:     "Enter",
	event.KeyEscape:    "Escape",
	event.KeyTab:       "Tab",
	event.KeyBackspace: "Backspace",
	event.KeyDelete:    "Delete",
	event.KeyInsert:    "Insert",
	event.KeySpace:     "Space",
	event.KeyHome:      "Home",
	event.KeyEnd:       "End",
	event.KeyPageUp:    "PageUp",
	event.KeyPageDown:  "PageDown",
	event.KeyUp:        "Up",
	event.KeyDown:      "Down",
	event.KeyLeft:      "Left",
	event.KeyRight:     "Right",
	event.KeyF1:        "F1",
	event.KeyF2:        "F2",
	event.KeyF3:        "F3",
	event.KeyF4:        "F4",
	event.KeyF5:        "F5",
	event.KeyF6:        "F6",
	event.KeyF7:        "F7",
	event.KeyF8:        "F8",
	event.KeyF9:        "F9",
	event.KeyF10:       "F10",
	event.KeyF11:       "F11",
	event.KeyF12:       "F12",
}

// String renders the key in chord notation, parseable by ParseKey.
func (k Key) String() string {
	var b strings.Builder
	mods := k.Mod
	name, named := keycodeNames[k.Code]

	// Shift on a plain letter renders as the uppercase character.
	if !named && mods.Has(event.ModShift) && unicode.IsLetter(rune(k.Code)) {
		mods &^= event.ModShift
	}

	if mods.Has(event.ModCtrl) {
		b.WriteString("Ctrl+")
	}
	if mods.Has(event.ModAlt) {
		b.WriteString("Alt+")
	}
	if mods.Has(event.ModShift) {
		b.WriteString("Shift+")
	}
	if mods.Has(event.ModMeta) {
		b.WriteString("Meta+")
	}

	switch {
	case named:
		b.WriteString(name)
	case k.Mod.Has(event.ModShift) && unicode.IsLetter(rune(k.Code)):
		b.WriteRune(unicode.ToUpper(rune(k.Code)))
	default:
		b.WriteRune(rune(k.Code))
	}
	return b.String()
}
