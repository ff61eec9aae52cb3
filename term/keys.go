package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evmap/event"
)

// fromTcellKey translates a tcell key event into a keycode and modifier
// mask. Letters are normalized to their lowercase keycode with ModShift
// set for uppercase input, matching the keycode space's convention that
// shift travels in the modifiers. Keys with no keycode equivalent map to
// KeyNone.
func fromTcellKey(ev *tcell.EventKey) (event.Keycode, event.ModMask) {
	mod := fromTcellMod(ev.Modifiers())

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			return event.Keycode(unicode.ToLower(r)), mod.With(event.ModShift)
		}
		return event.Keycode(r), mod
	case tcell.KeyEnter:
		return event.KeyEnter, mod
	case tcell.KeyEscape:
		return event.KeyEscape, mod
	case tcell.KeyTab:
		return event.KeyTab, mod
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return event.KeyBackspace, mod
	case tcell.KeyDelete:
		return event.KeyDelete, mod
	case tcell.KeyInsert:
		return event.KeyInsert, mod
	case tcell.KeyHome:
		return event.KeyHome, mod
	case tcell.KeyEnd:
		return event.KeyEnd, mod
	case tcell.KeyPgUp:
		return event.KeyPageUp, mod
	case tcell.KeyPgDn:
		return event.KeyPageDown, mod
	case tcell.KeyUp:
		return event.KeyUp, mod
	case tcell.KeyDown:
		return event.KeyDown, mod
	case tcell.KeyLeft:
		return event.KeyLeft, mod
	case tcell.KeyRight:
		return event.KeyRight, mod
	case tcell.KeyF1:
		return event.KeyF1, mod
	case tcell.KeyF2:
		return event.KeyF2, mod
	case tcell.KeyF3:
		return event.KeyF3, mod
	case tcell.KeyF4:
		return event.KeyF4, mod
	case tcell.KeyF5:
		return event.KeyF5, mod
	case tcell.KeyF6:
		return event.KeyF6, mod
	case tcell.KeyF7:
		return event.KeyF7, mod
	case tcell.KeyF8:
		return event.KeyF8, mod
	case tcell.KeyF9:
		return event.KeyF9, mod
	case tcell.KeyF10:
		return event.KeyF10, mod
	case tcell.KeyF11:
		return event.KeyF11, mod
	case tcell.KeyF12:
		return event.KeyF12, mod
	default:
		// Remaining control keys (Ctrl-A..Ctrl-Z minus the ones with
		// dedicated names above) become the letter plus ModCtrl.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return event.Keycode('a' + rune(k-tcell.KeyCtrlA)), mod.With(event.ModCtrl)
		}
		return event.KeyNone, mod
	}
}

// fromTcellMod translates a tcell modifier mask.
func fromTcellMod(m tcell.ModMask) event.ModMask {
	var mod event.ModMask
	if m&tcell.ModShift != 0 {
		mod = mod.With(event.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mod = mod.With(event.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mod = mod.With(event.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mod = mod.With(event.ModMeta)
	}
	return mod
}
