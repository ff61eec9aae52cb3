package sdlx

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/dshills/evmap/event"
)

// The event package's keycode space mirrors SDL's: printable keys are
// their rune value, everything else is the scancode with the special
// bit set. Conversion is therefore a cast.

func fromKeysym(k sdl.Keysym) (event.Keycode, event.ModMask) {
	return event.Keycode(k.Sym), fromKeymod(k.Mod)
}

func fromKeymod(m uint16) event.ModMask {
	var mod event.ModMask
	if m&sdl.KMOD_SHIFT != 0 {
		mod = mod.With(event.ModShift)
	}
	if m&sdl.KMOD_CTRL != 0 {
		mod = mod.With(event.ModCtrl)
	}
	if m&sdl.KMOD_ALT != 0 {
		mod = mod.With(event.ModAlt)
	}
	if m&sdl.KMOD_GUI != 0 {
		mod = mod.With(event.ModMeta)
	}
	return mod
}
