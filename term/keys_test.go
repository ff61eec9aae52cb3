package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evmap/event"
)

func TestFromTcellKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		code event.Keycode
		mod  event.ModMask
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), event.Keycode('a'), event.ModNone},
		{"uppercase letter", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), event.Keycode('q'), event.ModShift},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), event.Keycode('7'), event.ModNone},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), event.KeySpace, event.ModNone},
		{"alt letter", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), event.Keycode('x'), event.ModAlt},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), event.KeyEnter, event.ModNone},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.KeyEscape, event.ModNone},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), event.KeyTab, event.ModNone},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), event.KeyBackspace, event.ModNone},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), event.KeyDelete, event.ModNone},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), event.KeyUp, event.ModNone},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), event.KeyPageDown, event.ModNone},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), event.KeyF5, event.ModNone},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), event.Keycode('q'), event.ModCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, mod := fromTcellKey(tt.ev)
			if code != tt.code || mod != tt.mod {
				t.Errorf("fromTcellKey() = %d, %b, want %d, %b", code, mod, tt.code, tt.mod)
			}
		})
	}
}

func TestFromTcellMod(t *testing.T) {
	in := tcell.ModShift | tcell.ModCtrl | tcell.ModMeta
	got := fromTcellMod(in)
	want := event.ModShift | event.ModCtrl | event.ModMeta
	if got != want {
		t.Errorf("fromTcellMod(%b) = %b, want %b", in, got, want)
	}
	if got.Has(event.ModAlt) {
		t.Error("ModAlt set without alt input")
	}
}
