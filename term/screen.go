package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Screen owns a terminal for its lifetime: New acquires and initializes
// it, Close restores the terminal. Close is idempotent and safe to defer
// alongside error paths.
type Screen struct {
	scr  tcell.Screen
	fini sync.Once
}

// New allocates and initializes the default terminal screen.
func New() (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewFrom(scr)
}

// NewFrom initializes the given screen, taking ownership of it. Useful
// with tcell's simulation screen in tests.
func NewFrom(scr tcell.Screen) (*Screen, error) {
	if err := scr.Init(); err != nil {
		return nil, err
	}
	return &Screen{scr: scr}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.fini.Do(func() { s.scr.Fini() })
}

// Tcell exposes the underlying screen, for wiring a Source or for
// operations not covered by the helpers.
func (s *Screen) Tcell() tcell.Screen {
	return s.scr
}

// Size returns the terminal dimensions.
func (s *Screen) Size() (int, int) {
	return s.scr.Size()
}

// Clear erases the screen contents.
func (s *Screen) Clear() {
	s.scr.Clear()
}

// Show flushes pending drawing to the terminal.
func (s *Screen) Show() {
	s.scr.Show()
}

// SetCell places a rune at the given position.
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	s.scr.SetContent(x, y, r, nil, style)
}

// Fill covers the rectangle with the given rune.
func (s *Screen) Fill(x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.scr.SetContent(col, row, r, nil, style)
		}
	}
}

// HideCursor hides the text cursor.
func (s *Screen) HideCursor() {
	s.scr.HideCursor()
}

// DrawText writes text starting at (x, y), advancing by grapheme
// cluster so combining marks and wide characters occupy the right
// number of cells. It returns the total cell width drawn.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) int {
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		w := uniseg.StringWidth(g.Str())
		s.scr.SetContent(x+width, y, runes[0], runes[1:], style)
		width += w
	}
	return width
}
