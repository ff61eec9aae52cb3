package sdlx

import (
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/veandco/go-sdl2/sdl"
)

// Stock colors used by the drawing helpers.
var (
	Black      = sdl.Color{R: 0x00, G: 0x00, B: 0x00, A: sdl.ALPHA_OPAQUE}
	DarkGreen  = sdl.Color{R: 0x00, G: 0x80, B: 0x00, A: sdl.ALPHA_OPAQUE}
	DarkGrey   = sdl.Color{R: 0x60, G: 0x60, B: 0x60, A: sdl.ALPHA_OPAQUE}
	Grey       = sdl.Color{R: 0x80, G: 0x80, B: 0x80, A: sdl.ALPHA_OPAQUE}
	White      = sdl.Color{R: 0xFF, G: 0xFF, B: 0xFF, A: sdl.ALPHA_OPAQUE}
	DarkYellow = sdl.Color{R: 0x80, G: 0x80, B: 0x40, A: sdl.ALPHA_OPAQUE}
	DarkRed    = sdl.Color{R: 0xA4, G: 0x00, B: 0x00, A: sdl.ALPHA_OPAQUE}
)

// Renderer owns an SDL renderer handle.
type Renderer struct {
	ren  *sdl.Renderer
	fini sync.Once
}

// NewRenderer creates a hardware-accelerated, vsynced renderer for the
// window.
func NewRenderer(w *Window) (*Renderer, error) {
	ren, err := sdl.CreateRenderer(w.SDL(), -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Renderer{ren: ren}, nil
}

// Close destroys the renderer. Idempotent.
func (r *Renderer) Close() {
	r.fini.Do(func() { _ = r.ren.Destroy() })
}

// SDL exposes the underlying renderer handle.
func (r *Renderer) SDL() *sdl.Renderer {
	return r.ren
}

// SetColor sets the draw color.
func (r *Renderer) SetColor(c sdl.Color) error {
	return r.ren.SetDrawColor(c.R, c.G, c.B, c.A)
}

// SetColorHex sets the draw color from a "#rrggbb" hex string.
func (r *Renderer) SetColorHex(s string) error {
	c, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", s, err)
	}
	cr, cg, cb := c.RGB255()
	return r.ren.SetDrawColor(cr, cg, cb, sdl.ALPHA_OPAQUE)
}

// Clear erases the render target with the current draw color.
func (r *Renderer) Clear() error {
	return r.ren.Clear()
}

// Present flips the back buffer to the screen.
func (r *Renderer) Present() {
	r.ren.Present()
}

// FillRect fills a rectangle with the current draw color.
func (r *Renderer) FillRect(rect *sdl.Rect) error {
	return r.ren.FillRect(rect)
}

// Style saves renderer attributes as they are overridden and restores
// them on Pop, so a drawing routine can change the draw color without
// disturbing its caller.
type Style struct {
	r       *Renderer
	saved   sdl.Color
	restore bool
}

// PushStyle begins a scoped style change. Pair with a deferred Pop.
func (r *Renderer) PushStyle() *Style {
	return &Style{r: r}
}

// SetColor overrides the draw color, saving the current one the first
// time it is called.
func (s *Style) SetColor(c sdl.Color) *Style {
	if !s.restore {
		cr, cg, cb, ca, err := s.r.ren.GetDrawColor()
		if err == nil {
			s.saved = sdl.Color{R: cr, G: cg, B: cb, A: ca}
			s.restore = true
		}
	}
	_ = s.r.SetColor(c)
	return s
}

// Pop restores the saved attributes.
func (s *Style) Pop() {
	if s.restore {
		_ = s.r.SetColor(s.saved)
		s.restore = false
	}
}
