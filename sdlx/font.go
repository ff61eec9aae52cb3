package sdlx

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// TTF is an initialization token for SDL's TrueType support.
type TTF struct {
	fini sync.Once
}

// InitTTF initializes TrueType font support. Requires an initialized
// SDL library.
func InitTTF() (*TTF, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("initialize SDL TTF support: %w", err)
	}
	return &TTF{}, nil
}

// Close shuts TrueType support down. Idempotent.
func (t *TTF) Close() {
	t.fini.Do(ttf.Quit)
}

// Font owns an open TrueType font at a fixed point size.
type Font struct {
	f    *ttf.Font
	fini sync.Once
}

// OpenFont opens a font file at the given point size.
func OpenFont(path string, size int) (*Font, error) {
	f, err := ttf.OpenFont(path, size)
	if err != nil {
		return nil, fmt.Errorf("open font %q: %w", path, err)
	}
	return &Font{f: f}, nil
}

// Close releases the font. Idempotent.
func (f *Font) Close() {
	f.fini.Do(func() { f.f.Close() })
}

// Size returns the pixel dimensions the text would occupy when
// rendered.
func (f *Font) Size(text string) (int, int, error) {
	return f.f.SizeUTF8(text)
}

// Render draws the text with alpha blending and uploads it as a
// texture ready for compositing.
func (f *Font) Render(r *Renderer, text string, c sdl.Color) (*Bitmap, error) {
	surf, err := f.f.RenderUTF8Blended(text, c)
	if err != nil {
		return nil, fmt.Errorf("render text: %w", err)
	}
	defer surf.Free()
	return newBitmapFromSurface(r, surf)
}
