package sdlx

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

// Bitmap is an image uploaded to the renderer as a texture.
type Bitmap struct {
	tex  *sdl.Texture
	w, h int32
	fini sync.Once
}

// LoadBitmap loads a BMP file and uploads it as a texture.
func LoadBitmap(r *Renderer, path string) (*Bitmap, error) {
	return loadBitmap(r, path, nil)
}

// LoadBitmapMod loads a BMP file with a color modulation applied, so a
// single greyscale asset can be tinted at load time.
func LoadBitmapMod(r *Renderer, path string, mod sdl.Color) (*Bitmap, error) {
	return loadBitmap(r, path, &mod)
}

func loadBitmap(r *Renderer, path string, mod *sdl.Color) (*Bitmap, error) {
	surf, err := sdl.LoadBMP(path)
	if err != nil {
		return nil, fmt.Errorf("load bitmap %q: %w", path, err)
	}
	defer surf.Free()

	if mod != nil {
		if err := surf.SetColorMod(mod.R, mod.G, mod.B); err != nil {
			return nil, fmt.Errorf("tint bitmap %q: %w", path, err)
		}
	}
	return newBitmapFromSurface(r, surf)
}

// newBitmapFromSurface uploads a surface as a texture. The caller
// retains ownership of the surface.
func newBitmapFromSurface(r *Renderer, surf *sdl.Surface) (*Bitmap, error) {
	tex, err := r.SDL().CreateTextureFromSurface(surf)
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}
	return &Bitmap{tex: tex, w: surf.W, h: surf.H}, nil
}

// Size returns the bitmap dimensions in pixels.
func (b *Bitmap) Size() (int32, int32) {
	return b.w, b.h
}

// Draw copies the bitmap to the renderer at its natural size.
func (b *Bitmap) Draw(r *Renderer, x, y int32) error {
	dst := sdl.Rect{X: x, Y: y, W: b.w, H: b.h}
	return b.DrawRect(r, &dst)
}

// DrawRect copies the bitmap into the destination rectangle, scaling as
// needed.
func (b *Bitmap) DrawRect(r *Renderer, dst *sdl.Rect) error {
	return r.SDL().Copy(b.tex, nil, dst)
}

// Close releases the texture. Idempotent.
func (b *Bitmap) Close() {
	b.fini.Do(func() { _ = b.tex.Destroy() })
}
