package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorFromHex parses a "#rrggbb" hex string into a terminal color.
func ColorFromHex(s string) (tcell.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return tcell.ColorDefault, err
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// Blend interpolates between two colors in RGB space. t is clamped to
// [0, 1]; 0 yields a, 1 yields b.
func Blend(a, b tcell.Color, t float64) tcell.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	ca := toColorful(a)
	cb := toColorful(b)
	r, g, bl := ca.BlendRgb(cb, t).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

func toColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}
