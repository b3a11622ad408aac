// Package palette maps sand heights to colours.
package palette

import (
	"image/color"
	"math"

	"github.com/pthm-cable/sandgarden/config"
)

// Palette shades sand by height. Troughs lerp from Base toward Shadow and
// ridges toward Highlight, reaching the end colour at |h| = Saturation.
type Palette struct {
	Base, Shadow, Highlight color.RGBA
	Saturation              float64
}

// FromConfig builds a palette from render settings.
func FromConfig(rc config.RenderConfig) Palette {
	return Palette{
		Base:       RGBA(rc.Base),
		Shadow:     RGBA(rc.Shadow),
		Highlight:  RGBA(rc.Highlight),
		Saturation: rc.Saturation,
	}
}

// RGBA converts a config colour to an opaque color.RGBA.
func RGBA(c config.ColorConfig) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Color returns the colour for height h.
func (p Palette) Color(h float64) color.RGBA {
	t := 1.0
	if p.Saturation > 0 {
		t = math.Min(math.Abs(h)/p.Saturation, 1)
	}
	if h < 0 {
		return Lerp(p.Base, p.Shadow, t)
	}
	return Lerp(p.Base, p.Highlight, t)
}

// Lerp interpolates between a and b; t is clamped to [0,1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

// Hot is the colour of fully deviated sand in the deviation view.
var Hot = color.RGBA{R: 196, G: 72, B: 48, A: 255}

// Heat colours a non-negative deviation from Base toward Hot, saturating at
// the palette's Saturation.
func (p Palette) Heat(v float64) color.RGBA {
	t := 1.0
	if p.Saturation > 0 {
		t = math.Abs(v) / p.Saturation
	}
	return Lerp(p.Base, Hot, t)
}

// Scale multiplies the colour channels of c by f, keeping alpha.
func Scale(c color.RGBA, f float64) color.RGBA {
	ch := func(x uint8) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(255, float64(x)*f))))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}
