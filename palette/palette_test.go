package palette

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/sandgarden/config"
)

func testPalette() Palette {
	return Palette{
		Base:       color.RGBA{200, 180, 140, 255},
		Shadow:     color.RGBA{100, 80, 40, 255},
		Highlight:  color.RGBA{250, 240, 220, 255},
		Saturation: 2,
	}
}

func TestColor(t *testing.T) {
	p := testPalette()
	tests := []struct {
		name string
		h    float64
		want color.RGBA
	}{
		{"zero is base", 0, p.Base},
		{"saturated trough", -2, p.Shadow},
		{"past saturation", -9, p.Shadow},
		{"saturated ridge", 2, p.Highlight},
		{"half trough", -1, color.RGBA{150, 130, 90, 255}},
		{"half ridge", 1, color.RGBA{225, 210, 180, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Color(tt.h); got != tt.want {
				t.Errorf("Color(%v) = %v, want %v", tt.h, got, tt.want)
			}
		})
	}
}

func TestLerpClamps(t *testing.T) {
	a := color.RGBA{0, 0, 0, 255}
	b := color.RGBA{255, 255, 255, 255}
	if got := Lerp(a, b, -1); got != a {
		t.Errorf("Lerp(t<0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 2); got != b {
		t.Errorf("Lerp(t>1) = %v, want %v", got, b)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	p := FromConfig(cfg.Render)
	if p.Saturation != cfg.Render.Saturation {
		t.Errorf("saturation = %v, want %v", p.Saturation, cfg.Render.Saturation)
	}
	if p.Base.R != cfg.Render.Base.R || p.Base.A != 255 {
		t.Errorf("base = %v", p.Base)
	}
}

func TestHeat(t *testing.T) {
	p := testPalette()
	tests := []struct {
		name string
		v    float64
		want color.RGBA
	}{
		{"none", 0, p.Base},
		{"half", 1, color.RGBA{198, 126, 94, 255}},
		{"saturated", 2, Hot},
		{"past saturation", 5, Hot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Heat(tt.v); got != tt.want {
				t.Errorf("Heat(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestScale(t *testing.T) {
	c := color.RGBA{100, 200, 50, 255}
	if got, want := Scale(c, 1.5), (color.RGBA{150, 255, 75, 255}); got != want {
		t.Errorf("Scale(1.5) = %v, want %v", got, want)
	}
	if got, want := Scale(c, 0), (color.RGBA{0, 0, 0, 255}); got != want {
		t.Errorf("Scale(0) = %v, want %v", got, want)
	}
}
