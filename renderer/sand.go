// Package renderer draws the garden with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/camera"
	"github.com/pthm-cable/sandgarden/field"
	"github.com/pthm-cable/sandgarden/palette"
)

// SandRenderer paints the height field. Each cell is one texel of a
// cols x rows texture drawn scaled to resolution x resolution world units,
// so every cell lands as a filled square at its world position. Inactive
// cells are transparent, which clips the bed to its circle.
type SandRenderer struct {
	palette palette.Palette
	Shade   Shade

	tex        rl.Texture2D
	texW, texH int
	pixels     []color.RGBA

	initialized bool
}

// Shade selects what the sand texture shows.
type Shade int

const (
	ShadeHeight    Shade = iota // current heights
	ShadeTarget                 // the comb pattern the blade converges to
	ShadeDeviation              // |height - target|
)

// NewSandRenderer creates a renderer using the given palette.
func NewSandRenderer(p palette.Palette) *SandRenderer {
	return &SandRenderer{palette: p}
}

// init (re)creates the texture for a grid. Must run after the window exists.
func (r *SandRenderer) init(cols, rows int) {
	if r.initialized {
		if r.texW == cols && r.texH == rows {
			return
		}
		rl.UnloadTexture(r.tex)
	}

	img := rl.GenImageColor(cols, rows, rl.Blank)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterPoint)
	rl.UnloadImage(img)

	r.texW, r.texH = cols, rows
	r.pixels = make([]color.RGBA, cols*rows)
	r.initialized = true
}

// Update uploads the current heights. Call once per rendered frame.
func (r *SandRenderer) Update(f *field.Field) {
	r.init(f.Grid.Cols, f.Grid.Rows)
	for i := range r.pixels {
		if !f.IsActive(i) {
			r.pixels[i] = color.RGBA{}
			continue
		}
		switch r.Shade {
		case ShadeTarget:
			r.pixels[i] = r.palette.Color(f.Target(i))
		case ShadeDeviation:
			r.pixels[i] = r.palette.Heat(f.Height(i) - f.Target(i))
		default:
			r.pixels[i] = r.palette.Color(f.Height(i))
		}
	}
	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the field through the camera, clipped to the garden's
// bounding box.
func (r *SandRenderer) Draw(f *field.Field, cam *camera.Camera) {
	g := f.Grid
	radius := float32(g.Radius)
	if !r.initialized || !cam.IsVisible(0, 0, radius) {
		return
	}
	x0, y0 := cam.WorldToScreen(-radius, -radius)
	size := float32(g.Cols) * float32(g.Resolution) * cam.Zoom

	clip := 2 * radius * cam.Zoom
	rl.BeginScissorMode(int32(x0), int32(y0), int32(clip)+1, int32(clip)+1)
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.texW), Height: float32(r.texH)}
	dst := rl.Rectangle{X: x0, Y: y0, Width: size, Height: size}
	rl.DrawTexturePro(r.tex, src, dst, rl.Vector2{}, 0, rl.White)
	rl.EndScissorMode()
}

// DrawRim outlines the sand bed.
func (r *SandRenderer) DrawRim(f *field.Field, cam *camera.Camera, c color.RGBA) {
	cx, cy := cam.WorldToScreen(0, 0)
	outer := float32(f.Grid.Radius) * cam.Zoom
	rl.DrawRing(rl.Vector2{X: cx, Y: cy}, outer, outer+6*cam.Zoom, 0, 360, 96, c)
}

// Unload frees GPU resources.
func (r *SandRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
