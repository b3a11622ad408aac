package renderer

import (
	"image/color"

	perlin "github.com/aquilax/go-perlin"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/palette"
)

// BackgroundRenderer renders a soft perlin stone texture behind the garden.
// The texture is generated once per screen size.
type BackgroundRenderer struct {
	noise *perlin.Perlin
	scale float64
	base  color.RGBA

	tex              rl.Texture2D
	screenW, screenH int32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, base color.RGBA, seed int64) *BackgroundRenderer {
	return &BackgroundRenderer{
		noise:   perlin.NewPerlin(2, 2, 4, seed),
		scale:   0.012,
		base:    base,
		screenW: screenW,
		screenH: screenH,
	}
}

// Init builds the texture (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	w, h := int(b.screenW), int(b.screenH)
	pixels := make([]color.RGBA, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := b.noise.Noise2D(float64(x)*b.scale, float64(y)*b.scale)
			pixels[y*w+x] = palette.Scale(b.base, 1+0.35*n)
		}
	}

	img := rl.GenImageColor(w, h, rl.Blank)
	b.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.UpdateTexture(b.tex, pixels)

	b.initialized = true
}

// Resize regenerates the texture for a new screen size.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	if screenW == b.screenW && screenH == b.screenH {
		return
	}
	b.Unload()
	b.screenW, b.screenH = screenW, screenH
}

// Draw renders the background.
func (b *BackgroundRenderer) Draw() {
	if !b.initialized {
		b.Init()
	}
	rl.DrawTexture(b.tex, 0, 0, rl.White)
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadTexture(b.tex)
		b.initialized = false
	}
}
