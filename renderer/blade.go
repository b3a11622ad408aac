package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/camera"
	"github.com/pthm-cable/sandgarden/components"
	"github.com/pthm-cable/sandgarden/field"
)

// BladeRenderer draws the blade arms over the sand.
type BladeRenderer struct {
	Color     color.RGBA
	Thickness float32
	ToothLen  float32
}

// NewBladeRenderer creates a blade renderer.
func NewBladeRenderer(c color.RGBA) *BladeRenderer {
	return &BladeRenderer{Color: c, Thickness: 3, ToothLen: 9}
}

// Draw renders every arm at angle+offset, from the hub to the rim. Comb arms
// carry one tooth per wave crest of the field's pattern.
func (b *BladeRenderer) Draw(cam *camera.Camera, arms []components.Arm, angle float64, f *field.Field) {
	radius := f.Grid.Radius
	teeth := f.ToothPositions()
	cx, cy := cam.WorldToScreen(0, 0)
	hub := rl.Vector2{X: cx, Y: cy}

	for _, arm := range arms {
		theta := angle + arm.Offset
		cos, sin := math.Cos(theta), math.Sin(theta)
		tx, ty := cam.WorldToScreen(float32(radius*cos), float32(radius*sin))
		rl.DrawLineEx(hub, rl.Vector2{X: tx, Y: ty}, b.Thickness, b.Color)

		if arm.Kind != components.ArmComb {
			continue
		}
		// teeth trail the arm, perpendicular to it
		px, py := float32(sin)*b.ToothLen*cam.Zoom, float32(-cos)*b.ToothLen*cam.Zoom
		for _, d := range teeth {
			sx, sy := cam.WorldToScreen(float32(d*cos), float32(d*sin))
			rl.DrawLineEx(
				rl.Vector2{X: sx, Y: sy},
				rl.Vector2{X: sx + px, Y: sy + py},
				b.Thickness*0.6, b.Color,
			)
		}
	}

	rl.DrawCircleV(hub, 6*cam.Zoom, b.Color)
}
