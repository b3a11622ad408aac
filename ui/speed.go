package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpeedControl is a raygui slider for the blade speed input. Pointer events
// over its panel belong to the slider, not the garden.
type SpeedControl struct {
	Min, Max float32
	value    float32
	panel    rl.Rectangle
	renderer *Renderer
}

// NewSpeedControl creates a slider over [min, max] starting at initial.
func NewSpeedControl(min, max, initial float32) *SpeedControl {
	return &SpeedControl{
		Min:      min,
		Max:      max,
		value:    initial,
		renderer: NewRenderer(),
	}
}

// Layout places the panel in the bottom-left corner of the screen.
func (s *SpeedControl) Layout(screenW, screenH int32) {
	const w, h = 260, 56
	x, y := PanelOrigin(AnchorBottomLeft, w, h, screenW, screenH, 10)
	s.panel = rl.Rectangle{X: float32(x), Y: float32(y - 24), Width: w, Height: h}
}

// Value returns the slider value.
func (s *SpeedControl) Value() float32 { return s.value }

// Contains reports whether a screen point is over the panel.
func (s *SpeedControl) Contains(x, y float32) bool {
	p := s.panel
	return Contains(p.X, p.Y, p.Width, p.Height, x, y)
}

// Draw renders the slider and reports whether its value changed.
func (s *SpeedControl) Draw() (float32, bool) {
	p := s.panel
	s.renderer.DrawPanel(int32(p.X), int32(p.Y), int32(p.Width), int32(p.Height))
	rl.DrawText(fmt.Sprintf("Blade speed: %.0f", s.value), int32(p.X)+10, int32(p.Y)+8, 14, s.renderer.Theme.LabelColor)

	next := gui.SliderBar(
		rl.Rectangle{X: p.X + 30, Y: p.Y + 28, Width: p.Width - 60, Height: 16},
		fmt.Sprintf("%.0f", s.Min), fmt.Sprintf("%.0f", s.Max),
		s.value, s.Min, s.Max,
	)
	changed := next != s.value
	s.value = next
	return next, changed
}
