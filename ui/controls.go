package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModeEntry is one selectable touch mode in the controls panel.
type ModeEntry struct {
	Key    string
	Name   string
	Active bool
}

// ControlsPanel renders the left-side help panel: touch modes, overlay
// toggles and the remaining key bindings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

var keyHelp = [][2]string{
	{"Space", "Pause"},
	{"< >", "Steps per frame"},
	{"R", "Reset garden"},
	{"Wheel", "Zoom"},
	{"Arrows", "Pan"},
	{"Home", "Reset view"},
	{"F11", "Fullscreen"},
}

// Height returns the panel height for the given content.
func (c *ControlsPanel) Height(modes []ModeEntry, overlays *OverlayRegistry) int32 {
	lh := c.renderer.Theme.LineHeight
	rows := int32(len(modes)+1) + int32(len(keyHelp)+1)
	for _, cat := range overlays.Categories() {
		rows += int32(len(overlays.ByCategory(cat))) + 1
	}
	return rows*lh + c.renderer.Theme.Padding*3 + lh
}

// Draw renders the controls panel and returns the y below it.
func (c *ControlsPanel) Draw(modes []ModeEntry, overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	inner := c.width - padding*2

	r.DrawPanel(c.x, c.y, c.width, c.Height(modes, overlays))

	y := c.y + padding
	rl.DrawText("Controls [H]", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	y = r.DrawSectionHeader(c.x+padding, y, "Touch")
	for _, m := range modes {
		c.drawToggle(c.x+padding, y, m.Name, m.Key, m.Active, inner)
		y += lineHeight
	}

	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc.Name, desc.KeyLabel, overlays.IsEnabled(desc.ID), inner)
			y += lineHeight
		}
	}

	y = r.DrawSectionHeader(c.x+padding, y, "Keys")
	for _, kh := range keyHelp {
		rl.DrawText(kh[1], c.x+padding+14, y, r.Theme.FontSize, r.Theme.LabelColor)
		c.drawKey(c.x+padding, y, kh[0], inner)
		y += lineHeight
	}

	return y
}

// drawToggle draws one line with a status square, a name and its key.
func (c *ControlsPanel) drawToggle(x, y int32, name, key string, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 72, B: 60, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = r.Theme.BarFill
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(name, x+14, y, r.Theme.FontSize, nameColor)
	c.drawKey(x, y, key, width)
}

// drawKey right-aligns a key label.
func (c *ControlsPanel) drawKey(x, y int32, key string, width int32) {
	if key == "" {
		return
	}
	fs := c.renderer.Theme.FontSize
	keyText := fmt.Sprintf("[%s]", key)
	keyWidth := rl.MeasureText(keyText, fs)
	rl.DrawText(keyText, x+width-keyWidth, y, fs, rl.Color{R: 150, G: 140, B: 120, A: 255})
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "View"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
