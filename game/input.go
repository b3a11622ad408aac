package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/systems"
	"github.com/pthm-cable/sandgarden/ui"
)

// modeKeys maps number keys to touch modes.
var modeKeys = []struct {
	key   int32
	label string
	mode  systems.DisturbMode
}{
	{rl.KeyOne, "1", systems.ModeNoise},
	{rl.KeyTwo, "2", systems.ModeDig},
	{rl.KeyThree, "3", systems.ModePile},
	{rl.KeyFour, "4", systems.ModeDigConserve},
}

// handleInput processes keyboard, mouse and touch input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	for _, mk := range modeKeys {
		if rl.IsKeyPressed(mk.key) {
			g.garden.SetDisturbMode(mk.mode)
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.garden.Reset()
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}

	g.handleOverlayKeys()
	g.handleCameraInput()
	g.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	// The garden picks the new size up at the start of the next tick
	g.garden.Resize(int(w), int(h))

	g.camera.Resize(w, h)
	g.background.Resize(int32(w), int32(h))
	if g.speed != nil {
		g.speed.Layout(int32(w), int32(h))
	}
}

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(6.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handlePointer forwards mouse and touch drags to the garden. Presses that
// start over a UI panel stay with the UI.
func (g *Game) handlePointer() {
	x, y, down := pointerState()

	if !down {
		if g.pointerDown {
			g.garden.PointerUp()
			g.pointerDown = false
		}
		return
	}

	if !g.pointerDown && g.overUI(x, y) {
		return
	}

	wx, wy := g.camera.ScreenToWorld(x, y)
	if g.pointerDown {
		g.garden.PointerMove(float64(wx), float64(wy))
		return
	}
	g.garden.PointerDown(float64(wx), float64(wy))
	g.pointerDown = true
}

// pointerState returns the primary touch point, or the mouse while its left
// button is held.
func pointerState() (x, y float32, down bool) {
	if rl.GetTouchPointCount() > 0 {
		p := rl.GetTouchPosition(0)
		return p.X, p.Y, true
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		p := rl.GetMousePosition()
		return p.X, p.Y, true
	}
	return 0, 0, false
}

// overUI reports whether a screen point falls on a panel.
func (g *Game) overUI(x, y float32) bool {
	if g.speed != nil && g.speed.Contains(x, y) {
		return true
	}
	b := g.hud.Bounds()
	if ui.Contains(b.X, b.Y, b.Width, b.Height, x, y) {
		return true
	}
	if g.controls.IsVisible() {
		h := g.controls.Height(g.modeEntries(), g.overlays)
		return ui.Contains(10, 80, 200, float32(h), x, y)
	}
	return false
}

// modeEntries lists the touch modes for the controls panel.
func (g *Game) modeEntries() []ui.ModeEntry {
	current := g.garden.DisturbMode()
	entries := make([]ui.ModeEntry, len(modeKeys))
	for i, mk := range modeKeys {
		entries[i] = ui.ModeEntry{Key: mk.label, Name: mk.mode.String(), Active: mk.mode == current}
	}
	return entries
}
