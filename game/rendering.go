package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/palette"
	"github.com/pthm-cable/sandgarden/renderer"
	"github.com/pthm-cable/sandgarden/ui"
)

// Draw renders the garden and UI.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	start := time.Now()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color(palette.RGBA(g.cfg.Render.Background)))

	g.background.Draw()

	f := g.garden.Field()
	g.sand.Shade = g.shade()
	g.sand.Update(f)
	g.sand.Draw(f, g.camera)
	g.sand.DrawRim(f, g.camera, palette.Scale(palette.RGBA(g.cfg.Render.Background), 0.6))

	if g.overlays.IsEnabled(ui.OverlayBlade) {
		g.blade.Draw(g.camera, g.garden.Arms(), g.garden.Angle(), f)
	}

	g.drawActiveOverlays()
	g.drawUI()

	rl.EndDrawing()
	g.perf.Record("draw", time.Since(start))
}

// shade picks the sand texture source from the overlay toggles.
func (g *Game) shade() renderer.Shade {
	switch {
	case g.overlays.IsEnabled(ui.OverlayTarget):
		return renderer.ShadeTarget
	case g.overlays.IsEnabled(ui.OverlayDeviation):
		return renderer.ShadeDeviation
	default:
		return renderer.ShadeHeight
	}
}

// drawUI renders the HUD, speed slider and controls panel.
func (g *Game) drawUI() {
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)

	g.hud.Draw(g.hudData(), sw, sh)

	if g.speed != nil {
		if v, changed := g.speed.Draw(); changed {
			g.garden.SetSpeedInput(float64(v))
		}
	}

	g.controls.Draw(g.modeEntries(), g.overlays)

	legend := fmt.Sprintf("[H] Help  [1-4] Touch: %s  [R] Reset  [Space] Pause", g.garden.DisturbMode())
	g.hud.DrawControls(sw, sh, legend)
}

// hudData collects the values shown in the HUD.
func (g *Game) hudData() ui.HUDData {
	f := g.garden.Field()
	return ui.HUDData{
		Title:          g.cfg.Screen.Title,
		Preset:         g.cfg.Preset,
		Tick:           g.garden.Ticks(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,

		Mode:          g.garden.DisturbMode().String(),
		Interacting:   g.garden.Interacting(),
		Angle:         g.garden.Angle(),
		RotationSpeed: g.garden.RotationSpeed(),
		SpeedControl:  g.cfg.Blade.Speed.Enabled,
		SpeedInput:    g.garden.SpeedInput(),

		PoolEnabled: g.cfg.Pool.Enabled,
		Pool:        g.garden.Pool(),
		TotalMass:   f.TotalMass(),
		Deviation:   f.Deviation(),
		ActiveCells: len(f.ActiveCells()),
		Intensity:   g.garden.LastTick().Disturb.Intensity,
	}
}
