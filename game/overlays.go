package game

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/systems"
	"github.com/pthm-cable/sandgarden/ui"
)

var (
	wedgeColor = rl.Color{R: 255, G: 236, B: 170, A: 110}
	touchColor = rl.Color{R: 255, G: 255, B: 255, A: 160}
	toothColor = rl.Color{R: 120, G: 96, B: 60, A: 120}
)

// drawActiveOverlays renders all currently enabled debug overlays.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayWedge:
			g.drawSweepWedges()
		case ui.OverlayTouch:
			g.drawTouchFootprint()
		case ui.OverlayTeeth:
			g.drawToothRings()
		case ui.OverlayPerf:
			g.drawPerfPanels()
		// Target, deviation and blade are handled in Draw
		}
	}
}

// drawSweepWedges shades the annular wedge each arm relaxed on the last tick.
func (g *Game) drawSweepWedges() {
	cx, cy := g.camera.WorldToScreen(0, 0)
	centre := rl.Vector2{X: cx, Y: cy}
	zoom := g.camera.Zoom

	inner := float32(g.cfg.Blade.InnerCutoff) * zoom
	outer := float32(g.garden.Radius()-g.cfg.Blade.OuterInset) * zoom
	if outer <= inner {
		return
	}

	wedge := g.garden.WedgeAngle()
	for _, arm := range g.garden.Arms() {
		end := (g.garden.Angle() + arm.Offset) * 180 / math.Pi
		start := end - wedge*180/math.Pi
		rl.DrawRing(centre, inner, outer, float32(start), float32(end), 4, wedgeColor)
	}
}

// drawTouchFootprint circles the touch radius at the pointer and counts the
// samples waiting for the next tick.
func (g *Game) drawTouchFootprint() {
	p, down := g.garden.Pointer()
	if !down {
		return
	}
	sx, sy := g.camera.WorldToScreen(float32(p.X), float32(p.Y))
	r := float32(g.cfg.Disturb.TouchRadius) * g.camera.Zoom
	rl.DrawCircleLines(int32(sx), int32(sy), r, touchColor)

	if n := g.garden.PendingPoints(); n > 0 {
		rl.DrawText(fmt.Sprintf("%d", n), int32(sx+r)+4, int32(sy)-6, 12, touchColor)
	}
}

// drawToothRings draws the crest radii traced by the comb teeth.
func (g *Game) drawToothRings() {
	cx, cy := g.camera.WorldToScreen(0, 0)
	for _, d := range g.garden.Field().ToothPositions() {
		rl.DrawCircleLines(int32(cx), int32(cy), float32(d)*g.camera.Zoom, toothColor)
	}
}

// drawPerfPanels shows frame stage timings above tick phase timings in the
// bottom-right corner.
func (g *Game) drawPerfPanels() {
	x := int32(g.screenWidth) - 230
	g.perfPanel.SetPosition(x, int32(g.screenHeight)-220)

	frames := make(map[string]time.Duration)
	for _, name := range g.perf.SortedNames() {
		frames[name] = g.perf.Avg(name)
	}
	y := g.perfPanel.Draw(ui.PerfPanelData{
		Title:    "Frame",
		Times:    frames,
		Total:    g.perf.Total(),
		Registry: g.stages,
	}, g.perf.SortedNames())

	stats := g.perfCollector.Stats()
	var phases []string
	for _, info := range g.stages.ByCategory(systems.CategoryTick) {
		if _, ok := stats.PhaseAvg[info.ID]; ok {
			phases = append(phases, info.ID)
		}
	}
	g.perfPanel.SetPosition(x, y+8)
	g.perfPanel.Draw(ui.PerfPanelData{
		Title:    fmt.Sprintf("Tick (%.0f/s)", stats.TicksPerSecond),
		Times:    stats.PhaseAvg,
		Total:    stats.AvgTickDuration,
		Registry: g.stages,
	}, phases)
}
