package game

import (
	"time"

	"github.com/pthm-cable/sandgarden/telemetry"
)

// Update handles input and runs stepsPerUpdate simulation ticks.
func (g *Game) Update() {
	start := time.Now()
	g.handleInput()
	g.perf.Record("input", time.Since(start))

	if g.paused {
		return
	}

	start = time.Now()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
	g.perf.Record("simulate", time.Since(start))
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single tick of the garden and records telemetry.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	st := g.garden.Tick()
	if st.Resized && g.camera != nil {
		g.camera.SetLimit(float32(g.garden.Radius()))
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(st)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
