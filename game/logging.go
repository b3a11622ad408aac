package game

import (
	"log/slog"
	"time"
)

// logFramePerf logs per-frame timings, slowest first.
func (g *Game) logFramePerf() {
	total := g.perf.Total()
	attrs := []any{
		"tick", g.garden.Ticks(),
		"steps_per_update", g.stepsPerUpdate,
		"frame_us", total.Microseconds(),
	}
	for _, name := range g.perf.SortedNames() {
		avg := g.perf.Avg(name)
		attrs = append(attrs, name+"_us", avg.Round(time.Microsecond).Microseconds())
	}
	slog.Info("frame_perf", attrs...)
}
