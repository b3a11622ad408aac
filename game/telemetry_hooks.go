package game

import (
	"log/slog"

	"github.com/pthm-cable/sandgarden/telemetry"
)

// flushTelemetry closes a stats window once it is due and fans the result
// out to the callback, the log and the CSV output.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.garden.Ticks()) {
		return
	}

	g.snap = g.garden.Snapshot(&g.snap)
	window := g.collector.Flush(g.snap)
	perf := g.perfCollector.Stats()
	marks := g.bookmarkDetector.Check(window)

	if g.statsCallback != nil {
		g.statsCallback(window)
	}
	if g.logStats {
		g.logWindow(window, perf, marks)
	}
	g.recordWindow(window, perf, marks)
}

func (g *Game) logWindow(window telemetry.WindowStats, perf telemetry.PerfStats, marks []telemetry.Bookmark) {
	window.LogStats()
	perf.LogStats()
	if !g.headless {
		g.logFramePerf()
	}
	for _, bm := range marks {
		bm.LogBookmark()
	}
}

// recordWindow writes to the run directory; a nil output manager is a no-op.
func (g *Game) recordWindow(window telemetry.WindowStats, perf telemetry.PerfStats, marks []telemetry.Bookmark) {
	out := g.outputManager
	if err := out.WriteTelemetry(window); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := out.WritePerf(perf, window.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	for _, bm := range marks {
		if err := out.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
			return
		}
	}
}
