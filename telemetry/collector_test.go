package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/garden"
	"github.com/pthm-cable/sandgarden/systems"
)

func TestCollectorAccumulatesWindow(t *testing.T) {
	c := NewCollector(3)

	c.Record(garden.TickStats{
		Sweep:        systems.SweepStats{Comb: 10, Smooth: 8, Deviated: 2, Pushed: 0.5, ToPool: 0.25},
		Disturbances: 2,
		Disturb:      systems.DisturbResult{Removed: 1.5, Deposited: 1.0, Spilled: 0.1, Intensity: 0.4},
	})
	c.Record(garden.TickStats{
		Resized:       true,
		Sweep:         systems.SweepStats{Comb: 4, Smooth: 6},
		Disturbances:  1,
		Disturb:       systems.DisturbResult{Added: 0.3, Intensity: 0.9},
		Redistributed: 0.2,
	})
	assert.False(t, c.ShouldFlush(2))
	assert.True(t, c.ShouldFlush(3))

	snap := garden.Snapshot{
		Tick:          3,
		Angle:         0.024,
		RotationSpeed: 0.008,
		Mode:          systems.ModeDigConserve,
		TotalMass:     -1.2,
		Pool:          0.05,
		Deviation:     7,
		Heights:       []float64{2, -2, 1, -1, 0},
	}
	stats := c.Flush(snap)

	assert.Equal(t, uint64(0), stats.WindowStartTick)
	assert.Equal(t, uint64(3), stats.WindowEndTick)
	assert.Equal(t, 2, stats.Ticks)
	assert.Equal(t, "dig-conserve", stats.Mode)
	assert.Equal(t, 14, stats.CombSwept)
	assert.Equal(t, 14, stats.SmoothSwept)
	assert.Equal(t, 2, stats.DeviatedSwept)
	assert.InDelta(t, 0.5, stats.OverflowPushed, 1e-12)
	assert.InDelta(t, 0.25, stats.OverflowToPool, 1e-12)
	assert.Equal(t, 3, stats.Disturbances)
	assert.InDelta(t, 1.5, stats.Removed, 1e-12)
	assert.InDelta(t, 0.3, stats.Added, 1e-12)
	assert.InDelta(t, 1.0, stats.Deposited, 1e-12)
	assert.InDelta(t, 0.1, stats.Spilled, 1e-12)
	assert.InDelta(t, 0.9, stats.MaxIntensity, 1e-12)
	assert.InDelta(t, 0.2, stats.Redistributed, 1e-12)
	assert.Equal(t, 1, stats.Resizes)
	assert.InDelta(t, 0, stats.HeightMean, 1e-12)
	assert.InDelta(t, 0, stats.HeightP50, 1e-12)
	assert.InDelta(t, 1.2, stats.MeanAbsHeight, 1e-12)

	// Snapshot heights are not reordered
	assert.Equal(t, []float64{2, -2, 1, -1, 0}, snap.Heights)

	// Counters reset and the next window starts at the flush tick
	next := c.Flush(garden.Snapshot{Tick: 6})
	assert.Equal(t, uint64(3), next.WindowStartTick)
	assert.Zero(t, next.Ticks)
	assert.Zero(t, next.CombSwept)
	assert.Zero(t, next.MaxIntensity)
	assert.Equal(t, 3, c.WindowTicks())
}

func TestCollectorWithGarden(t *testing.T) {
	cfg := config.Default()
	cfg.Pattern.Initial = "flat"

	perf := NewPerfCollector(10)
	g, err := garden.New(cfg, 800, 600, garden.WithPhaseTimer(perf))
	require.NoError(t, err)

	c := NewCollector(5)
	g.PointerDown(0, 0)
	for !c.ShouldFlush(g.Ticks()) {
		perf.StartTick()
		c.Record(g.Tick())
		perf.EndTick()
	}
	g.PointerUp()

	stats := c.Flush(g.Snapshot(nil))
	assert.Equal(t, uint64(5), stats.WindowEndTick)
	assert.Equal(t, 5, stats.Ticks)
	assert.Equal(t, 5, stats.Disturbances)
	assert.Positive(t, stats.Removed)
	assert.Positive(t, stats.CombSwept)
	assert.Positive(t, stats.SmoothSwept)

	ps := perf.Stats()
	assert.Contains(t, ps.PhaseAvg, PhaseBlade)
	assert.Contains(t, ps.PhaseAvg, PhaseDisturb)
	assert.NotContains(t, ps.PhaseAvg, PhasePool)
}
