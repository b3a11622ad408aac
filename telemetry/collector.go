package telemetry

import "github.com/pthm-cable/sandgarden/garden"

// Collector accumulates tick results within windows and produces WindowStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick uint64
	ticks           int

	// Counters for current window
	combSwept      int
	smoothSwept    int
	deviatedSwept  int
	overflowPushed float64
	overflowToPool float64
	disturbances   int
	removed        float64
	added          float64
	deposited      float64
	spilled        float64
	maxIntensity   float64
	redistributed  float64
	resizes        int

	scratch []float64
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// Record adds one tick's results to the current window.
func (c *Collector) Record(st garden.TickStats) {
	c.ticks++
	if st.Resized {
		c.resizes++
	}

	c.combSwept += st.Sweep.Comb
	c.smoothSwept += st.Sweep.Smooth
	c.deviatedSwept += st.Sweep.Deviated
	c.overflowPushed += st.Sweep.Pushed
	c.overflowToPool += st.Sweep.ToPool

	c.disturbances += st.Disturbances
	c.removed += st.Disturb.Removed
	c.added += st.Disturb.Added
	c.deposited += st.Disturb.Deposited
	c.spilled += st.Disturb.Spilled
	if st.Disturb.Intensity > c.maxIntensity {
		c.maxIntensity = st.Disturb.Intensity
	}
	c.redistributed += st.Redistributed
}

// ShouldFlush returns true once the window has seen windowTicks ticks.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= uint64(c.windowTicks)
}

// Flush produces WindowStats from the accumulated counters and the current
// garden state, then resets for the next window.
func (c *Collector) Flush(snap garden.Snapshot) WindowStats {
	c.scratch = append(c.scratch[:0], snap.Heights...)
	hs := ComputeHeightStats(c.scratch)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   snap.Tick,
		Ticks:           c.ticks,

		Angle:         snap.Angle,
		RotationSpeed: snap.RotationSpeed,
		Mode:          snap.Mode.String(),

		TotalMass: snap.TotalMass,
		Pool:      snap.Pool,
		Deviation: snap.Deviation,

		HeightMean:    hs.Mean,
		HeightStd:     hs.Std,
		HeightP10:     hs.P10,
		HeightP50:     hs.P50,
		HeightP90:     hs.P90,
		MeanAbsHeight: hs.MeanAbs,

		CombSwept:      c.combSwept,
		SmoothSwept:    c.smoothSwept,
		DeviatedSwept:  c.deviatedSwept,
		OverflowPushed: c.overflowPushed,
		OverflowToPool: c.overflowToPool,

		Disturbances:  c.disturbances,
		Removed:       c.removed,
		Added:         c.added,
		Deposited:     c.deposited,
		Spilled:       c.spilled,
		MaxIntensity:  c.maxIntensity,
		Redistributed: c.redistributed,
		Resizes:       c.resizes,
	}

	windowTicks := c.windowTicks
	scratch := c.scratch
	*c = Collector{windowTicks: windowTicks, scratch: scratch}
	c.windowStartTick = snap.Tick

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
