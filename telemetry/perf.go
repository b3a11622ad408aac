package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/sandgarden/garden"
)

// Phase names for one tick. The garden reports its own phases through
// StartPhase; telemetry is timed by the caller.
const (
	PhaseResize    = garden.PhaseResize
	PhaseBlade     = garden.PhaseBlade
	PhaseDisturb   = garden.PhaseDisturb
	PhasePool      = garden.PhasePool
	PhaseTelemetry = "telemetry"
)

// Phases lists the tick phases in execution order.
var Phases = []string{PhaseResize, PhaseBlade, PhaseDisturb, PhasePool, PhaseTelemetry}

// tickSample holds the duration of one tick and of each phase slot in it.
type tickSample struct {
	total  time.Duration
	phases []time.Duration // indexed by slot
	ran    []bool
}

// PerfCollector times ticks and their phases over a rolling window of
// samples. It implements garden.PhaseTimer. Phase names are mapped to slots
// on first use so recording a tick does not allocate.
type PerfCollector struct {
	ring  []tickSample
	next  int
	count int

	slots map[string]int
	names []string // slot -> phase name

	tickStart  time.Time
	phaseStart time.Time
	phase      int // current slot, -1 between ticks
	current    []time.Duration
	ran        []bool

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks
// (60 when windowSize < 1). The known tick phases get the first slots.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		ring:  make([]tickSample, windowSize),
		slots: make(map[string]int, len(Phases)),
		phase: -1,
	}
	for _, name := range Phases {
		p.slot(name)
	}
	return p
}

// slot returns the index for a phase name, registering it if new.
func (p *PerfCollector) slot(name string) int {
	if i, ok := p.slots[name]; ok {
		return i
	}
	i := len(p.names)
	p.slots[name] = i
	p.names = append(p.names, name)
	p.current = append(p.current, 0)
	p.ran = append(p.ran, false)
	return i
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	clear(p.ran)
	p.phase = -1
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = p.slot(phase)
	p.ran[p.phase] = true
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the last phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1

	s := &p.ring[p.next]
	s.total = now.Sub(p.tickStart)
	s.phases = append(s.phases[:0], p.current...)
	s.ran = append(s.ran[:0], p.ran...)

	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples in the window. Phases that never ran in the
// window are absent from PhaseAvg and PhasePct.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		st.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return st
	}

	var total time.Duration
	sums := make([]time.Duration, len(p.names))
	seen := make([]bool, len(p.names))
	for i, s := range p.ring[:p.count] {
		total += s.total
		if i == 0 || s.total < st.MinTickDuration {
			st.MinTickDuration = s.total
		}
		st.MaxTickDuration = max(st.MaxTickDuration, s.total)

		for slot, d := range s.phases {
			if s.ran[slot] {
				sums[slot] += d
				seen[slot] = true
			}
		}
	}

	n := time.Duration(p.count)
	st.AvgTickDuration = total / n
	if st.AvgTickDuration > 0 {
		st.TicksPerSecond = float64(time.Second) / float64(st.AvgTickDuration)
	}

	for slot, name := range p.names {
		if !seen[slot] {
			continue
		}
		avg := sums[slot] / n
		st.PhaseAvg[name] = avg
		if st.AvgTickDuration > 0 {
			st.PhasePct[name] = float64(avg) / float64(st.AvgTickDuration) * 100
		}
	}
	return st
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}

	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	ResizePct    float64 `csv:"resize_pct"`
	BladePct     float64 `csv:"blade_pct"`
	DisturbPct   float64 `csv:"disturb_pct"`
	PoolPct      float64 `csv:"pool_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		ResizePct:    s.PhasePct[PhaseResize],
		BladePct:     s.PhasePct[PhaseBlade],
		DisturbPct:   s.PhasePct[PhaseDisturb],
		PoolPct:      s.PhasePct[PhasePool],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
