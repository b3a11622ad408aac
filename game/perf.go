package game

import (
	"sort"
	"time"
)

const frameSamples = 120 // ~2 seconds at 60fps

// frameRing holds the most recent samples for one frame stage.
type frameRing struct {
	samples [frameSamples]time.Duration
	n, next int
	sum     time.Duration
}

func (r *frameRing) add(d time.Duration) {
	if r.n == frameSamples {
		r.sum -= r.samples[r.next]
	} else {
		r.n++
	}
	r.samples[r.next] = d
	r.sum += d
	r.next = (r.next + 1) % frameSamples
}

// PerfStats tracks time spent per frame stage (input, simulate, draw).
// Tick phases inside the garden are timed by telemetry.PerfCollector.
type PerfStats struct {
	stages map[string]*frameRing
}

// NewPerfStats creates a new frame timing tracker.
func NewPerfStats() *PerfStats {
	return &PerfStats{stages: make(map[string]*frameRing)}
}

// Record adds a duration sample for the named stage.
func (p *PerfStats) Record(name string, d time.Duration) {
	r, ok := p.stages[name]
	if !ok {
		r = &frameRing{}
		p.stages[name] = r
	}
	r.add(d)
}

// Avg returns the average duration for the named stage.
func (p *PerfStats) Avg(name string) time.Duration {
	r, ok := p.stages[name]
	if !ok || r.n == 0 {
		return 0
	}
	return r.sum / time.Duration(r.n)
}

// Total returns the sum of all stage averages.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for name := range p.stages {
		total += p.Avg(name)
	}
	return total
}

// SortedNames returns stage names sorted by average duration (descending).
func (p *PerfStats) SortedNames() []string {
	names := make([]string, 0, len(p.stages))
	for name := range p.stages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
