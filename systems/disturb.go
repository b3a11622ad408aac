package systems

import (
	"fmt"
	"math"

	"github.com/pthm-cable/sandgarden/field"
)

// DisturbMode selects how a touch deforms the sand.
type DisturbMode int

const (
	ModeNoise       DisturbMode = iota // fixed-noise ripple
	ModeDig                            // lower the sand
	ModePile                           // raise the sand
	ModeDigConserve                    // dig and heap the removed sand in a ring
)

var disturbModeNames = [...]string{"noise", "dig", "pile", "dig-conserve"}

// String returns the config spelling of the mode.
func (m DisturbMode) String() string {
	if m < 0 || int(m) >= len(disturbModeNames) {
		return fmt.Sprintf("DisturbMode(%d)", int(m))
	}
	return disturbModeNames[m]
}

// ParseDisturbMode converts a config string into a DisturbMode.
func ParseDisturbMode(s string) (DisturbMode, error) {
	for i, name := range disturbModeNames {
		if s == name {
			return DisturbMode(i), nil
		}
	}
	return ModeDig, fmt.Errorf("unknown disturb mode %q", s)
}

// DisturbParams configures the touch footprint.
type DisturbParams struct {
	TouchRadius  float64 // world units
	SpreadRadius float64 // ring width in cells beyond the dig edge (dig-conserve)
	CaptureDigs  bool    // plain digs credit removed sand to the pool
}

// DisturbResult reports what one Disturb call did to the field.
type DisturbResult struct {
	Cells     int     // cells inside the touch disk
	Removed   float64 // sand taken out of the disk
	Added     float64 // sand added inside the disk
	Deposited float64 // sand placed on the conservation ring
	Spilled   float64 // ring sand that did not fit under Max
	Intensity float64 // normalised [0, 1] strength reported to the sink
}

// Disturber applies falloff-weighted height changes around a touch point.
type Disturber struct {
	params DisturbParams
	noise  *CellNoise
	pool   *MassPool
	sink   Sink
}

// NewDisturber creates a disturbance engine. pool may be nil; sink nil means
// NopSink.
func NewDisturber(params DisturbParams, noise *CellNoise, pool *MassPool, sink Sink) *Disturber {
	if sink == nil {
		sink = NopSink{}
	}
	if noise == nil {
		noise = NewCellNoise(0, 0)
	}
	return &Disturber{params: params, noise: noise, pool: pool, sink: sink}
}

// Falloff is the touch weight (1-d/r)^2 for d <= r, else 0.
func Falloff(d, r float64) float64 {
	if r <= 0 {
		if d == 0 {
			return 1
		}
		return 0
	}
	if d > r {
		return 0
	}
	w := 1 - d/r
	return w * w
}

// Disturb deforms the field around world point (x, y). Points outside the
// sand bed leave the field untouched.
func (d *Disturber) Disturb(f *field.Field, x, y, strength float64, mode DisturbMode) DisturbResult {
	var res DisturbResult
	g := f.Grid
	if !g.IsInside(x, y) {
		return res
	}

	cc, cr := g.ToGrid(x, y)
	r := d.params.TouchRadius / g.Resolution
	reach := int(math.Ceil(r))

	var weightSum, moved float64
	for dr := -reach; dr <= reach; dr++ {
		for dc := -reach; dc <= reach; dc++ {
			col, row := cc+dc, cr+dr
			if !g.InBounds(col, row) {
				continue
			}
			i := g.Index(col, row)
			if !f.IsActive(i) {
				continue
			}
			w := Falloff(math.Hypot(float64(dc), float64(dr)), r)
			if w == 0 {
				continue
			}
			res.Cells++
			weightSum += w

			var delta float64
			switch mode {
			case ModeNoise:
				delta = strength * w * d.noise.At(col, row)
			case ModePile:
				delta = strength * w
			default:
				delta = -strength * w
			}
			applied := f.Add(i, delta)
			moved += math.Abs(applied)
			if applied < 0 {
				res.Removed -= applied
			} else {
				res.Added += applied
			}
		}
	}

	switch mode {
	case ModeDigConserve:
		res.Deposited, res.Spilled = d.depositRing(f, cc, cr, r, res.Removed)
		if d.pool != nil {
			d.pool.Add(res.Spilled)
		}
	case ModeDig:
		if d.params.CaptureDigs && d.pool != nil {
			d.pool.Add(res.Removed)
		}
	}

	if res.Cells > 0 && strength > 0 && weightSum > 0 {
		res.Intensity = math.Min(moved/(strength*weightSum), 1)
		d.sink.Disturbed(res.Intensity)
	}
	return res
}

// depositRing spreads total over cells between r+1 and r+SpreadRadius cells
// from the centre, weighted by inverse distance from the dig edge. It returns
// the amount deposited and the amount that did not fit.
func (d *Disturber) depositRing(f *field.Field, cc, cr int, r, total float64) (deposited, spilled float64) {
	if total <= 0 {
		return 0, 0
	}
	g := f.Grid
	inner := r + 1
	outer := r + d.params.SpreadRadius
	if outer < inner {
		return 0, total
	}
	reach := int(math.Ceil(outer))

	type ringCell struct {
		i int
		w float64
	}
	var cells []ringCell
	var weightSum float64
	for dr := -reach; dr <= reach; dr++ {
		for dc := -reach; dc <= reach; dc++ {
			dist := math.Hypot(float64(dc), float64(dr))
			if dist < inner || dist > outer {
				continue
			}
			col, row := cc+dc, cr+dr
			if !g.InBounds(col, row) {
				continue
			}
			if !g.IsInside(g.CellCenter(col, row)) {
				continue
			}
			w := 1 / (dist - r)
			cells = append(cells, ringCell{i: g.Index(col, row), w: w})
			weightSum += w
		}
	}
	if weightSum == 0 {
		return 0, total
	}

	for _, c := range cells {
		deposited += f.Add(c.i, c.w/weightSum*total)
	}
	spilled = total - deposited
	if spilled < 0 {
		spilled = 0
	}
	return deposited, spilled
}
