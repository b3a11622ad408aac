package systems

import "github.com/pthm-cable/sandgarden/field"

// PoolParams configures the slow drain of pooled sand into holes.
type PoolParams struct {
	DrainFraction float64 // share of the pool spent per tick
	HoleThreshold float64 // cells below -HoleThreshold count as holes
	Increment     float64 // sand added to one hole per tick
}

// MassPool accumulates sand pushed or dug out of the field and feeds it back
// into holes over many ticks. The pool level never goes negative.
type MassPool struct {
	params PoolParams
	level  float64
}

// NewMassPool creates an empty pool.
func NewMassPool(params PoolParams) *MassPool {
	return &MassPool{params: params}
}

// Level returns the sand currently held.
func (p *MassPool) Level() float64 { return p.level }

// Add credits sand to the pool. Non-positive amounts are ignored.
func (p *MassPool) Add(amount float64) {
	if amount > 0 {
		p.level += amount
	}
}

// Reset empties the pool.
func (p *MassPool) Reset() { p.level = 0 }

// Redistribute deposits up to one tick's budget into holes and returns the
// amount deposited.
//
// Holes are found by an absolute threshold, so deep troughs of the wave
// pattern qualify as well as dug pits.
func (p *MassPool) Redistribute(f *field.Field) float64 {
	if p.level <= 0 || p.params.Increment <= 0 {
		return 0
	}
	budget := p.level * p.params.DrainFraction
	if budget <= 0 {
		return 0
	}

	var deposited float64
	for _, i := range f.ActiveCells() {
		if budget-deposited <= 0 {
			break
		}
		if f.Height(i) >= -p.params.HoleThreshold {
			continue
		}
		amount := min(p.params.Increment, budget-deposited)
		deposited += f.Add(i, amount)
	}

	p.level -= deposited
	if p.level < 0 {
		p.level = 0
	}
	return deposited
}
