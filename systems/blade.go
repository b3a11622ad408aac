// Package systems contains the per-tick engines that mutate the sand field.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sandgarden/components"
	"github.com/pthm-cable/sandgarden/field"
)

const twoPi = 2 * math.Pi

// BladeParams configures the rotating blade.
type BladeParams struct {
	RotationSpeed float64 // radians per tick
	WedgeFactor   float64 // wedge width as a multiple of RotationSpeed
	InnerCutoff   float64 // world radius below which the hub is skipped
	OuterInset    float64 // sweep stops at Radius-OuterInset

	Relax    RelaxParams
	Overflow OverflowParams
}

// SweepStats summarises one blade update.
type SweepStats struct {
	Comb     int     // cells relaxed by comb arms
	Smooth   int     // cells relaxed by smooth arms
	Pushed   float64 // sand removed from dunes by overflow
	ToPool   float64 // share of Pushed credited to the pool
	Deviated int     // cells that were in the slow, disturbed regime
}

// SweepObserver is called for every cell a blade arm relaxes.
type SweepObserver func(cell int, kind components.ArmKind)

// BladeSystem advances the blade angle and relaxes cells in the wedge each
// arm swept since the previous tick.
type BladeSystem struct {
	filter *ecs.Filter1[components.Arm]
	params BladeParams
	pool   *MassPool

	angle float64

	// stamp marks cells already relaxed by the arm being processed
	stamp []uint32
	epoch uint32

	Observer SweepObserver
}

// NewBladeSystem creates a blade system iterating the Arm entities of w.
// pool may be nil, in which case overflow spill stays in the field.
func NewBladeSystem(w *ecs.World, params BladeParams, pool *MassPool) *BladeSystem {
	return &BladeSystem{
		filter: ecs.NewFilter1[components.Arm](w),
		params: params,
		pool:   pool,
	}
}

// Angle returns the blade angle in [0, 2π).
func (s *BladeSystem) Angle() float64 { return s.angle }

// RotationSpeed returns the current speed in radians per tick.
func (s *BladeSystem) RotationSpeed() float64 { return s.params.RotationSpeed }

// SetRotationSpeed changes the speed used from the next Update.
func (s *BladeSystem) SetRotationSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	s.params.RotationSpeed = speed
}

// WedgeAngle returns the width of the wedge swept per tick.
func (s *BladeSystem) WedgeAngle() float64 {
	return s.params.RotationSpeed * s.params.WedgeFactor
}

// Reset returns the blade to angle zero.
func (s *BladeSystem) Reset() {
	s.angle = 0
	s.stamp = nil
}

// Update advances the blade one tick and relaxes every swept cell.
func (s *BladeSystem) Update(f *field.Field) SweepStats {
	s.angle = math.Mod(s.angle+s.params.RotationSpeed, twoPi)
	if s.angle < 0 {
		s.angle += twoPi
	}

	if len(s.stamp) != f.Len() {
		s.stamp = make([]uint32, f.Len())
		s.epoch = 0
	}

	var stats SweepStats
	query := s.filter.Query()
	for query.Next() {
		arm := query.Get()
		s.epoch++
		s.sweepArm(f, s.angle+arm.Offset, arm.Kind, &stats)
	}
	return stats
}

// sweepArm relaxes the trailing wedge behind armAngle.
func (s *BladeSystem) sweepArm(f *field.Field, armAngle float64, kind components.ArmKind, stats *SweepStats) {
	g := f.Grid
	wedge := s.WedgeAngle()
	outer := g.Radius - s.params.OuterInset

	for r := s.params.InnerCutoff; r <= outer; r += g.Resolution {
		// angular samples no more than a quarter cell of arc apart
		n := 1
		if r > 0 && wedge > 0 {
			n = int(math.Ceil(wedge*r/(g.Resolution*0.25))) + 1
		}
		for j := 0; j < n; j++ {
			theta := armAngle
			if n > 1 {
				theta = armAngle - wedge + wedge*float64(j)/float64(n-1)
			}
			cos, sin := math.Cos(theta), math.Sin(theta)
			col, row := g.ToGrid(r*cos, r*sin)
			if !g.InBounds(col, row) {
				continue
			}
			i := g.Index(col, row)
			if !f.IsActive(i) || s.stamp[i] == s.epoch {
				continue
			}
			s.stamp[i] = s.epoch
			s.relaxCell(f, i, r, cos, sin, kind, stats)
		}
	}
}

// relaxCell pushes excess sand off a dune, then relaxes the cell toward its goal.
func (s *BladeSystem) relaxCell(f *field.Field, i int, r, cos, sin float64, kind components.ArmKind, stats *SweepStats) {
	goal := 0.0
	if kind == components.ArmComb {
		goal = f.Target(i)
		stats.Comb++
	} else {
		stats.Smooth++
	}

	current := f.Height(i)
	if ov := s.params.Overflow; ov.Enabled && current-goal > ov.Threshold {
		excess := (current - goal - ov.Threshold) * ov.PushStrength
		removed := -f.Add(i, -excess)
		stats.Pushed += removed

		toPool := removed * ov.PoolShare
		rest := removed - toPool
		spilled := s.spreadToNeighbors(f, i, r, cos, sin, rest)
		toPool += spilled
		if s.pool != nil {
			s.pool.Add(toPool)
			stats.ToPool += toPool
		} else {
			f.Add(i, toPool)
		}
		current = f.Height(i)
	}

	if s.params.Relax.Mode == RelaxGraded && math.Abs(goal-current) > s.params.Relax.DisturbThreshold {
		stats.Deviated++
	}
	f.Set(i, s.params.Relax.Step(current, goal))

	if s.Observer != nil {
		s.Observer(i, kind)
	}
}

// spreadToNeighbors deposits amount into the cells inward and outward along
// the arm, perpendicular to the blade's travel. It returns what did not fit.
func (s *BladeSystem) spreadToNeighbors(f *field.Field, self int, r, cos, sin, amount float64) float64 {
	spread := s.params.Overflow.NeighborSpread
	if amount <= 0 || spread <= 0 {
		return amount
	}
	g := f.Grid

	var targets [8]int
	neighbors := targets[:0]
	for k := 1; k <= spread; k++ {
		for _, dr := range [2]float64{-1, 1} {
			rr := r + dr*float64(k)*g.Resolution
			col, row := g.ToGrid(rr*cos, rr*sin)
			if !g.InBounds(col, row) {
				continue
			}
			i := g.Index(col, row)
			if i == self || !f.IsActive(i) {
				continue
			}
			neighbors = append(neighbors, i)
		}
	}
	if len(neighbors) == 0 {
		return amount
	}

	share := amount / float64(len(neighbors))
	left := amount
	for _, i := range neighbors {
		left -= f.Add(i, share)
	}
	if left < 0 {
		left = 0
	}
	return left
}
