package systems

import (
	"fmt"
	"math"
)

// RelaxMode selects how the blade corrects a cell toward its goal.
type RelaxMode int

const (
	// RelaxFixed applies the same rate on every pass.
	RelaxFixed RelaxMode = iota
	// RelaxGraded corrects large disturbances slowly, small ones quickly,
	// and snaps cells that are already close.
	RelaxGraded
)

// ParseRelaxMode converts a config string into a RelaxMode.
func ParseRelaxMode(s string) (RelaxMode, error) {
	switch s {
	case "", "fixed":
		return RelaxFixed, nil
	case "graded":
		return RelaxGraded, nil
	}
	return RelaxFixed, fmt.Errorf("unknown relax mode %q", s)
}

// RelaxParams holds the relaxation constants.
type RelaxParams struct {
	Mode RelaxMode

	Rate float64 // fixed mode rate per pass

	SlowRate         float64 // graded: |diff| > DisturbThreshold
	FastRate         float64 // graded: SnapEpsilon <= |diff| <= DisturbThreshold
	DisturbThreshold float64
	SnapEpsilon      float64 // graded: below this the cell is set to its goal
}

// Step returns current moved one pass toward goal.
func (p RelaxParams) Step(current, goal float64) float64 {
	diff := goal - current
	switch p.Mode {
	case RelaxGraded:
		ad := math.Abs(diff)
		switch {
		case ad < p.SnapEpsilon:
			return goal
		case ad > p.DisturbThreshold:
			return current + diff*p.SlowRate
		default:
			return current + diff*p.FastRate
		}
	default:
		return current + diff*p.Rate
	}
}

// OverflowParams configures how dunes under the blade are pushed aside.
type OverflowParams struct {
	Enabled        bool
	Threshold      float64 // height above goal tolerated before pushing
	PushStrength   float64 // fraction of the excess removed per pass
	PoolShare      float64 // fraction of removed sand sent to the mass pool
	NeighborSpread int     // radial neighbours receiving the rest, per side
}
