package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sandgarden/field"
)

type recordingSink struct {
	intensities []float64
}

func (s *recordingSink) Disturbed(intensity float64) {
	s.intensities = append(s.intensities, intensity)
}

func TestFalloff(t *testing.T) {
	tests := []struct {
		name string
		d, r float64
		want float64
	}{
		{"centre", 0, 17.5, 1},
		{"half", 8.75, 17.5, 0.25},
		{"edge", 17.5, 17.5, 0},
		{"beyond", 18, 17.5, 0},
		{"zero radius centre", 0, 0, 1},
		{"zero radius off centre", 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Falloff(tt.d, tt.r), 1e-12)
		})
	}
}

func TestDigWorkedExample(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -6, Max: 6})
	f.Initialize(field.InitFlat)
	d := NewDisturber(DisturbParams{TouchRadius: 35}, nil, nil, nil)

	res := d.Disturb(f, 0.5, 0.5, 0.25, ModeDig)
	require.Greater(t, res.Cells, 0)

	cc, cr := f.Grid.ToGrid(0.5, 0.5)
	assert.InDelta(t, -0.25, f.Height(f.Grid.Index(cc, cr)), 1e-12)

	// 17.5 cells is the touch radius; the first cell past it is untouched
	assert.Zero(t, f.Height(f.Grid.Index(cc+18, cr)))
	edge := f.Height(f.Grid.Index(cc+17, cr))
	assert.InDelta(t, -0.25*math.Pow(0.5/17.5, 2), edge, 1e-12)
	assert.InDelta(t, res.Removed, -f.TotalMass(), 1e-9)
}

func TestDisturbOutsideGardenIsNoop(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -6, Max: 6})
	f.Initialize(field.InitPatterned)
	before := append([]float64(nil), f.Heights()...)

	sink := &recordingSink{}
	d := NewDisturber(DisturbParams{TouchRadius: 35, SpreadRadius: 6}, nil, nil, sink)

	margin := f.Grid.Radius - f.Grid.Margin
	points := [][2]float64{{margin, 0}, {0, -margin}, {margin, margin}, {500, 0}}
	for _, mode := range []DisturbMode{ModeNoise, ModeDig, ModePile, ModeDigConserve} {
		for _, p := range points {
			res := d.Disturb(f, p[0], p[1], 1, mode)
			assert.Zero(t, res.Cells)
		}
	}
	assert.Equal(t, before, f.Heights())
	assert.Empty(t, sink.intensities)
}

func TestDigConserveDepositsRemovedSand(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -6, Max: 6})
	f.Initialize(field.InitFlat)
	d := NewDisturber(DisturbParams{TouchRadius: 20, SpreadRadius: 6}, nil, nil, nil)

	res := d.Disturb(f, 10, -5, 0.5, ModeDigConserve)
	require.Greater(t, res.Removed, 0.0)
	assert.InDelta(t, res.Removed, res.Deposited, 1e-9)
	assert.Zero(t, res.Spilled)
	assert.InDelta(t, 0, f.TotalMass(), 1e-9)
}

func TestDigConserveSpillsToPool(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -1, Max: 1})
	f.Initialize(field.InitFlat)
	for _, i := range f.ActiveCells() {
		f.Set(i, 0.95)
	}
	pool := NewMassPool(PoolParams{DrainFraction: 0.02, HoleThreshold: 0.5, Increment: 0.05})
	d := NewDisturber(DisturbParams{TouchRadius: 20, SpreadRadius: 3}, nil, pool, nil)

	mass := f.TotalMass()
	res := d.Disturb(f, 0, 0, 1, ModeDigConserve)
	assert.Greater(t, res.Spilled, 0.0)
	assert.InDelta(t, res.Spilled, pool.Level(), 1e-9)
	assert.InDelta(t, mass, f.TotalMass()+pool.Level(), 1e-9)
}

func TestPileClampsAtMax(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -3, Max: 3})
	f.Initialize(field.InitFlat)
	d := NewDisturber(DisturbParams{TouchRadius: 10}, nil, nil, nil)

	for i := 0; i < 50; i++ {
		d.Disturb(f, 0, 0, 1, ModePile)
	}
	cc, cr := f.Grid.ToGrid(0, 0)
	assert.Equal(t, 3.0, f.Height(f.Grid.Index(cc, cr)))
	for _, h := range f.Heights() {
		assert.LessOrEqual(t, h, 3.0)
	}
}

func TestCaptureDigsFillsPool(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -6, Max: 6})
	f.Initialize(field.InitFlat)
	pool := NewMassPool(PoolParams{})

	d := NewDisturber(DisturbParams{TouchRadius: 10, CaptureDigs: true}, nil, pool, nil)
	res := d.Disturb(f, 0, 0, 0.5, ModeDig)
	assert.InDelta(t, res.Removed, pool.Level(), 1e-12)
}

func TestNoiseDisturbanceIsReproducible(t *testing.T) {
	run := func() []float64 {
		f := newTestField(100, field.Bounds{Min: -6, Max: 6})
		f.Initialize(field.InitFlat)
		d := NewDisturber(DisturbParams{TouchRadius: 30}, NewCellNoise(11, 0.3), nil, nil)
		d.Disturb(f, -12, 7, 0.8, ModeNoise)
		return append([]float64(nil), f.Heights()...)
	}
	a, b := run(), run()
	assert.Equal(t, a, b)

	var nonzero int
	for _, h := range a {
		if h != 0 {
			nonzero++
		}
	}
	assert.Greater(t, nonzero, 0)
}

func TestSinkReceivesNormalisedIntensity(t *testing.T) {
	f := newTestField(100, field.Bounds{Min: -6, Max: 6})
	f.Initialize(field.InitFlat)
	sink := &recordingSink{}
	d := NewDisturber(DisturbParams{TouchRadius: 10}, nil, nil, sink)

	d.Disturb(f, 0, 0, 0.5, ModeDig)
	require.Len(t, sink.intensities, 1)
	assert.InDelta(t, 1, sink.intensities[0], 1e-9)

	// most of the disk is pinned at Min, so little moves
	for i := 0; i < 20; i++ {
		d.Disturb(f, 0, 0, 0.5, ModeDig)
	}
	last := sink.intensities[len(sink.intensities)-1]
	assert.Less(t, last, 1.0)
	assert.GreaterOrEqual(t, last, 0.0)
}

func TestParseDisturbMode(t *testing.T) {
	for _, mode := range []DisturbMode{ModeNoise, ModeDig, ModePile, ModeDigConserve} {
		got, err := ParseDisturbMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseDisturbMode("rake")
	assert.Error(t, err)
}
