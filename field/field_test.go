package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridExtents(t *testing.T) {
	tests := []struct {
		name       string
		radius     float64
		resolution float64
		want       int
	}{
		{"even", 100, 2, 100},
		{"rounds up", 100, 3, 67},
		{"tiny", 0.5, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.radius, tt.resolution, 0)
			assert.Equal(t, tt.want, g.Cols)
			assert.Equal(t, tt.want, g.Rows)
		})
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := NewGrid(100, 2, 1)
	points := []struct{ x, y float64 }{
		{0, 0}, {-99.5, -99.5}, {37.3, -12.9}, {1.999, 2.001}, {-0.001, 0.001},
	}
	for _, p := range points {
		col, row := g.ToGrid(p.x, p.y)
		require.True(t, g.InBounds(col, row), "point %v should map inside the grid", p)

		wx, wy := g.ToWorld(col, row)
		assert.True(t, p.x >= wx && p.x < wx+g.Resolution, "x=%v not in [%v,%v)", p.x, wx, wx+g.Resolution)
		assert.True(t, p.y >= wy && p.y < wy+g.Resolution, "y=%v not in [%v,%v)", p.y, wy, wy+g.Resolution)
	}
}

func TestGridIsInside(t *testing.T) {
	g := NewGrid(100, 2, 5)
	assert.True(t, g.IsInside(0, 0))
	assert.True(t, g.IsInside(94.9, 0))
	assert.False(t, g.IsInside(95, 0))
	assert.False(t, g.IsInside(70, 70))
	assert.False(t, g.Active(-1, 0))
}

func TestWaveWorkedExample(t *testing.T) {
	p := Pattern{Amplitude: 1.5, ToothSpacing: 16}
	require.Equal(t, 6, p.ToothCount(100))

	f := New(NewGrid(100, 2, 1), p, Bounds{Min: -6, Max: 6})
	assert.InDelta(t, 0.06, f.WaveFrequency(), 1e-12)
	assert.Equal(t, 6, f.ToothCount())

	assert.InDelta(t, 0, Wave(1.5, f.WaveFrequency(), 0), 1e-12)
	peak := 1 / (4 * f.WaveFrequency())
	assert.InDelta(t, 4.1667, peak, 1e-3)
	assert.InDelta(t, 1.5, Wave(1.5, f.WaveFrequency(), peak), 1e-12)

	teeth := f.ToothPositions()
	require.Len(t, teeth, f.ToothCount())
	for _, d := range teeth {
		assert.InDelta(t, 1.5, Wave(1.5, f.WaveFrequency(), d), 1e-9, "tooth at %v is off a crest", d)
	}
	assert.InDelta(t, peak, teeth[0], 1e-12)
}

func TestTargetZeroOutsideGarden(t *testing.T) {
	f := New(NewGrid(50, 2, 1), Pattern{Amplitude: 2, ToothSpacing: 8}, Bounds{Min: -6, Max: 6})
	corner := f.Grid.Index(0, 0)
	assert.False(t, f.IsActive(corner))
	assert.Zero(t, f.Target(corner))

	for _, i := range f.ActiveCells() {
		assert.LessOrEqual(t, math.Abs(f.Target(i)), 2.0)
	}
}

func TestInitializeModes(t *testing.T) {
	newField := func() *Field {
		return New(NewGrid(40, 2, 1), Pattern{Amplitude: 2, ToothSpacing: 8}, Bounds{Min: -3, Max: 3})
	}

	t.Run("patterned", func(t *testing.T) {
		f := newField()
		f.Initialize(InitPatterned)
		assert.InDelta(t, 0, f.Deviation(), 1e-12)
	})

	t.Run("flat", func(t *testing.T) {
		f := newField()
		f.Initialize(InitPatterned)
		f.Initialize(InitFlat)
		assert.Zero(t, f.TotalMass())
	})

	t.Run("split is deterministic", func(t *testing.T) {
		a, b := newField(), newField()
		a.Initialize(InitSplit)
		b.Initialize(InitSplit)
		assert.Equal(t, a.Heights(), b.Heights())

		for _, i := range a.ActiveCells() {
			col, row := a.Grid.Coords(i)
			x, y := a.Grid.CellCenter(col, row)
			if math.Atan2(y, x) >= 0 {
				assert.Zero(t, a.Height(i))
			} else {
				assert.Equal(t, a.Target(i), a.Height(i))
			}
		}
	})
}

func TestAddClamps(t *testing.T) {
	f := New(NewGrid(10, 2, 0), Pattern{Amplitude: 1, ToothSpacing: 4}, Bounds{Min: -3, Max: 3})
	i := f.ActiveCells()[0]
	f.Set(i, 2.5)

	applied := f.Add(i, 1)
	assert.InDelta(t, 0.5, applied, 1e-12)
	assert.Equal(t, 3.0, f.Height(i))

	applied = f.Add(i, -10)
	assert.InDelta(t, -6, applied, 1e-12)
	assert.Equal(t, -3.0, f.Height(i))
}

func TestParseInitMode(t *testing.T) {
	for in, want := range map[string]InitMode{"": InitPatterned, "patterned": InitPatterned, "split": InitSplit, "flat": InitFlat} {
		got, err := ParseInitMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseInitMode("wavy")
	assert.Error(t, err)
}
