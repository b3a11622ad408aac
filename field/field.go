package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bounds is the closed interval every height value is clamped to.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp limits v to the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Pattern describes the concentric wave the comb imprints.
type Pattern struct {
	Amplitude    float64
	ToothSpacing float64 // world units between comb teeth
}

// ToothCount returns how many comb teeth fit on a blade arm of the given
// length. The same count sets the wave frequency and the drawn comb.
func (p Pattern) ToothCount(bladeLength float64) int {
	if p.ToothSpacing <= 0 {
		return 1
	}
	n := int(math.Floor(bladeLength / p.ToothSpacing))
	if n < 1 {
		n = 1
	}
	return n
}

// Wave evaluates amplitude*sin(2π*dist*frequency).
func Wave(amplitude, frequency, dist float64) float64 {
	return amplitude * math.Sin(2*math.Pi*dist*frequency)
}

// InitMode selects the starting height field.
type InitMode int

const (
	InitPatterned InitMode = iota // every cell at its target
	InitSplit                     // target behind the comb arm, flat elsewhere
	InitFlat                      // all zero
)

// ParseInitMode converts a config string into an InitMode.
func ParseInitMode(s string) (InitMode, error) {
	switch s {
	case "", "patterned":
		return InitPatterned, nil
	case "split":
		return InitSplit, nil
	case "flat":
		return InitFlat, nil
	}
	return InitPatterned, fmt.Errorf("unknown initial pattern %q", s)
}

// Field is the mutable sand height field plus its immutable target pattern.
type Field struct {
	Grid   Grid
	Bounds Bounds

	amplitude     float64
	toothCount    int
	waveFrequency float64

	height []float64
	target []float64
	active []bool
	// activeIdx lists active cells in row-major order
	activeIdx []int
}

// New allocates a field over grid and computes the target pattern. The
// height field starts flat; call Initialize to pick a starting state.
func New(grid Grid, pattern Pattern, bounds Bounds) *Field {
	n := grid.Len()
	f := &Field{
		Grid:      grid,
		Bounds:    bounds,
		amplitude: pattern.Amplitude,
		height:    make([]float64, n),
		target:    make([]float64, n),
		active:    make([]bool, n),
	}
	f.toothCount = pattern.ToothCount(grid.Radius)
	if grid.Radius > 0 {
		f.waveFrequency = float64(f.toothCount) / grid.Radius
	}

	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if !grid.Active(col, row) {
				continue
			}
			i := grid.Index(col, row)
			f.active[i] = true
			f.activeIdx = append(f.activeIdx, i)

			x, y := grid.CellCenter(col, row)
			f.target[i] = bounds.Clamp(Wave(f.amplitude, f.waveFrequency, math.Hypot(x, y)))
		}
	}
	return f
}

// Initialize resets the height field to the given starting state.
func (f *Field) Initialize(mode InitMode) {
	for i := range f.height {
		f.height[i] = 0
	}
	for _, i := range f.activeIdx {
		switch mode {
		case InitPatterned:
			f.height[i] = f.target[i]
		case InitSplit:
			col, row := f.Grid.Coords(i)
			x, y := f.Grid.CellCenter(col, row)
			if math.Atan2(y, x) < 0 {
				f.height[i] = f.target[i]
			}
		}
	}
}

// ToothCount returns the comb tooth count shared by pattern and renderer.
func (f *Field) ToothCount() int { return f.toothCount }

// ToothPositions returns the radial distance of each comb tooth, one per
// crest of the target wave.
func (f *Field) ToothPositions() []float64 {
	if f.waveFrequency <= 0 {
		return nil
	}
	pos := make([]float64, f.toothCount)
	for k := range pos {
		pos[k] = (float64(k) + 0.25) / f.waveFrequency
	}
	return pos
}

// WaveFrequency returns toothCount / radius.
func (f *Field) WaveFrequency() float64 { return f.waveFrequency }

// Len returns the number of cells (active or not).
func (f *Field) Len() int { return len(f.height) }

// ActiveCells returns the indices of active cells in row-major order.
// The slice must not be modified.
func (f *Field) ActiveCells() []int { return f.activeIdx }

// IsActive reports whether cell i is inside the sand bed.
func (f *Field) IsActive(i int) bool { return f.active[i] }

// Height returns the current height of cell i.
func (f *Field) Height(i int) float64 { return f.height[i] }

// Target returns the target pattern height of cell i.
func (f *Field) Target(i int) float64 { return f.target[i] }

// Heights exposes the height buffer for read-only consumers (renderer, stats).
func (f *Field) Heights() []float64 { return f.height }

// Set stores v clamped to bounds and returns the stored value.
func (f *Field) Set(i int, v float64) float64 {
	v = f.Bounds.Clamp(v)
	f.height[i] = v
	return v
}

// Add applies delta with clamping and returns the change actually applied.
func (f *Field) Add(i int, delta float64) float64 {
	before := f.height[i]
	return f.Set(i, before+delta) - before
}

// TotalMass returns the sum of heights over the field.
func (f *Field) TotalMass() float64 { return floats.Sum(f.height) }

// Deviation returns Σ|target-height| over active cells.
func (f *Field) Deviation() float64 {
	var sum float64
	for _, i := range f.activeIdx {
		sum += math.Abs(f.target[i] - f.height[i])
	}
	return sum
}

// ActiveHeights copies the heights of active cells into dst and returns it.
func (f *Field) ActiveHeights(dst []float64) []float64 {
	dst = dst[:0]
	for _, i := range f.activeIdx {
		dst = append(dst, f.height[i])
	}
	return dst
}
