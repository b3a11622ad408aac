// Package field holds the garden's grid geometry and height field.
package field

import "math"

// Grid maps between garden-world coordinates and a fixed-resolution cell grid.
// World coordinates are relative to the garden centre, so (0, 0) is the hub.
type Grid struct {
	Radius     float64 // garden radius in world units
	Resolution float64 // world units per cell
	Margin     float64 // boundary margin subtracted from Radius for the inside test

	Cols, Rows int
}

// NewGrid computes grid extents for a garden of the given radius.
// Each axis spans ceil(2*radius/resolution) cells.
func NewGrid(radius, resolution, margin float64) Grid {
	if resolution <= 0 {
		resolution = 1
	}
	if radius < 0 {
		radius = 0
	}
	n := int(math.Ceil(2 * radius / resolution))
	if n < 1 {
		n = 1
	}
	return Grid{
		Radius:     radius,
		Resolution: resolution,
		Margin:     margin,
		Cols:       n,
		Rows:       n,
	}
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.Cols * g.Rows }

// Index returns the linear slice index for (col, row).
func (g Grid) Index(col, row int) int { return row*g.Cols + col }

// Coords is the inverse of Index.
func (g Grid) Coords(i int) (col, row int) { return i % g.Cols, i / g.Cols }

// InBounds reports whether (col, row) addresses a cell of the grid.
func (g Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Cols && row < g.Rows
}

// ToGrid returns the cell containing world point (x, y). The result may be
// out of bounds; callers check InBounds.
func (g Grid) ToGrid(x, y float64) (col, row int) {
	col = int(math.Floor((x + g.Radius) / g.Resolution))
	row = int(math.Floor((y + g.Radius) / g.Resolution))
	return col, row
}

// ToWorld returns the world position of the cell's minimum corner.
func (g Grid) ToWorld(col, row int) (x, y float64) {
	return float64(col)*g.Resolution - g.Radius, float64(row)*g.Resolution - g.Radius
}

// CellCenter returns the world position of the cell's centre.
func (g Grid) CellCenter(col, row int) (x, y float64) {
	x, y = g.ToWorld(col, row)
	half := g.Resolution / 2
	return x + half, y + half
}

// IsInside reports whether a world point lies within the sand bed.
func (g Grid) IsInside(x, y float64) bool {
	return math.Hypot(x, y) < g.Radius-g.Margin
}

// Active reports whether the cell lies inside the sand bed.
func (g Grid) Active(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.IsInside(g.CellCenter(col, row))
}
