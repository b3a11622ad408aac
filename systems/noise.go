package systems

import perlin "github.com/aquilax/go-perlin"

// CellNoise is a fixed function of cell coordinates in roughly [-1, 1].
// It does not change over time, so the same touch always leaves the same
// ripple shape.
type CellNoise struct {
	p     *perlin.Perlin
	scale float64
}

// NewCellNoise creates a noise function. scale is the perlin frequency in
// cells; integer lattice points of perlin noise are zero, so the sample is
// offset by half a cell.
func NewCellNoise(seed int64, scale float64) *CellNoise {
	if scale <= 0 {
		scale = 0.35
	}
	return &CellNoise{
		p:     perlin.NewPerlin(2, 2, 3, seed),
		scale: scale,
	}
}

// At returns the noise value for (col, row).
func (n *CellNoise) At(col, row int) float64 {
	v := n.p.Noise2D((float64(col)+0.5)*n.scale, (float64(row)+0.5)*n.scale) * 2
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
