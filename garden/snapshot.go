package garden

import "github.com/pthm-cable/sandgarden/systems"

// Snapshot is a read-only copy of the garden state for telemetry.
type Snapshot struct {
	Tick          uint64
	Angle         float64
	RotationSpeed float64
	Radius        float64
	ToothCount    int
	Mode          systems.DisturbMode
	Interacting   bool

	Pool      float64
	TotalMass float64
	Deviation float64

	// Heights of active cells in row-major order
	Heights []float64
}

// Snapshot copies the current state. dst.Heights is reused when large enough.
func (g *Garden) Snapshot(dst *Snapshot) Snapshot {
	var heights []float64
	if dst != nil {
		heights = dst.Heights
	}
	f := g.field
	return Snapshot{
		Tick:          g.ticks,
		Angle:         g.blade.Angle(),
		RotationSpeed: g.blade.RotationSpeed(),
		Radius:        f.Grid.Radius,
		ToothCount:    f.ToothCount(),
		Mode:          g.mode,
		Interacting:   g.pointer.active,
		Pool:          g.Pool(),
		TotalMass:     f.TotalMass(),
		Deviation:     f.Deviation(),
		Heights:       f.ActiveHeights(heights),
	}
}
