package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sandgarden/components"
	"github.com/pthm-cable/sandgarden/field"
)

func newTestField(radius float64, bounds field.Bounds) *field.Field {
	return field.New(
		field.NewGrid(radius, 2, 1),
		field.Pattern{Amplitude: 1.5, ToothSpacing: 16},
		bounds,
	)
}

func newArmWorld(arms ...components.Arm) *ecs.World {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Arm](world)
	for i := range arms {
		mapper.NewEntity(&arms[i])
	}
	return world
}

func twoArms() []components.Arm {
	return []components.Arm{
		{Offset: 0, Kind: components.ArmComb},
		{Offset: math.Pi, Kind: components.ArmSmooth},
	}
}

func ticksPerRevolution(speed float64) int {
	return int(math.Ceil(2*math.Pi/speed - 1e-9))
}

// annulus returns active cells whose centres lie safely inside the swept band.
func annulus(f *field.Field, inner, outer float64) []int {
	var cells []int
	res := f.Grid.Resolution
	for _, i := range f.ActiveCells() {
		col, row := f.Grid.Coords(i)
		d := math.Hypot(f.Grid.CellCenter(col, row))
		if d >= inner+res && d <= outer-res {
			cells = append(cells, i)
		}
	}
	return cells
}
