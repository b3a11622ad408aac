package garden

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/sandgarden/components"
	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/systems"
)

func flatConfig() *config.Config {
	cfg := config.Default()
	cfg.Pattern.Initial = "flat"
	return cfg
}

func newGarden(t *testing.T, cfg *config.Config, opts ...Option) *Garden {
	t.Helper()
	g, err := New(cfg, 800, 600, opts...)
	require.NoError(t, err)
	return g
}

func centreHeight(g *Garden) float64 {
	f := g.Field()
	col, row := f.Grid.ToGrid(0, 0)
	return f.Height(f.Grid.Index(col, row))
}

func TestNewLaysOutGarden(t *testing.T) {
	g := newGarden(t, config.Default())

	assert.InDelta(t, 300*0.45, g.Radius(), 1e-12)
	assert.Equal(t, 8, g.Field().ToothCount())
	assert.NotEmpty(t, g.Field().ActiveCells())

	arms := g.Arms()
	require.Len(t, arms, 2)
	assert.Equal(t, components.ArmComb, arms[0].Kind)
	assert.Equal(t, components.ArmSmooth, arms[1].Kind)
	assert.InDelta(t, math.Pi, arms[1].Offset-arms[0].Offset, 1e-12)
}

func TestNewRejectsBadModes(t *testing.T) {
	cfg := config.Default()
	cfg.Disturb.Mode = "rake"
	_, err := New(cfg, 800, 600)
	assert.Error(t, err)

	cfg = config.Default()
	cfg.Blade.Arms = []config.ArmConfig{{Kind: "brush"}}
	_, err = New(cfg, 800, 600)
	assert.Error(t, err)
}

func TestResizeIsDeferredToNextTick(t *testing.T) {
	cfg := config.Default()
	cfg.Pool.Enabled = true
	g := newGarden(t, cfg)
	for i := 0; i < 30; i++ {
		g.Tick()
	}
	before := g.Field()

	g.Resize(400, 400)
	assert.Same(t, before, g.Field(), "field replaced before the tick")
	assert.InDelta(t, 135, g.Radius(), 1e-12)

	st := g.Tick()
	assert.True(t, st.Resized)
	assert.NotSame(t, before, g.Field())
	assert.InDelta(t, 90, g.Radius(), 1e-12)
	assert.InDelta(t, g.RotationSpeed(), g.Angle(), 1e-12, "blade restarts from zero")
	assert.Zero(t, g.Pool())

	w, h := g.Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 400, h)
}

func TestResizeToSameSizeIsIgnored(t *testing.T) {
	g := newGarden(t, config.Default())
	before := g.Field()
	g.Resize(800, 600)
	st := g.Tick()
	assert.False(t, st.Resized)
	assert.Same(t, before, g.Field())
}

func TestResetRestoresInitialState(t *testing.T) {
	g := newGarden(t, flatConfig())
	g.PointerDown(0, 0)
	g.Tick()
	g.PointerUp()
	require.Less(t, centreHeight(g), 0.0)

	g.Reset()
	assert.Less(t, centreHeight(g), 0.0, "reset waits for the next tick")

	st := g.Tick()
	assert.True(t, st.Resized)
	assert.Zero(t, centreHeight(g))
	assert.InDelta(t, g.RotationSpeed(), g.Angle(), 1e-15)
	w, h := g.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestSetSpeedInput(t *testing.T) {
	g := newGarden(t, config.Default())
	tests := []struct {
		input, want float64
	}{
		{1, 0.001},
		{100, 0.015},
		{200, 0.015},
		{-5, 0.001},
		{50.5, 0.008},
	}
	for _, tt := range tests {
		g.SetSpeedInput(tt.input)
		assert.InDelta(t, tt.want, g.RotationSpeed(), 1e-12, "input %v", tt.input)
	}

	g.SetSpeedInput(-5)
	assert.Equal(t, 1.0, g.SpeedInput(), "input is clamped to the dial range")

	g.SetSpeedInput(100)
	assert.Equal(t, 100.0, g.SpeedInput())
	start := g.Angle()
	g.Tick()
	assert.InDelta(t, 0.015, g.Angle()-start, 1e-12)
}

func TestNoInteractionNoDisturbance(t *testing.T) {
	g := newGarden(t, flatConfig())
	for i := 0; i < 5; i++ {
		st := g.Tick()
		assert.Zero(t, st.Disturbances)
	}
	assert.Zero(t, centreHeight(g))
}

func TestDragInterpolatesSubPoints(t *testing.T) {
	g := newGarden(t, flatConfig())

	g.PointerDown(0, 0)
	g.PointerMove(23, 0)
	assert.Equal(t, 6, g.PendingPoints())

	st := g.Tick()
	assert.Equal(t, 6, st.Disturbances)
	assert.Zero(t, g.PendingPoints())
	assert.Greater(t, st.Disturb.Removed, 0.0)

	// holding still keeps working the same spot
	st = g.Tick()
	assert.Equal(t, 1, st.Disturbances)

	g.PointerUp()
	assert.False(t, g.Interacting())
	st = g.Tick()
	assert.Zero(t, st.Disturbances)
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	g := newGarden(t, flatConfig())
	g.PointerMove(10, 10)
	assert.Zero(t, g.PendingPoints())
	assert.Zero(t, g.Tick().Disturbances)
}

func TestPointerState(t *testing.T) {
	g := newGarden(t, flatConfig())

	_, down := g.Pointer()
	assert.False(t, down)

	g.PointerDown(10, -5)
	p, down := g.Pointer()
	assert.True(t, down)
	assert.Equal(t, Point{10, -5}, p)

	g.PointerUp()
	_, down = g.Pointer()
	assert.False(t, down)

	assert.InDelta(t, g.RotationSpeed()*g.Config().Blade.WedgeFactor, g.WedgeAngle(), 1e-15)
}

func TestPendingQueueIsBounded(t *testing.T) {
	cfg := flatConfig()
	cfg.Input.MaxPending = 4
	g := newGarden(t, cfg)

	g.PointerDown(-100, 0)
	g.PointerMove(100, 0)
	assert.Equal(t, 4, g.PendingPoints())
}

func TestDigOnPressActsImmediately(t *testing.T) {
	cfg := flatConfig()
	cfg.Disturb.DigOnPress = true
	g := newGarden(t, cfg)

	g.PointerDown(0, 0)
	assert.InDelta(t, -0.25, centreHeight(g), 1e-12)
	assert.Zero(t, g.PendingPoints())

	st := g.Tick()
	assert.Zero(t, st.Disturbances, "press point is not dug again")
	assert.InDelta(t, -0.25, centreHeight(g), 1e-12)

	st = g.Tick()
	assert.Equal(t, 1, st.Disturbances)
	assert.InDelta(t, -0.5, centreHeight(g), 1e-12)
}

func TestStrokeBetweenTicksIsApplied(t *testing.T) {
	tests := []struct {
		name   string
		stroke func(g *Garden)
		want   int
	}{
		{"tap", func(g *Garden) {
			g.PointerDown(0, 0)
			g.PointerUp()
		}, 1},
		{"drag", func(g *Garden) {
			g.PointerDown(0, 0)
			g.PointerMove(23, 0)
			g.PointerUp()
		}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGarden(t, flatConfig())
			tt.stroke(g)
			assert.False(t, g.Interacting())
			assert.Equal(t, tt.want, g.PendingPoints())

			st := g.Tick()
			assert.Equal(t, tt.want, st.Disturbances)
			assert.Less(t, centreHeight(g), 0.0)
			assert.Zero(t, g.PendingPoints())

			assert.Zero(t, g.Tick().Disturbances)
		})
	}
}

func TestDisturbModeSwitch(t *testing.T) {
	g := newGarden(t, flatConfig())
	g.SetDisturbMode(systems.ModePile)
	assert.Equal(t, systems.ModePile, g.DisturbMode())

	g.PointerDown(0, 0)
	g.Tick()
	assert.InDelta(t, 0.25, centreHeight(g), 1e-12)
}

func TestOutsidePointerLeavesFieldAlone(t *testing.T) {
	g := newGarden(t, flatConfig())
	g.PointerDown(500, 500)
	st := g.Tick()
	assert.Zero(t, st.Disturbances)
}

type sinkFunc func(float64)

func (f sinkFunc) Disturbed(v float64) { f(v) }

func TestOptionsAreWired(t *testing.T) {
	var swept, disturbed int
	var phases []string
	g := newGarden(t, flatConfig(),
		WithObserver(func(int, components.ArmKind) { swept++ }),
		WithSink(sinkFunc(func(float64) { disturbed++ })),
		WithPhaseTimer(phaseRecorder(func(p string) { phases = append(phases, p) })),
	)

	g.PointerDown(30, 30)
	g.Tick()
	assert.Greater(t, swept, 0)
	assert.Equal(t, 1, disturbed)
	assert.Equal(t, []string{PhaseBlade, PhaseDisturb}, phases)
}

type phaseRecorder func(string)

func (r phaseRecorder) StartPhase(p string) { r(p) }

func TestSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Pool.Enabled = true
	g := newGarden(t, cfg)
	g.Tick()

	snap := g.Snapshot(nil)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, g.Angle(), snap.Angle)
	assert.Len(t, snap.Heights, len(g.Field().ActiveCells()))
	assert.InDelta(t, g.Field().TotalMass(), snap.TotalMass, 1e-12)

	again := g.Snapshot(&snap)
	assert.Same(t, &snap.Heights[0], &again.Heights[0], "buffer reused")
}

func TestGardenStaysBounded(t *testing.T) {
	for _, preset := range config.Presets() {
		t.Run(preset, func(t *testing.T) {
			cfg, err := config.Load("", preset)
			require.NoError(t, err)
			g := newGarden(t, cfg)

			g.PointerDown(-60, -20)
			for tick := 0; tick < 120; tick++ {
				x := 80 * math.Cos(float64(tick)*0.1)
				y := 80 * math.Sin(float64(tick)*0.13)
				g.PointerMove(x, y)
				g.Tick()

				for _, h := range g.Field().Heights() {
					if h < cfg.Height.Min || h > cfg.Height.Max {
						t.Fatalf("tick %d: height %v outside bounds", tick, h)
					}
				}
				require.GreaterOrEqual(t, g.Pool(), 0.0)
			}
		})
	}
}

func TestPhasesAreRegistered(t *testing.T) {
	reg := systems.NewSystemRegistry()
	for _, phase := range []string{PhaseResize, PhaseBlade, PhaseDisturb, PhasePool} {
		info, ok := reg.Get(phase)
		if assert.True(t, ok, phase) {
			assert.Equal(t, "tick", info.Category)
		}
	}
}
