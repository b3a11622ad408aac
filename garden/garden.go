// Package garden holds the simulation context of one sand garden: the height
// field, the blade, the disturbance engine, the mass pool and the recorded
// pointer state. All mutation happens inside Tick, except the optional
// dig-on-press in PointerDown.
package garden

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/sandgarden/components"
	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/field"
	"github.com/pthm-cable/sandgarden/systems"
)

// Phase names reported to a PhaseTimer during Tick.
const (
	PhaseResize  = "resize"
	PhaseBlade   = "blade"
	PhaseDisturb = "disturb"
	PhasePool    = "pool"
)

// PhaseTimer receives phase boundaries during Tick.
type PhaseTimer interface {
	StartPhase(phase string)
}

// TickStats summarises what one tick did.
type TickStats struct {
	Resized       bool
	Sweep         systems.SweepStats
	Disturbances  int
	Disturb       systems.DisturbResult // summed over the tick's disturbances
	Redistributed float64
}

// Option configures a Garden.
type Option func(*Garden)

// WithSink sets the audio sink notified of disturbances.
func WithSink(s systems.Sink) Option {
	return func(g *Garden) { g.sink = s }
}

// WithObserver sets a callback invoked for every swept cell.
func WithObserver(o systems.SweepObserver) Option {
	return func(g *Garden) { g.observer = o }
}

// WithPhaseTimer reports tick phases to t.
func WithPhaseTimer(t PhaseTimer) Option {
	return func(g *Garden) { g.phases = t }
}

// Garden is one sand garden.
type Garden struct {
	cfg *config.Config

	world   *ecs.World
	armMap  *ecs.Map1[components.Arm]
	armView *ecs.Filter1[components.Arm]
	arms    []components.Arm

	field     *field.Field
	blade     *systems.BladeSystem
	disturber *systems.Disturber
	pool      *systems.MassPool
	noise     *systems.CellNoise

	sink     systems.Sink
	observer systems.SweepObserver
	phases   PhaseTimer

	initMode field.InitMode
	mode     systems.DisturbMode
	pointer  pointer
	points   []Point

	width, height int
	resize        struct {
		pending bool
		w, h    int
	}

	speedInput float64
	ticks      uint64
	last       TickStats
}

// New creates a garden sized for a width x height viewport.
func New(cfg *config.Config, width, height int, opts ...Option) (*Garden, error) {
	initMode, err := field.ParseInitMode(cfg.Pattern.Initial)
	if err != nil {
		return nil, err
	}
	mode, err := systems.ParseDisturbMode(cfg.Disturb.Mode)
	if err != nil {
		return nil, err
	}
	relaxMode, err := systems.ParseRelaxMode(cfg.Relax.Mode)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	g := &Garden{
		cfg:      cfg,
		world:    world,
		armMap:   ecs.NewMap1[components.Arm](world),
		armView:  ecs.NewFilter1[components.Arm](world),
		initMode: initMode,
		mode:     mode,
		pointer:  newPointer(cfg.Input.InterpolationStep, cfg.Input.MaxPending),
		sink:     systems.NopSink{},
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.spawnArms(); err != nil {
		return nil, err
	}

	if cfg.Pool.Enabled {
		g.pool = systems.NewMassPool(systems.PoolParams{
			DrainFraction: cfg.Pool.DrainFraction,
			HoleThreshold: cfg.Pool.HoleThreshold,
			Increment:     cfg.Pool.Increment,
		})
	}

	g.blade = systems.NewBladeSystem(g.world, systems.BladeParams{
		RotationSpeed: cfg.Blade.RotationSpeed,
		WedgeFactor:   cfg.Blade.WedgeFactor,
		InnerCutoff:   cfg.Blade.InnerCutoff,
		OuterInset:    cfg.Blade.OuterInset,
		Relax: systems.RelaxParams{
			Mode:             relaxMode,
			Rate:             cfg.Relax.Rate,
			SlowRate:         cfg.Relax.SlowRate,
			FastRate:         cfg.Relax.FastRate,
			DisturbThreshold: cfg.Relax.DisturbThreshold,
			SnapEpsilon:      cfg.Relax.SnapEpsilon,
		},
		Overflow: systems.OverflowParams{
			Enabled:        cfg.Relax.Overflow.Enabled,
			Threshold:      cfg.Relax.Overflow.Threshold,
			PushStrength:   cfg.Relax.Overflow.PushStrength,
			PoolShare:      cfg.Relax.Overflow.PoolShare,
			NeighborSpread: cfg.Relax.Overflow.NeighborSpread,
		},
	}, g.pool)
	g.blade.Observer = g.observer

	g.noise = systems.NewCellNoise(cfg.Disturb.NoiseSeed, cfg.Disturb.NoiseScale)
	g.disturber = systems.NewDisturber(systems.DisturbParams{
		TouchRadius:  cfg.Disturb.TouchRadius,
		SpreadRadius: cfg.Disturb.SpreadRadius,
		CaptureDigs:  cfg.Disturb.CaptureDigs,
	}, g.noise, g.pool, g.sink)

	if s := cfg.Blade.Speed; s.Enabled {
		g.SetSpeedInput(s.Initial)
	}

	g.Reinit(width, height)
	return g, nil
}

func (g *Garden) spawnArms() error {
	for i, a := range g.cfg.Blade.Arms {
		kind, err := components.ParseArmKind(a.Kind)
		if err != nil {
			return fmt.Errorf("arm %d: %w", i, err)
		}
		arm := components.Arm{Offset: a.Offset(), Kind: kind}
		g.armMap.NewEntity(&arm)
	}
	return nil
}

// Reinit rebuilds the grid and field for a width x height viewport and resets
// the blade and pool. Prior disturbances are discarded.
func (g *Garden) Reinit(width, height int) {
	g.width, g.height = width, height
	g.resize.pending = false

	radius := float64(min(width, height)) / 2 * g.cfg.Garden.RadiusFraction
	grid := field.NewGrid(radius, g.cfg.Garden.Resolution, g.cfg.Garden.BoundaryMargin)
	g.field = field.New(grid, field.Pattern{
		Amplitude:    g.cfg.Pattern.Amplitude,
		ToothSpacing: g.cfg.Pattern.ToothSpacing,
	}, field.Bounds{Min: g.cfg.Height.Min, Max: g.cfg.Height.Max})
	g.field.Initialize(g.initMode)

	g.blade.Reset()
	if g.pool != nil {
		g.pool.Reset()
	}
	g.pointer.discard()

	slog.Debug("garden reinitialised",
		"width", width,
		"height", height,
		"radius", radius,
		"cells", grid.Len(),
		"active", len(g.field.ActiveCells()),
		"teeth", g.field.ToothCount(),
	)
}

// Resize records a viewport change applied at the start of the next tick.
func (g *Garden) Resize(width, height int) {
	if width == g.width && height == g.height {
		g.resize.pending = false
		return
	}
	g.resize.pending = true
	g.resize.w, g.resize.h = width, height
}

// Reset schedules a reinitialisation at the current size for the start of
// the next tick.
func (g *Garden) Reset() {
	g.resize.pending = true
	g.resize.w, g.resize.h = g.width, g.height
}

// Tick advances the garden one step: deferred resize, blade sweep, pending
// disturbances and pool redistribution, in that order.
func (g *Garden) Tick() TickStats {
	var st TickStats

	if g.resize.pending {
		g.startPhase(PhaseResize)
		g.Reinit(g.resize.w, g.resize.h)
		st.Resized = true
	}

	g.startPhase(PhaseBlade)
	st.Sweep = g.blade.Update(g.field)

	g.startPhase(PhaseDisturb)
	g.points = g.pointer.drain(g.points)
	for _, p := range g.points {
		res := g.disturbAt(p)
		if res.Cells == 0 {
			continue
		}
		st.Disturbances++
		st.Disturb.Cells += res.Cells
		st.Disturb.Removed += res.Removed
		st.Disturb.Added += res.Added
		st.Disturb.Deposited += res.Deposited
		st.Disturb.Spilled += res.Spilled
		st.Disturb.Intensity = max(st.Disturb.Intensity, res.Intensity)
	}

	if g.pool != nil {
		g.startPhase(PhasePool)
		st.Redistributed = g.pool.Redistribute(g.field)
	}

	g.ticks++
	g.last = st
	return st
}

func (g *Garden) startPhase(phase string) {
	if g.phases != nil {
		g.phases.StartPhase(phase)
	}
}

func (g *Garden) disturbAt(p Point) systems.DisturbResult {
	return g.disturber.Disturb(g.field, p.X, p.Y, g.strength(), g.mode)
}

func (g *Garden) strength() float64 {
	switch g.mode {
	case systems.ModeNoise:
		return g.cfg.Disturb.NoiseStrength
	case systems.ModePile:
		return g.cfg.Disturb.PileStrength
	default:
		return g.cfg.Disturb.DigStrength
	}
}

// PointerDown begins an interaction at p (garden-world coordinates).
func (g *Garden) PointerDown(x, y float64) {
	p := Point{x, y}
	dig := g.cfg.Disturb.DigOnPress
	if dig {
		g.disturbAt(p)
	}
	g.pointer.down(p, dig)
}

// PointerMove records a new position while interacting.
func (g *Garden) PointerMove(x, y float64) { g.pointer.move(Point{x, y}) }

// PointerUp ends the interaction.
func (g *Garden) PointerUp() { g.pointer.up() }

// Interacting reports whether a pointer is down.
func (g *Garden) Interacting() bool { return g.pointer.active }

// PendingPoints returns how many pointer samples wait for the next tick.
func (g *Garden) PendingPoints() int { return len(g.pointer.pending) }

// Pointer returns the last pointer position and whether it is down.
func (g *Garden) Pointer() (Point, bool) { return g.pointer.pos, g.pointer.active }

// SetSpeedInput maps v from the speed control's input range onto its speed
// range and uses the result from the next tick.
func (g *Garden) SetSpeedInput(v float64) {
	s := g.cfg.Blade.Speed
	v = math.Max(s.InputMin, math.Min(s.InputMax, v))
	g.speedInput = v

	t := 0.0
	if s.InputMax > s.InputMin {
		t = (v - s.InputMin) / (s.InputMax - s.InputMin)
	}
	g.blade.SetRotationSpeed(s.SpeedMin + t*(s.SpeedMax-s.SpeedMin))
}

// SpeedInput returns the last value given to SetSpeedInput.
func (g *Garden) SpeedInput() float64 { return g.speedInput }

// SetDisturbMode switches what pointer input does.
func (g *Garden) SetDisturbMode(mode systems.DisturbMode) { g.mode = mode }

// DisturbMode returns the active disturbance mode.
func (g *Garden) DisturbMode() systems.DisturbMode { return g.mode }

// Field returns the height field. It is replaced on resize.
func (g *Garden) Field() *field.Field { return g.field }

// Angle returns the blade angle.
func (g *Garden) Angle() float64 { return g.blade.Angle() }

// RotationSpeed returns the blade speed in radians per tick.
func (g *Garden) RotationSpeed() float64 { return g.blade.RotationSpeed() }

// WedgeAngle returns the angular width each arm relaxes per tick.
func (g *Garden) WedgeAngle() float64 { return g.blade.WedgeAngle() }

// Arms returns the blade arms stored in the world.
func (g *Garden) Arms() []components.Arm {
	g.arms = g.arms[:0]
	query := g.armView.Query()
	for query.Next() {
		g.arms = append(g.arms, *query.Get())
	}
	return g.arms
}

// Pool returns the pool level, or zero when the pool is disabled.
func (g *Garden) Pool() float64 {
	if g.pool == nil {
		return 0
	}
	return g.pool.Level()
}

// Ticks returns the number of completed ticks.
func (g *Garden) Ticks() uint64 { return g.ticks }

// LastTick returns the stats of the most recent tick.
func (g *Garden) LastTick() TickStats { return g.last }

// Radius returns the garden radius in world units.
func (g *Garden) Radius() float64 { return g.field.Grid.Radius }

// Size returns the viewport the garden is laid out for.
func (g *Garden) Size() (width, height int) { return g.width, g.height }

// Config returns the configuration the garden was built with.
func (g *Garden) Config() *config.Config { return g.cfg }
