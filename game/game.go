// Package game hosts a garden in a raylib window, or headless for batch
// runs. It turns mouse, touch and keyboard input into garden calls, draws
// every frame and feeds telemetry.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/camera"
	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/garden"
	"github.com/pthm-cable/sandgarden/palette"
	"github.com/pthm-cable/sandgarden/renderer"
	"github.com/pthm-cable/sandgarden/systems"
	"github.com/pthm-cable/sandgarden/telemetry"
	"github.com/pthm-cable/sandgarden/ui"
)

const maxStepsPerUpdate = 10

// Game holds the complete game state.
type Game struct {
	cfg    *config.Config
	garden *garden.Garden

	// Rendering (nil in headless mode)
	camera     *camera.Camera
	background *renderer.BackgroundRenderer
	sand       *renderer.SandRenderer
	blade      *renderer.BladeRenderer
	hud        *ui.HUD
	speed      *ui.SpeedControl
	controls   *ui.ControlsPanel
	overlays   *ui.OverlayRegistry
	perfPanel  *ui.PerfPanel
	stages     *systems.SystemRegistry
	palette    palette.Palette

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	snap             garden.Snapshot

	// Frame timing
	perf *PerfStats

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	pointerDown    bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window
// must already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.config()

	width, height := cfg.Screen.Width, cfg.Screen.Height
	if !opts.Headless {
		width, height = rl.GetScreenWidth(), rl.GetScreenHeight()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:              cfg,
		collector:        telemetry.NewCollector(opts.statsWindow(cfg)),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
		perf:             NewPerfStats(),
		headless:         opts.Headless,
		stepsPerUpdate:   steps,
		screenWidth:      float32(width),
		screenHeight:     float32(height),
	}

	gd, err := garden.New(cfg, width, height,
		garden.WithPhaseTimer(g.perfCollector),
		garden.WithSink(systems.LogSink{}),
	)
	if err != nil {
		return nil, fmt.Errorf("creating garden: %w", err)
	}
	g.garden = gd

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	if !g.headless {
		g.initRendering()
	}

	slog.Info("garden ready",
		"preset", cfg.Preset,
		"width", width,
		"height", height,
		"radius", gd.Radius(),
		"teeth", gd.Field().ToothCount(),
		"headless", g.headless,
	)
	return g, nil
}

// initRendering creates the camera, renderers and UI widgets.
func (g *Game) initRendering() {
	rc := g.cfg.Render
	g.palette = palette.FromConfig(rc)

	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.camera.SetLimit(float32(g.garden.Radius()))

	g.background = renderer.NewBackgroundRenderer(
		int32(g.screenWidth), int32(g.screenHeight),
		palette.RGBA(rc.Background), g.cfg.Disturb.NoiseSeed,
	)
	g.sand = renderer.NewSandRenderer(g.palette)
	g.blade = renderer.NewBladeRenderer(palette.RGBA(rc.Blade))

	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(10, 80, 200)
	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayBlade, rc.ShowBlade)
	g.perfPanel = ui.NewPerfPanel(10, 0)
	g.stages = systems.NewSystemRegistry()

	if s := g.cfg.Blade.Speed; s.Enabled {
		g.speed = ui.NewSpeedControl(float32(s.InputMin), float32(s.InputMax), float32(s.Initial))
		g.speed.Layout(int32(g.screenWidth), int32(g.screenHeight))
	}
}

// Garden returns the simulated garden.
func (g *Game) Garden() *garden.Garden {
	return g.garden
}

// Tick returns the current simulation tick.
func (g *Game) Tick() uint64 {
	return g.garden.Ticks()
}

// Unload releases all resources and closes output files.
func (g *Game) Unload() {
	if g.sand != nil {
		g.sand.Unload()
	}
	if g.background != nil {
		g.background.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
