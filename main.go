package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	preset := flag.String("preset", "", "Named preset: "+strings.Join(config.Presets(), ", "))
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath, *preset); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Config:         cfg,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		LogStats:       *logStats,
		StatsWindow:    *statsWindow,
		OutputDir:      *outputDir,
	}

	run := runWindowed
	if *headless {
		run = runHeadless
	}
	if err := run(opts, *maxTicks); err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the garden on the CPU only; no window or GPU state.
func runHeadless(opts game.Options, maxTicks uint64) error {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	if maxTicks == 0 {
		slog.Warn("headless run without -max-ticks runs until killed")
	}
	slog.Info("starting headless simulation",
		"preset", opts.Config.Preset,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for maxTicks == 0 || g.Tick() < maxTicks {
		g.UpdateHeadless()
	}
	slog.Info("max ticks reached", "tick", g.Tick())
	return nil
}

func runWindowed(opts game.Options, maxTicks uint64) error {
	screen := opts.Config.Screen
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(screen.Width), int32(screen.Height), screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() && (maxTicks == 0 || g.Tick() < maxTicks) {
		g.Update()
		g.Draw()
	}
	return nil
}
