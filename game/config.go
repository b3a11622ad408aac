package game

import (
	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/telemetry"
)

// Options configures game initialization.
type Options struct {
	// Config to run with; nil uses config.Cfg().
	Config *config.Config

	Headless       bool
	StepsPerUpdate int

	LogStats    bool
	StatsWindow int    // ticks per telemetry window (0 = use config)
	OutputDir   string // CSV output directory (empty = disabled)

	// StatsCallback is called with every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

func (o Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return config.Cfg()
}

func (o Options) statsWindow(cfg *config.Config) int {
	if o.StatsWindow > 0 {
		return o.StatsWindow
	}
	return cfg.Telemetry.StatsWindow
}
