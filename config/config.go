// Package config provides configuration loading and access for the garden.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all garden configuration parameters.
type Config struct {
	// Preset names a tuning applied on top of the defaults before the user
	// file. Empty means defaults only.
	Preset string `yaml:"preset"`

	Screen    ScreenConfig    `yaml:"screen"`
	Garden    GardenConfig    `yaml:"garden"`
	Height    HeightConfig    `yaml:"height"`
	Pattern   PatternConfig   `yaml:"pattern"`
	Blade     BladeConfig     `yaml:"blade"`
	Relax     RelaxConfig     `yaml:"relax"`
	Disturb   DisturbConfig   `yaml:"disturb"`
	Pool      PoolConfig      `yaml:"pool"`
	Input     InputConfig     `yaml:"input"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// GardenConfig holds the sand bed geometry.
type GardenConfig struct {
	RadiusFraction float64 `yaml:"radius_fraction"` // radius = min(w,h)/2 * this
	Resolution     float64 `yaml:"resolution"`      // world units per cell
	BoundaryMargin float64 `yaml:"boundary_margin"` // cells within this of the rim are inert
}

// HeightConfig holds the clamping bounds of the height field.
type HeightConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// PatternConfig holds the concentric wave pattern.
type PatternConfig struct {
	Amplitude    float64 `yaml:"amplitude"`
	ToothSpacing float64 `yaml:"tooth_spacing"` // comb tooth spacing in world units
	Initial      string  `yaml:"initial"`       // patterned, split, flat
}

// BladeConfig holds the rotating blade parameters.
type BladeConfig struct {
	RotationSpeed float64            `yaml:"rotation_speed"` // radians per tick
	WedgeFactor   float64            `yaml:"wedge_factor"`
	InnerCutoff   float64            `yaml:"inner_cutoff"`
	OuterInset    float64            `yaml:"outer_inset"`
	Speed         SpeedControlConfig `yaml:"speed_control"`
	Arms          []ArmConfig        `yaml:"arms"`
}

// SpeedControlConfig maps the bounded speed input onto a rotation speed.
type SpeedControlConfig struct {
	Enabled  bool    `yaml:"enabled"`
	InputMin float64 `yaml:"input_min"`
	InputMax float64 `yaml:"input_max"`
	SpeedMin float64 `yaml:"speed_min"`
	SpeedMax float64 `yaml:"speed_max"`
	Initial  float64 `yaml:"initial"` // initial input value
}

// ArmConfig describes one blade arm.
type ArmConfig struct {
	OffsetDeg float64 `yaml:"offset_deg"`
	Kind      string  `yaml:"kind"` // comb, smooth
}

// Offset returns the arm's angle from the blade angle in radians.
func (a ArmConfig) Offset() float64 {
	return a.OffsetDeg * math.Pi / 180
}

// RelaxConfig holds the relaxation regime.
type RelaxConfig struct {
	Mode             string         `yaml:"mode"` // fixed, graded
	Rate             float64        `yaml:"rate"`
	SlowRate         float64        `yaml:"slow_rate"`
	FastRate         float64        `yaml:"fast_rate"`
	DisturbThreshold float64        `yaml:"disturb_threshold"`
	SnapEpsilon      float64        `yaml:"snap_epsilon"`
	Overflow         OverflowConfig `yaml:"overflow"`
}

// OverflowConfig holds dune push-out parameters.
type OverflowConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Threshold      float64 `yaml:"threshold"`
	PushStrength   float64 `yaml:"push_strength"`
	PoolShare      float64 `yaml:"pool_share"`
	NeighborSpread int     `yaml:"neighbor_spread"`
}

// DisturbConfig holds touch disturbance parameters.
type DisturbConfig struct {
	Mode          string  `yaml:"mode"` // noise, dig, pile, dig-conserve
	TouchRadius   float64 `yaml:"touch_radius"`
	DigStrength   float64 `yaml:"dig_strength"`
	PileStrength  float64 `yaml:"pile_strength"`
	NoiseStrength float64 `yaml:"noise_strength"`
	NoiseScale    float64 `yaml:"noise_scale"`
	NoiseSeed     int64   `yaml:"noise_seed"`
	SpreadRadius  float64 `yaml:"spread_radius"` // ring width in cells
	DigOnPress    bool    `yaml:"dig_on_press"`
	CaptureDigs   bool    `yaml:"capture_digs"`
}

// PoolConfig holds the mass pool parameters.
type PoolConfig struct {
	Enabled       bool    `yaml:"enabled"`
	DrainFraction float64 `yaml:"drain_fraction"`
	HoleThreshold float64 `yaml:"hole_threshold"`
	Increment     float64 `yaml:"increment"`
}

// InputConfig holds pointer recording parameters.
type InputConfig struct {
	InterpolationStep float64 `yaml:"interpolation_step"` // world units between drag sub-points
	MaxPending        int     `yaml:"max_pending"`
}

// ColorConfig is an 8-bit RGB triple.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RenderConfig holds colour mapping and overlay settings.
type RenderConfig struct {
	Saturation float64     `yaml:"saturation"`
	Base       ColorConfig `yaml:"base"`
	Shadow     ColorConfig `yaml:"shadow"`
	Highlight  ColorConfig `yaml:"highlight"`
	Background ColorConfig `yaml:"background"`
	Blade      ColorConfig `yaml:"blade"`
	ShowBlade  bool        `yaml:"show_blade"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path and preset, or uses embedded
// defaults if both are empty. Must be called before Cfg().
func Init(path, preset string) error {
	cfg, err := Load(path, preset)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults with derived values computed.
func Default() *Config {
	cfg, err := Load("", "")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load builds a configuration in three layers: embedded defaults, then the
// named preset, then the YAML file at path. A non-empty preset argument wins
// over the file's preset key.
func Load(path, preset string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	var user []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		user = data

		if preset == "" {
			var head struct {
				Preset string `yaml:"preset"`
			}
			if err := yaml.Unmarshal(user, &head); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
			preset = head.Preset
		}
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	if user != nil {
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(user, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.Preset = preset

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the engines cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Garden.Resolution <= 0:
		return fmt.Errorf("garden.resolution must be positive, got %v", c.Garden.Resolution)
	case c.Garden.RadiusFraction <= 0 || c.Garden.RadiusFraction > 1:
		return fmt.Errorf("garden.radius_fraction must be in (0,1], got %v", c.Garden.RadiusFraction)
	case c.Garden.BoundaryMargin < 0:
		return fmt.Errorf("garden.boundary_margin must not be negative")
	case c.Height.Min >= c.Height.Max:
		return fmt.Errorf("height bounds inverted: min %v >= max %v", c.Height.Min, c.Height.Max)
	case c.Pattern.ToothSpacing <= 0:
		return fmt.Errorf("pattern.tooth_spacing must be positive")
	case len(c.Blade.Arms) == 0:
		return fmt.Errorf("blade.arms must not be empty")
	case c.Blade.RotationSpeed < 0:
		return fmt.Errorf("blade.rotation_speed must not be negative")
	case c.Input.InterpolationStep <= 0:
		return fmt.Errorf("input.interpolation_step must be positive")
	case c.Input.MaxPending <= 0:
		return fmt.Errorf("input.max_pending must be positive")
	case c.Pool.DrainFraction < 0 || c.Pool.DrainFraction > 1:
		return fmt.Errorf("pool.drain_fraction must be in [0,1]")
	case c.Render.Saturation <= 0:
		return fmt.Errorf("render.saturation must be positive")
	}

	if s := c.Blade.Speed; s.Enabled && s.InputMax <= s.InputMin {
		return fmt.Errorf("blade.speed_control input range is empty")
	}
	if !oneOf(c.Pattern.Initial, "patterned", "split", "flat") {
		return fmt.Errorf("unknown pattern.initial %q", c.Pattern.Initial)
	}
	if !oneOf(c.Relax.Mode, "fixed", "graded") {
		return fmt.Errorf("unknown relax.mode %q", c.Relax.Mode)
	}
	if !oneOf(c.Disturb.Mode, "noise", "dig", "pile", "dig-conserve") {
		return fmt.Errorf("unknown disturb.mode %q", c.Disturb.Mode)
	}
	for i, arm := range c.Blade.Arms {
		if !oneOf(arm.Kind, "comb", "smooth") {
			return fmt.Errorf("blade.arms[%d]: unknown kind %q", i, arm.Kind)
		}
	}
	return nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
