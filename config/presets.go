package config

import (
	"fmt"
	"sort"
)

// presets are alternate tunings of the same engine. Each mutates a config
// that already holds the embedded defaults.
var presets = map[string]func(c *Config){
	// Slow fixed-rate healing with a noisy touch.
	"gentle": func(c *Config) {
		c.Relax.Mode = "fixed"
		c.Relax.Rate = 0.08
		c.Disturb.Mode = "noise"
		c.Disturb.NoiseStrength = 1.2
		c.Pattern.Initial = "split"
	},
	// Nearly instant repair; the comb repaints in one pass.
	"snappy": func(c *Config) {
		c.Relax.Mode = "fixed"
		c.Relax.Rate = 0.95
		c.Disturb.Mode = "dig"
		c.Disturb.DigStrength = 0.4
		c.Pattern.Initial = "patterned"
	},
	"graded": func(c *Config) {
		c.Relax.Mode = "graded"
		c.Relax.SlowRate = 0.03
		c.Relax.FastRate = 0.35
		c.Relax.DisturbThreshold = 1.0
		c.Relax.SnapEpsilon = 0.02
		c.Disturb.Mode = "dig"
	},
	// Digging throws a dune ring around the hole.
	"conserving": func(c *Config) {
		c.Height.Min, c.Height.Max = -3, 3
		c.Relax.Mode = "graded"
		c.Relax.SlowRate = 0.04
		c.Relax.FastRate = 0.3
		c.Disturb.Mode = "dig-conserve"
		c.Disturb.SpreadRadius = 6
		c.Disturb.DigOnPress = true
	},
	// The blade pushes dunes aside and feeds the pool.
	"overflow": func(c *Config) {
		c.Height.Min, c.Height.Max = -3, 3
		c.Relax.Mode = "graded"
		c.Relax.Overflow = OverflowConfig{
			Enabled:        true,
			Threshold:      1.5,
			PushStrength:   0.5,
			PoolShare:      0.5,
			NeighborSpread: 2,
		}
		c.Disturb.Mode = "dig-conserve"
		c.Pool.Enabled = true
	},
	// Dug sand is captured and trickles back into holes.
	"pooled": func(c *Config) {
		c.Relax.Mode = "fixed"
		c.Relax.Rate = 0.15
		c.Disturb.Mode = "dig"
		c.Disturb.CaptureDigs = true
		c.Pool = PoolConfig{
			Enabled:       true,
			DrainFraction: 0.02,
			HoleThreshold: 2.0,
			Increment:     0.05,
		}
	},
}

// Presets returns the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overwrites the fields the named preset tunes.
func (c *Config) ApplyPreset(name string) error {
	apply, ok := presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q (have %v)", name, Presets())
	}
	apply(c)
	c.Preset = name
	return nil
}
