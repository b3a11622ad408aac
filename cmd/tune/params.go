package main

import (
	"github.com/pthm-cable/sandgarden/config"
)

// ParamSpec is one tunable config value and its search bounds.
type ParamSpec struct {
	Name     string
	Path     string // dotted YAML path, for logs
	Min, Max float64
	Default  float64

	field func(*config.Config) *float64
}

// ParamVector is the ordered set of parameters the tuner searches over.
// Vectors passed to its methods are indexed like Specs.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the relaxation and blade parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{Name: "rate", Path: "relax.rate", Min: 0.01, Max: 0.5, Default: 0.08,
			field: func(c *config.Config) *float64 { return &c.Relax.Rate }},
		{Name: "slow_rate", Path: "relax.slow_rate", Min: 0.005, Max: 0.2, Default: 0.03,
			field: func(c *config.Config) *float64 { return &c.Relax.SlowRate }},
		{Name: "fast_rate", Path: "relax.fast_rate", Min: 0.05, Max: 0.9, Default: 0.35,
			field: func(c *config.Config) *float64 { return &c.Relax.FastRate }},
		{Name: "disturb_threshold", Path: "relax.disturb_threshold", Min: 0.1, Max: 4.0, Default: 1.0,
			field: func(c *config.Config) *float64 { return &c.Relax.DisturbThreshold }},
		{Name: "snap_epsilon", Path: "relax.snap_epsilon", Min: 0.0, Max: 0.2, Default: 0.02,
			field: func(c *config.Config) *float64 { return &c.Relax.SnapEpsilon }},
		{Name: "wedge_factor", Path: "blade.wedge_factor", Min: 1.0, Max: 6.0, Default: 2.5,
			field: func(c *config.Config) *float64 { return &c.Blade.WedgeFactor }},
	}}
}

func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

func (pv *ParamVector) DefaultVector() []float64 {
	return pv.mapSpecs(nil, func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize maps raw values onto [0, 1] per parameter bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.mapSpecs(raw, func(s ParamSpec, v float64) float64 { return (v - s.Min) / (s.Max - s.Min) })
}

// Denormalize is the inverse of Normalize.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.mapSpecs(unit, func(s ParamSpec, v float64) float64 { return s.Min + v*(s.Max-s.Min) })
}

func (pv *ParamVector) Clamp(v []float64) []float64 {
	return pv.mapSpecs(v, func(s ParamSpec, x float64) float64 { return min(max(x, s.Min), s.Max) })
}

func (pv *ParamVector) mapSpecs(in []float64, fn func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		var x float64
		if in != nil {
			x = in[i]
		}
		out[i] = fn(s, x)
	}
	return out
}

// ApplyToConfig clamps values and writes them into cfg. If the search
// produced slow_rate > fast_rate the two are swapped.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
	if cfg.Relax.SlowRate > cfg.Relax.FastRate {
		cfg.Relax.SlowRate, cfg.Relax.FastRate = cfg.Relax.FastRate, cfg.Relax.SlowRate
	}
}

// ExtractFromConfig reads the parameters' current values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		out[i] = *s.field(cfg)
	}
	return out
}
