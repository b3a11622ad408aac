// Package telemetry provides windowed garden statistics, event bookmarks,
// tick performance timing and CSV experiment output.
package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a telemetry window.
type WindowStats struct {
	WindowStartTick uint64 `csv:"-"`
	WindowEndTick   uint64 `csv:"window_end"`
	Ticks           int    `csv:"ticks"`

	// Blade state at the end of the window
	Angle         float64 `csv:"angle"`
	RotationSpeed float64 `csv:"rotation_speed"`
	Mode          string  `csv:"mode"`

	// Mass accounting
	TotalMass float64 `csv:"total_mass"`
	Pool      float64 `csv:"pool"`
	Deviation float64 `csv:"deviation"`

	// Height distribution over active cells
	HeightMean    float64 `csv:"height_mean"`
	HeightStd     float64 `csv:"height_std"`
	HeightP10     float64 `csv:"height_p10"`
	HeightP50     float64 `csv:"height_p50"`
	HeightP90     float64 `csv:"height_p90"`
	MeanAbsHeight float64 `csv:"mean_abs_height"`

	// Blade work summed over the window
	CombSwept      int     `csv:"comb_swept"`
	SmoothSwept    int     `csv:"smooth_swept"`
	DeviatedSwept  int     `csv:"deviated_swept"`
	OverflowPushed float64 `csv:"overflow_pushed"`
	OverflowToPool float64 `csv:"overflow_to_pool"`

	// Touch work summed over the window
	Disturbances  int     `csv:"disturbances"`
	Removed       float64 `csv:"removed"`
	Added         float64 `csv:"added"`
	Deposited     float64 `csv:"deposited"`
	Spilled       float64 `csv:"spilled"`
	MaxIntensity  float64 `csv:"max_intensity"`
	Redistributed float64 `csv:"redistributed"`
	Resizes       int     `csv:"resizes"`
}

// HeightStats summarises a set of cell heights.
type HeightStats struct {
	Mean    float64
	Std     float64
	P10     float64
	P50     float64
	P90     float64
	MeanAbs float64
}

// Percentile returns the p-th percentile of sorted data using linear
// interpolation between closest ranks. p is in [0, 1].
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeHeightStats computes distribution statistics. values is sorted in
// place.
func ComputeHeightStats(values []float64) HeightStats {
	if len(values) == 0 {
		return HeightStats{}
	}
	sort.Float64s(values)

	var hs HeightStats
	if len(values) > 1 {
		hs.Mean, hs.Std = stat.MeanStdDev(values, nil)
	} else {
		hs.Mean = values[0]
	}

	var abs float64
	for _, v := range values {
		abs += math.Abs(v)
	}
	hs.MeanAbs = abs / float64(len(values))

	hs.P10 = Percentile(values, 0.10)
	hs.P50 = Percentile(values, 0.50)
	hs.P90 = Percentile(values, 0.90)
	return hs
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("angle", s.Angle),
		slog.Float64("rotation_speed", s.RotationSpeed),
		slog.String("mode", s.Mode),
		slog.Float64("total_mass", s.TotalMass),
		slog.Float64("pool", s.Pool),
		slog.Float64("deviation", s.Deviation),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_std", s.HeightStd),
		slog.Int("disturbances", s.Disturbances),
		slog.Int("comb_swept", s.CombSwept),
		slog.Int("smooth_swept", s.SmoothSwept),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"ticks", s.Ticks,
		"angle", s.Angle,
		"rotation_speed", s.RotationSpeed,
		"mode", s.Mode,
		"total_mass", s.TotalMass,
		"pool", s.Pool,
		"deviation", s.Deviation,
		"height_mean", s.HeightMean,
		"height_std", s.HeightStd,
		"height_p10", s.HeightP10,
		"height_p50", s.HeightP50,
		"height_p90", s.HeightP90,
		"mean_abs_height", s.MeanAbsHeight,
		"comb_swept", s.CombSwept,
		"smooth_swept", s.SmoothSwept,
		"deviated_swept", s.DeviatedSwept,
		"overflow_pushed", s.OverflowPushed,
		"overflow_to_pool", s.OverflowToPool,
		"disturbances", s.Disturbances,
		"removed", s.Removed,
		"added", s.Added,
		"deposited", s.Deposited,
		"spilled", s.Spilled,
		"max_intensity", s.MaxIntensity,
		"redistributed", s.Redistributed,
		"resizes", s.Resizes,
	)
}
