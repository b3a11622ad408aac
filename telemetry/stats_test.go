package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.sorted, tt.p), 0.001)
		})
	}
}

func TestComputeHeightStats(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	hs := ComputeHeightStats(values)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", hs.Mean, 0.55},
		{"std", hs.Std, 0.302765},
		{"p10", hs.P10, 0.19},
		{"p50", hs.P50, 0.55},
		{"p90", hs.P90, 0.91},
		{"mean abs", hs.MeanAbs, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, 0.001)
		})
	}

	assert.IsNonDecreasing(t, values, "input is sorted in place")
}

func TestComputeHeightStatsSigned(t *testing.T) {
	hs := ComputeHeightStats([]float64{-2, 2, -1, 1})
	assert.Zero(t, hs.Mean)
	assert.Equal(t, 1.5, hs.MeanAbs)
	assert.Zero(t, hs.P50)
}

func TestComputeHeightStatsSmall(t *testing.T) {
	assert.Equal(t, HeightStats{}, ComputeHeightStats(nil))

	hs := ComputeHeightStats([]float64{-3})
	assert.Equal(t, -3.0, hs.Mean)
	assert.Zero(t, hs.Std)
	assert.Equal(t, 3.0, hs.MeanAbs)
	assert.Equal(t, -3.0, hs.P90)
}
