// Command tune searches relaxation constants with CMA-ES for a blade that
// heals a scripted disturbance quickly without visible popping.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/sandgarden/config"
)

// evalRow is one line of tune_log.csv. Parameter columns follow
// NewParamVector order.
type evalRow struct {
	Eval             int     `csv:"eval"`
	Fitness          float64 `csv:"fitness"`
	Deviation        float64 `csv:"deviation"`
	Popping          float64 `csv:"popping"`
	Rate             float64 `csv:"rate"`
	SlowRate         float64 `csv:"slow_rate"`
	FastRate         float64 `csv:"fast_rate"`
	DisturbThreshold float64 `csv:"disturb_threshold"`
	SnapEpsilon      float64 `csv:"snap_epsilon"`
	WedgeFactor      float64 `csv:"wedge_factor"`
}

func newEvalRow(eval int, fitness, deviation, popping float64, v []float64) evalRow {
	return evalRow{
		Eval:             eval,
		Fitness:          fitness,
		Deviation:        deviation,
		Popping:          popping,
		Rate:             v[0],
		SlowRate:         v[1],
		FastRate:         v[2],
		DisturbThreshold: v[3],
		SnapEpsilon:      v[4],
		WedgeFactor:      v[5],
	}
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	preset := flag.String("preset", "", "Named preset applied to the base config")
	revolutions := flag.Float64("revolutions", 2, "Blade revolutions allowed for healing")
	seeds := flag.Int("seeds", 3, "Number of scripted strokes per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(*configPath, *preset, *outputDir, *revolutions, *seeds, *maxEvals, *population); err != nil {
		slog.Error("tune failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, preset, outputDir string, revolutions float64, seeds, maxEvals, population int) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// Fail early on a bad base config
	baseCfg, err := config.Load(configPath, preset)
	if err != nil {
		return err
	}

	params := NewParamVector()
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, configPath, preset, revolutions, evalSeeds)

	dim := params.Dim()
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))

	popSize := population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	logFile, err := os.Create(filepath.Join(outputDir, "tune_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			deviation, popping := evaluator.Last()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			rows := []evalRow{newEvalRow(evalCount, fitness, deviation, popping, clamped)}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(rows, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(rows, logFile)
			}
			if werr != nil {
				slog.Error("failed to write tune log", "error", werr)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			slog.Info("eval",
				"n", evalCount,
				"of", maxEvals,
				"fitness", fitness,
				"deviation", deviation,
				"popping", popping,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // evalCount and the log are not synchronised
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	slog.Info("starting CMA-ES",
		"params", dim,
		"population", popSize,
		"max_evals", maxEvals,
		"seeds", seeds,
		"revolutions", revolutions,
	)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		return fmt.Errorf("no evaluations completed")
	}

	slog.Info("tuning complete",
		"evals", evalCount,
		"duration", formatDuration(time.Since(startTime)),
		"best_fitness", bestFitness,
	)
	for i, spec := range params.Specs {
		slog.Info("best param", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	params.ApplyToConfig(baseCfg, bestParams)
	configOutPath := filepath.Join(outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(configOutPath); err != nil {
		return err
	}
	slog.Info("best config saved", "path", configOutPath)
	return nil
}
