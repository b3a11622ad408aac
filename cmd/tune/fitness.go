package main

import (
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/sandgarden/config"
	"github.com/pthm-cable/sandgarden/garden"
)

// Scoring weights and scenario constants.
const (
	popWeight    = 4.0 // weight on the largest single-tick height change
	dragTicks    = 30  // ticks the scripted drag lasts
	strokeLength = 1.6 // stroke length as a fraction of the garden radius
	gardenSize   = 400 // headless viewport side in pixels
)

// FitnessEvaluator runs scripted headless gardens and scores how cleanly the
// blade heals a disturbance.
type FitnessEvaluator struct {
	params      *ParamVector
	configPath  string
	preset      string
	revolutions float64
	seeds       []int64

	mu         sync.Mutex
	lastResult seedResult
}

// NewFitnessEvaluator creates a new evaluator. Each run loads a fresh config
// from configPath and preset so concurrent runs never share state.
func NewFitnessEvaluator(params *ParamVector, configPath, preset string, revolutions float64, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		configPath:  configPath,
		preset:      preset,
		revolutions: revolutions,
		seeds:       seeds,
	}
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness   float64
	deviation float64 // mean |target-height| per active cell after healing
	popping   float64 // largest single-cell change in one tick
	err       error
}

// Last returns the averaged result of the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() (deviation, popping float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult.deviation, fe.lastResult.popping
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runScenario(x, s)
		}(i, seed)
	}
	wg.Wait()

	var avg seedResult
	for _, r := range results {
		if r.err != nil {
			avg = seedResult{fitness: math.Inf(1), err: r.err}
			break
		}
		avg.fitness += r.fitness
		avg.deviation += r.deviation
		avg.popping += r.popping
	}
	if avg.err == nil {
		n := float64(len(results))
		avg.fitness /= n
		avg.deviation /= n
		avg.popping /= n
	}

	fe.mu.Lock()
	fe.lastResult = avg
	fe.mu.Unlock()

	return avg.fitness
}

// runScenario drags a stroke across the garden, lets the blade run for the
// configured number of revolutions and scores the result.
func (fe *FitnessEvaluator) runScenario(x []float64, seed int64) seedResult {
	cfg, err := config.Load(fe.configPath, fe.preset)
	if err != nil {
		return seedResult{err: err}
	}
	fe.params.ApplyToConfig(cfg, x)
	cfg.Disturb.NoiseSeed = seed

	g, err := garden.New(cfg, gardenSize, gardenSize)
	if err != nil {
		return seedResult{err: err}
	}

	fe.drag(g, rand.New(rand.NewSource(seed)))

	ticks := revolutionTicks(g.RotationSpeed(), fe.revolutions)
	prev := g.Field().ActiveHeights(nil)
	cur := make([]float64, 0, len(prev))

	var popping float64
	for range ticks {
		g.Tick()
		cur = g.Field().ActiveHeights(cur)
		popping = max(popping, floats.Distance(cur, prev, math.Inf(1)))
		prev, cur = cur, prev
	}

	deviation := g.Field().Deviation()
	if n := len(prev); n > 0 {
		deviation /= float64(n)
	}
	return seedResult{
		fitness:   deviation + popWeight*popping,
		deviation: deviation,
		popping:   popping,
	}
}

// drag runs a straight stroke through a random chord of the garden.
func (fe *FitnessEvaluator) drag(g *garden.Garden, rng *rand.Rand) {
	r := g.Radius()
	heading := rng.Float64() * 2 * math.Pi
	offset := (rng.Float64() - 0.5) * r * 0.5

	half := r * strokeLength / 2
	dx, dy := math.Cos(heading), math.Sin(heading)
	nx, ny := -dy*offset, dx*offset

	g.PointerDown(nx-dx*half, ny-dy*half)
	for i := 1; i <= dragTicks; i++ {
		t := -half + 2*half*float64(i)/dragTicks
		g.PointerMove(nx+dx*t, ny+dy*t)
		g.Tick()
	}
	g.PointerUp()
}

// revolutionTicks returns the ticks needed for the blade to turn the given
// number of revolutions. A stopped blade gets a single tick.
func revolutionTicks(speed, revolutions float64) int {
	if speed <= 0 {
		return 1
	}
	return int(math.Ceil(revolutions * 2 * math.Pi / speed))
}
