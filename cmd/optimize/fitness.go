package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/session"
	"github.com/pthm-cable/dodge/systems"
	"github.com/pthm-cable/dodge/telemetry"
	"github.com/pthm-cable/dodge/world"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params   *ParamVector
	maxTicks int
	seeds    []int64
	cfg      *config.Config

	mu          sync.Mutex
	bestFitness float64
	lastDeaths  float64 // mean deaths per seed from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, cfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		cfg:         cfg,
		bestFitness: math.Inf(1),
	}
}

// LastDeaths returns the mean death count from the most recent evaluation.
func (fe *FitnessEvaluator) LastDeaths() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDeaths
}

// runResult holds the results from a single simulation run.
type runResult struct {
	ticks       int
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// deaths totals deaths over all windows.
func (r *runResult) deaths() int {
	n := 0
	for _, w := range r.windowStats {
		n += w.Deaths
	}
	return n
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negative mean number of ticks survived per life.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalDeaths float64
	for _, r := range results {
		totalFitness += computeFitness(r)
		totalDeaths += float64(r.deaths())
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastDeaths = totalDeaths / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run under autopilot.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	result := &runResult{ticks: fe.maxTicks}

	s := session.New(session.Options{
		Params:         world.ParamsFromConfig(fe.cfg),
		Seed:           seed,
		DT:             fe.cfg.Derived.DT,
		StatsWindowSec: fe.cfg.Telemetry.StatsWindow,
		PerfWindow:     fe.cfg.Telemetry.PerfCollectorWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})

	size := float32(fe.cfg.Arena.Size)
	fe.params.Autopilot(x).Run(s, systems.CenteredRect(size, size), fe.maxTicks)

	// Flush the last partial window through the callback
	s.Close()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// A run with no deaths scores the full run length.
func computeFitness(r *runResult) float64 {
	return -float64(r.ticks) / float64(r.deaths()+1)
}
