package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Current life index at window end
	Life int `csv:"life"`

	// Events during window
	Deaths        int     `csv:"deaths"`
	Resets        int     `csv:"resets"`
	AliveFraction float64 `csv:"alive_fraction"`

	// Survival of lives that ended during the window, in seconds
	LivesEnded   int     `csv:"lives_ended"`
	SurvivalMean float64 `csv:"survival_mean"`
	SurvivalStd  float64 `csv:"survival_std"`
	SurvivalP50  float64 `csv:"survival_p50"`
	SurvivalMax  float64 `csv:"survival_max"`
}

// SurvivalStats summarizes a set of survival times.
type SurvivalStats struct {
	Count int
	Mean  float64
	Std   float64
	P50   float64
	Max   float64
}

// ComputeSurvivalStats calculates mean, standard deviation, median and max.
// Std is the sample standard deviation and is 0 for fewer than two values.
func ComputeSurvivalStats(values []float64) SurvivalStats {
	n := len(values)
	if n == 0 {
		return SurvivalStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := SurvivalStats{
		Count: n,
		Mean:  stat.Mean(sorted, nil),
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:   sorted[n-1],
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("life", s.Life),
		slog.Int("deaths", s.Deaths),
		slog.Int("resets", s.Resets),
		slog.Float64("alive_fraction", s.AliveFraction),
		slog.Int("lives_ended", s.LivesEnded),
		slog.Float64("survival_mean", s.SurvivalMean),
		slog.Float64("survival_std", s.SurvivalStd),
		slog.Float64("survival_p50", s.SurvivalP50),
		slog.Float64("survival_max", s.SurvivalMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"life", s.Life,
		"deaths", s.Deaths,
		"resets", s.Resets,
		"alive_fraction", s.AliveFraction,
		"lives_ended", s.LivesEnded,
		"survival_mean", s.SurvivalMean,
		"survival_std", s.SurvivalStd,
		"survival_p50", s.SurvivalP50,
		"survival_max", s.SurvivalMax,
	)
}
