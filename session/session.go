// Package session drives a world frame by frame and keeps its telemetry.
// Every host (window, terminal, headless) goes through a Session.
package session

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/dodge/telemetry"
	"github.com/pthm-cable/dodge/world"
)

// Sounds receives domain feedback events.
type Sounds interface {
	PlayDeath()
	PlayReset()
}

type nopSounds struct{}

func (nopSounds) PlayDeath() {}
func (nopSounds) PlayReset() {}

// Options configures session creation.
type Options struct {
	Params         world.Params
	Seed           int64
	DT             float64 // Seconds per tick
	StatsWindowSec float64
	PerfWindow     int  // Ticks averaged by the perf collector
	LogStats       bool // Log events and window stats via slog

	RunID  string
	Output *telemetry.OutputManager // nil disables CSV output
	Sounds Sounds                   // nil plays nothing

	// StatsCallback, if set, receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Session owns a world plus its telemetry collectors.
type Session struct {
	world *world.World

	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	lives     *telemetry.LifeTracker
	output    *telemetry.OutputManager
	sounds    Sounds

	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastFlush     uint64
}

// New creates a session with a freshly built world.
func New(opts Options) *Session {
	if opts.DT <= 0 {
		opts.DT = 1.0 / 60.0
	}
	if opts.StatsWindowSec <= 0 {
		opts.StatsWindowSec = 10
	}
	sounds := opts.Sounds
	if sounds == nil {
		sounds = nopSounds{}
	}

	s := &Session{
		world:         world.New(opts.Params, rand.New(rand.NewSource(opts.Seed))),
		perf:          telemetry.NewPerfCollector(opts.PerfWindow),
		collector:     telemetry.NewCollector(opts.StatsWindowSec, opts.DT),
		lives:         telemetry.NewLifeTracker(opts.RunID, opts.DT),
		output:        opts.Output,
		sounds:        sounds,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	s.world.SetTracer(s.perf)
	s.lives.Begin(s.world.Life(), s.world.Tick())
	return s
}

// Step runs one world update and handles its events.
func (s *Session) Step(in world.Input) world.Result {
	s.perf.StartTick()
	res := s.world.Update(in)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.collector.RecordFrame(s.world.Alive())

	if res.Reset {
		s.collector.Record(telemetry.NewResetEvent(res.Tick, res.Life))
		s.lives.Begin(res.Life, res.Tick)
		s.sounds.PlayReset()
		if s.logStats {
			slog.Info("world reset", "tick", res.Tick, "life", res.Life)
		}
	}
	if res.Died {
		s.collector.Record(telemetry.NewDeathEvent(res.Tick, res.Life))
		s.endLife(res.Tick, telemetry.OutcomeCollision)
		s.sounds.PlayDeath()
		if s.logStats {
			slog.Info("player died", "tick", res.Tick, "life", res.Life)
		}
	}

	if s.collector.ShouldFlush(res.Tick) {
		s.flush(res.Tick)
	}
	s.perf.EndTick()
	return res
}

// endLife closes the tracked life and records it.
func (s *Session) endLife(tick uint64, outcome string) {
	rec, ok := s.lives.End(tick, outcome)
	if !ok {
		return
	}
	s.collector.RecordLife(rec)
	if err := s.output.WriteLife(rec); err != nil {
		slog.Error("failed to write life", "error", err)
	}
}

// flush emits the current stats window.
func (s *Session) flush(tick uint64) {
	stats := s.collector.Flush(tick, s.world.Life())
	perfStats := s.perf.Stats()
	s.lastFlush = tick

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// RecordFrame records render frame timing. Graphical hosts call it once per drawn frame.
func (s *Session) RecordFrame() {
	s.perf.RecordFrame()
}

// Snapshot returns a copy of the world for drawing.
func (s *Session) Snapshot() world.Snapshot {
	return s.world.Snapshot()
}

// World returns the driven world.
func (s *Session) World() *world.World {
	return s.world
}

// Tick returns the number of steps taken.
func (s *Session) Tick() uint64 {
	return s.world.Tick()
}

// Perf returns current performance statistics.
func (s *Session) Perf() telemetry.PerfStats {
	return s.perf.Stats()
}

// Close ends the current life, flushes the partial window and closes output.
func (s *Session) Close() error {
	tick := s.world.Tick()
	s.endLife(tick, telemetry.OutcomeRunEnd)
	if tick > s.lastFlush {
		s.flush(tick)
	}
	return s.output.Close()
}
