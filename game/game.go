// Package game hosts the simulation in a raylib window.
package game

import (
	"log/slog"

	"github.com/pthm-cable/dodge/camera"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/session"
	"github.com/pthm-cable/dodge/telemetry"
	"github.com/pthm-cable/dodge/ui"
	"github.com/pthm-cable/dodge/world"
)

// Options configures game creation.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool
	Config    *config.Config // nil uses the global config
	Sounds    session.Sounds

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	session *session.Session
	camera  *camera.Camera

	// Headless runs are driven by a scripted pointer
	headless  bool
	autopilot *session.Autopilot

	paused   bool
	showPerf bool

	// UI
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a new game instance.
// Output setup failures are logged and CSV output is disabled.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	runID := telemetry.NewRunID()
	output, err := telemetry.NewOutputManager(opts.OutputDir, runID)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	w := float32(cfg.Derived.ScreenW)
	h := float32(cfg.Derived.ScreenH)

	g := &Game{
		cfg: cfg,
		session: session.New(session.Options{
			Params:         world.ParamsFromConfig(cfg),
			Seed:           opts.Seed,
			DT:             cfg.Derived.DT,
			StatsWindowSec: cfg.Telemetry.StatsWindow,
			PerfWindow:     cfg.Telemetry.PerfCollectorWindow,
			LogStats:       opts.LogStats,
			RunID:          runID,
			Output:         output,
			Sounds:         opts.Sounds,
			StatsCallback:  opts.StatsCallback,
		}),
		camera:       camera.New(w, h),
		showPerf:     opts.LogStats,
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(int32(w)-230, 28, 220),
		headless:     opts.Headless,
		screenWidth:  w,
		screenHeight: h,
	}
	if g.headless {
		g.autopilot = session.NewAutopilot()
	}

	slog.Info("world created",
		"run_id", runID,
		"seed", opts.Seed,
		"enemies", g.session.World().EnemyCount(),
		"arena", g.camera.Bounds(),
		"output_dir", output.Dir(),
	)
	return g
}

// Update handles window input and runs one simulation step.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	g.session.Step(g.readInput())
}

// UpdateHeadless runs one simulation step without raylib.
func (g *Game) UpdateHeadless() {
	if g.autopilot == nil {
		g.autopilot = session.NewAutopilot()
	}
	g.session.Step(g.autopilot.Next(g.session.World().Alive(), g.camera.Bounds()))
}

// Unload flushes telemetry and closes output files.
func (g *Game) Unload() {
	if err := g.session.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() uint64 {
	return g.session.Tick()
}

// Life returns the 1-based index of the current world.
func (g *Game) Life() int {
	return g.session.World().Life()
}
