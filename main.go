package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/audio"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/game"
	"github.com/pthm-cable/dodge/session"
	"github.com/pthm-cable/dodge/telemetry"
	"github.com/pthm-cable/dodge/terminal"
	"github.com/pthm-cable/dodge/world"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses args, runs the selected host and returns the exit code.
// Deferred cleanup always runs before the process exits.
func run(args []string) int {
	// CLI flags
	fs := flag.NewFlagSet("dodge", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := fs.Bool("headless", false, "Run without graphics, driven by the autopilot")
	term := fs.Bool("terminal", false, "Run in the terminal instead of a window")
	logStats := fs.Bool("log-stats", false, "Output stats via slog")
	statsWindow := fs.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := fs.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := fs.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	mute := fs.Bool("mute", false, "Disable sound")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal host owns stdout, so its logs go to a file or nowhere
	var logger *slog.Logger
	if *term {
		logger = slog.New(slog.NewTextHandler(terminalLogWriter(*outputDir), nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	slog.SetDefault(logger)

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	// Sound is optional: failures are logged and the run continues silent
	var sounds session.Sounds
	if cfg.Audio.Enabled && !*mute && !*headless {
		sm := audio.NewSoundManager(cfg.Audio)
		if err := sm.Initialize(); err != nil {
			slog.Warn("audio disabled", "error", err)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	switch {
	case *term:
		return runTerminal(cfg, rngSeed, *logStats, *outputDir, *maxTicks, sounds)

	case *headless:
		// Headless mode - pure CPU simulation, no raylib needed
		g := game.NewGameWithOptions(game.Options{
			Seed:      rngSeed,
			LogStats:  *logStats,
			OutputDir: *outputDir,
			Headless:  true,
			Config:    cfg,
		})
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", cfg.Telemetry.StatsWindow,
			"max_ticks", *maxTicks,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && g.Tick() >= uint64(*maxTicks) {
				slog.Info("max ticks reached", "tick", g.Tick(), "lives", g.Life())
				return 0
			}
		}

	default:
		// Graphical mode
		if cfg.Screen.Resizable {
			rl.SetConfigFlags(rl.FlagWindowResizable)
		}
		rl.InitWindow(int32(cfg.Derived.ScreenW), int32(cfg.Derived.ScreenH), cfg.Screen.Title)
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g := game.NewGameWithOptions(game.Options{
			Seed:      rngSeed,
			LogStats:  *logStats,
			OutputDir: *outputDir,
			Config:    cfg,
			Sounds:    sounds,
		})
		defer g.Unload()

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxTicks > 0 && g.Tick() >= uint64(*maxTicks) {
				break
			}
		}
	}
	return 0
}

// runTerminal runs the tcell host and returns the process exit code.
func runTerminal(cfg *config.Config, seed int64, logStats bool, outputDir string, maxTicks int, sounds session.Sounds) int {
	screen, err := terminal.Open()
	if err != nil {
		slog.Error("failed to open terminal", "error", err)
		return 1
	}
	defer screen.Fini()

	runID := telemetry.NewRunID()
	output, err := telemetry.NewOutputManager(outputDir, runID)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		output = nil
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	s := session.New(session.Options{
		Params:         world.ParamsFromConfig(cfg),
		Seed:           seed,
		DT:             cfg.Derived.DT,
		StatsWindowSec: cfg.Telemetry.StatsWindow,
		PerfWindow:     cfg.Telemetry.PerfCollectorWindow,
		LogStats:       logStats,
		RunID:          runID,
		Output:         output,
		Sounds:         sounds,
	})
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting terminal simulation", "run_id", runID, "seed", seed)

	host := terminal.New(screen, s, float32(cfg.Arena.Size))
	host.SetMaxTicks(uint64(maxTicks))
	host.Run(cfg.Screen.TargetFPS)
	return 0
}

// terminalLogWriter opens dodge.log in the output directory, or discards logs without one.
func terminalLogWriter(outputDir string) io.Writer {
	if outputDir == "" {
		return io.Discard
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(filepath.Join(outputDir, "dodge.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.Discard
	}
	return f
}
