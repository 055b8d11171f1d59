// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Collision modes accepted by collision.mode.
const (
	CollisionModeBox    = "box"
	CollisionModeCircle = "circle"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Population PopulationConfig `yaml:"population"`
	Entity     EntityConfig     `yaml:"entity"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Movement   MovementConfig   `yaml:"movement"`
	Collision  CollisionConfig  `yaml:"collision"`
	Bounds     BoundsConfig     `yaml:"bounds"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Audio      AudioConfig      `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`  // 0 = arena size
	Height    int    `yaml:"height"` // 0 = arena size
	TargetFPS int    `yaml:"target_fps"`
	Resizable bool   `yaml:"resizable"`
}

// ArenaConfig holds the playing field dimensions.
// The arena is a square centered on the origin.
type ArenaConfig struct {
	Size int `yaml:"size"` // Edge length in world units (pixels at 1:1)
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	EnemyCount int `yaml:"enemy_count"`
}

// EntityConfig holds entity creation parameters.
type EntityConfig struct {
	Radius float64 `yaml:"radius"` // Shared by player and enemies, never mutated
}

// SpawnConfig holds enemy placement parameters.
type SpawnConfig struct {
	Margin          float64 `yaml:"margin"`           // Fraction of the half extent enemies may spawn in
	ClearanceFactor float64 `yaml:"clearance_factor"` // Clearance = player radius * this, per axis
}

// MovementConfig holds per-tick movement parameters.
type MovementConfig struct {
	WalkStep float64 `yaml:"walk_step"` // Max per-axis enemy displacement per tick
}

// CollisionConfig selects the player/enemy overlap test.
type CollisionConfig struct {
	Mode string `yaml:"mode"` // "box" (axis-aligned, default) or "circle"
}

// BoundsConfig holds boundary handling parameters.
type BoundsConfig struct {
	ClampWhenDead bool `yaml:"clamp_when_dead"` // Keep clamping after the player dies
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds sound feedback parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // Linear gain, 0..1
	DeathTone  float64 `yaml:"death_tone"`
	ResetTone  float64 `yaml:"reset_tone"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfExtent float32 // Arena.Size / 2
	ScreenW    int     // Effective window width
	ScreenH    int     // Effective window height
	Radius32   float32 // Entity.Radius as float32
	DT         float64 // Seconds per tick at the target frame rate
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Arena.Size <= 0:
		return fmt.Errorf("config: arena.size must be positive, got %d", c.Arena.Size)
	case c.Population.EnemyCount < 0:
		return fmt.Errorf("config: population.enemy_count must not be negative, got %d", c.Population.EnemyCount)
	case c.Entity.Radius <= 0:
		return fmt.Errorf("config: entity.radius must be positive, got %g", c.Entity.Radius)
	case c.Spawn.Margin <= 0 || c.Spawn.Margin > 1:
		return fmt.Errorf("config: spawn.margin must be in (0, 1], got %g", c.Spawn.Margin)
	case c.Spawn.ClearanceFactor < 0:
		return fmt.Errorf("config: spawn.clearance_factor must not be negative, got %g", c.Spawn.ClearanceFactor)
	case c.Movement.WalkStep < 0:
		return fmt.Errorf("config: movement.walk_step must not be negative, got %g", c.Movement.WalkStep)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("config: screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	case c.Screen.Width < 0 || c.Screen.Height < 0:
		return fmt.Errorf("config: screen size must not be negative, got %dx%d", c.Screen.Width, c.Screen.Height)
	case (c.Screen.Width > 0 && c.Screen.Width < c.Arena.Size) || (c.Screen.Height > 0 && c.Screen.Height < c.Arena.Size):
		// The window is the clamp rectangle, so it must contain the spawn area
		return fmt.Errorf("config: screen %dx%d is smaller than arena.size %d", c.Screen.Width, c.Screen.Height, c.Arena.Size)
	}
	switch c.Collision.Mode {
	case CollisionModeBox, CollisionModeCircle:
	default:
		return fmt.Errorf("config: unknown collision.mode %q", c.Collision.Mode)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfExtent = float32(c.Arena.Size) / 2
	c.Derived.Radius32 = float32(c.Entity.Radius)
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)

	// Window defaults to the arena size
	c.Derived.ScreenW = c.Screen.Width
	if c.Derived.ScreenW == 0 {
		c.Derived.ScreenW = c.Arena.Size
	}
	c.Derived.ScreenH = c.Screen.Height
	if c.Derived.ScreenH == 0 {
		c.Derived.ScreenH = c.Arena.Size
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
