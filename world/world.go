// Package world owns the player, the enemies and the per-frame update pipeline.
package world

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/systems"
)

// Phase names reported to a Tracer, in pipeline order.
const (
	PhaseControls  = "controls"
	PhaseMovement  = "movement"
	PhaseCollision = "collision"
	PhaseBounds    = "bounds"
)

// Params holds everything needed to build and step a world.
type Params struct {
	EnemyCount    int
	Radius        float32
	Spawn         systems.SpawnParams
	WalkStep      float32
	Collision     systems.CollisionTest
	ClampWhenDead bool
}

// DefaultParams mirrors the embedded configuration defaults.
func DefaultParams() Params {
	return Params{
		EnemyCount: 500,
		Radius:     5,
		Spawn: systems.SpawnParams{
			HalfExtent:      256,
			Margin:          0.8,
			ClearanceFactor: 2,
		},
		WalkStep:  1,
		Collision: systems.CollisionBox,
	}
}

// ParamsFromConfig derives world parameters from a loaded configuration.
// The config must have passed Validate; an unknown collision mode panics.
func ParamsFromConfig(cfg *config.Config) Params {
	test, err := systems.ParseCollisionTest(cfg.Collision.Mode)
	if err != nil {
		panic(fmt.Sprintf("world: invalid config: %v", err))
	}
	return Params{
		EnemyCount: cfg.Population.EnemyCount,
		Radius:     cfg.Derived.Radius32,
		Spawn: systems.SpawnParams{
			HalfExtent:      cfg.Derived.HalfExtent,
			Margin:          float32(cfg.Spawn.Margin),
			ClearanceFactor: float32(cfg.Spawn.ClearanceFactor),
		},
		WalkStep:      float32(cfg.Movement.WalkStep),
		Collision:     test,
		ClampWhenDead: cfg.Bounds.ClampWhenDead,
	}
}

// Tracer receives phase boundaries during Update.
// telemetry.PerfCollector satisfies it.
type Tracer interface {
	StartPhase(phase string)
}

// Input is what the host provides each frame.
type Input struct {
	Pointer components.Position // Pointer in world coordinates
	Pressed bool                // Primary button currently held
	Bounds  systems.Rect        // Arena rectangle
}

// Result reports the domain events of one Update call.
type Result struct {
	Reset bool // The world was replaced this frame
	Died  bool // The player died this frame
	Tick  uint64
	Life  int
}

// World is the single unit of mutation per frame.
// The zero value is not usable; construct with New.
type World struct {
	params Params
	rng    *rand.Rand
	tracer Tracer

	state *state
	tick  uint64
	life  int // 1-based count of worlds built, including resets
}

// New builds a world: a default player at the origin and Params.EnemyCount
// enemies placed by the spawn policy.
func New(params Params, rng *rand.Rand) *World {
	w := &World{params: params, rng: rng}
	w.state = w.build()
	return w
}

// SetTracer installs a phase tracer. Pass nil to disable.
func (w *World) SetTracer(t Tracer) {
	w.tracer = t
}

func (w *World) trace(phase string) {
	if w.tracer != nil {
		w.tracer.StartPhase(phase)
	}
}

// build constructs a complete fresh state. It never touches w.state.
func (w *World) build() *state {
	w.life++
	p := w.params

	player := components.DefaultPlayer(p.Radius)
	if !systems.ClearanceFits(player.Position, p.Radius, p.Spawn) {
		slog.Warn("spawn clearance exceeds spawn bound, enemies may start on the player",
			"clearance", p.Spawn.Clearance(p.Radius),
			"bound", p.Spawn.Bound(),
		)
	}

	s := newState(p)
	s.player = s.mapper.NewEntity(&player.Position, &player.Body, &player.Look, &player.Vitals, &player.Role)
	for i := 0; i < p.EnemyCount; i++ {
		enemy := components.DefaultEnemy(p.Radius)
		enemy.Position = systems.SpawnPosition(w.rng, player.Position, p.Radius, p.Spawn)
		s.mapper.NewEntity(&enemy.Position, &enemy.Body, &enemy.Look, &enemy.Vitals, &enemy.Role)
	}
	s.enemies = p.EnemyCount
	return s
}

// Update advances the world by one frame.
func (w *World) Update(in Input) Result {
	w.tick++
	res := Result{Tick: w.tick}

	// 1. Reset: a dead player plus a held button replaces the whole world
	w.trace(PhaseControls)
	alive := w.state.alive()
	if in.Pressed && !alive {
		fresh := w.build()
		w.state = fresh
		res.Reset = true
		res.Life = w.life
		return res
	}
	res.Life = w.life

	// 2. Dead player: the world is frozen
	if !alive {
		if w.params.ClampWhenDead {
			w.trace(PhaseBounds)
			w.state.bounds.Update(in.Bounds)
		}
		return res
	}

	// 3. Movement
	w.trace(PhaseMovement)
	*w.state.posMap.Get(w.state.player) = in.Pointer
	w.state.wander.Update(w.rng)

	// 4. Collision
	w.trace(PhaseCollision)
	res.Died = w.state.collision.Update(w.state.player)

	// 5. Bounds, still applied on the frame the player dies
	w.trace(PhaseBounds)
	w.state.bounds.Update(in.Bounds)

	return res
}

// Alive reports whether the player is alive.
func (w *World) Alive() bool {
	return w.state.alive()
}

// EnemyCount returns the number of enemies.
func (w *World) EnemyCount() int {
	return w.state.enemies
}

// Tick returns the number of Update calls so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// Life returns the 1-based index of the current world, counting resets.
func (w *World) Life() int {
	return w.life
}

// Params returns the parameters the world was built with.
func (w *World) Params() Params {
	return w.params
}

// Player returns a copy of the player's drawable state.
func (w *World) Player() Drawable {
	return w.state.drawable(w.state.player)
}

// state is one generation of the world. Resets replace it wholesale.
type state struct {
	ecs     *ecs.World
	player  ecs.Entity
	enemies int

	mapper *ecs.Map5[
		components.Position,
		components.Body,
		components.Appearance,
		components.Vitals,
		components.Role,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Body,
		components.Appearance,
		components.Vitals,
		components.Role,
	]
	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]
	lookMap *ecs.Map1[components.Appearance]
	vitMap  *ecs.Map1[components.Vitals]

	wander    *systems.WanderSystem
	collision *systems.CollisionSystem
	bounds    *systems.BoundsSystem
}

func newState(p Params) *state {
	w := ecs.NewWorld()
	return &state{
		ecs: w,
		mapper: ecs.NewMap5[
			components.Position,
			components.Body,
			components.Appearance,
			components.Vitals,
			components.Role,
		](w),
		filter: ecs.NewFilter5[
			components.Position,
			components.Body,
			components.Appearance,
			components.Vitals,
			components.Role,
		](w),
		posMap:    ecs.NewMap1[components.Position](w),
		bodyMap:   ecs.NewMap1[components.Body](w),
		lookMap:   ecs.NewMap1[components.Appearance](w),
		vitMap:    ecs.NewMap1[components.Vitals](w),
		wander:    systems.NewWanderSystem(w, p.WalkStep),
		collision: systems.NewCollisionSystem(w, p.Collision),
		bounds:    systems.NewBoundsSystem(w),
	}
}

func (s *state) alive() bool {
	return s.vitMap.Get(s.player).Alive
}

func (s *state) drawable(e ecs.Entity) Drawable {
	return Drawable{
		Position: *s.posMap.Get(e),
		Radius:   s.bodyMap.Get(e).Radius,
		Color:    s.lookMap.Get(e).Color,
		Alive:    s.vitMap.Get(e).Alive,
	}
}
