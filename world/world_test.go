package world

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/config"
	"github.com/pthm-cable/dodge/systems"
)

var arena = systems.CenteredRect(512, 512)

func newTestWorld(t *testing.T, params Params, seed int64) *World {
	t.Helper()
	return New(params, rand.New(rand.NewSource(seed)))
}

// addEnemy places an extra enemy directly into the current state.
func addEnemy(w *World, pos components.Position) {
	e := components.DefaultEnemy(w.params.Radius)
	e.Position = pos
	w.state.mapper.NewEntity(&e.Position, &e.Body, &e.Look, &e.Vitals, &e.Role)
	w.state.enemies++
}

func emptyParams() Params {
	p := DefaultParams()
	p.EnemyCount = 0
	return p
}

func checkSpawnInvariants(t *testing.T, w *World) {
	t.Helper()
	snap := w.Snapshot()
	if len(snap.Enemies) != w.params.EnemyCount {
		t.Fatalf("enemy count = %d, want %d", len(snap.Enemies), w.params.EnemyCount)
	}
	bound := w.params.Spawn.Bound()
	player := systems.Circle{X: snap.Player.Position.X, Y: snap.Player.Position.Y, Radius: snap.Player.Radius}
	for i, e := range snap.Enemies {
		if e.Position.X < -bound || e.Position.X > bound || e.Position.Y < -bound || e.Position.Y > bound {
			t.Errorf("enemy %d at %+v outside spawn bound %f", i, e.Position, bound)
		}
		if systems.Overlaps(player, systems.Circle{X: e.Position.X, Y: e.Position.Y, Radius: e.Radius}) {
			t.Errorf("enemy %d at %+v spawned on the player", i, e.Position)
		}
		if e.Color != components.Red || !e.Alive {
			t.Errorf("enemy %d = %+v, want live red", i, e)
		}
	}
}

func TestNewWorldDefaults(t *testing.T) {
	w := newTestWorld(t, DefaultParams(), 1)

	if !w.Alive() {
		t.Fatal("player should start alive")
	}
	if w.EnemyCount() != 500 {
		t.Errorf("EnemyCount = %d, want 500", w.EnemyCount())
	}
	p := w.Player()
	if p.Position != (components.Position{}) || p.Radius != 5 || p.Color != components.White {
		t.Errorf("player = %+v, want white radius 5 at origin", p)
	}
	if w.Life() != 1 {
		t.Errorf("Life = %d, want 1", w.Life())
	}
	checkSpawnInvariants(t, w)
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Collision.Mode = config.CollisionModeCircle
	cfg.Bounds.ClampWhenDead = true

	p := ParamsFromConfig(cfg)
	want := DefaultParams()
	want.Collision = systems.CollisionCircle
	want.ClampWhenDead = true
	if p != want {
		t.Errorf("ParamsFromConfig = %+v, want %+v", p, want)
	}
}

func TestParamsFromConfigRejectsUnknownMode(t *testing.T) {
	cfg := config.Default()
	cfg.Collision.Mode = "hexagon"

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown collision mode")
		}
	}()
	ParamsFromConfig(cfg)
}

func TestPlayerFollowsPointer(t *testing.T) {
	w := newTestWorld(t, emptyParams(), 1)
	w.Update(Input{Pointer: components.Position{X: 40, Y: -12}, Bounds: arena})

	if got := w.Player().Position; got != (components.Position{X: 40, Y: -12}) {
		t.Errorf("player at %+v, want (40,-12)", got)
	}
}

// TestCollisionKillsPlayer covers the enemy-at-(3,3) scenario.
func TestCollisionKillsPlayer(t *testing.T) {
	w := newTestWorld(t, emptyParams(), 1)
	addEnemy(w, components.Position{X: 3, Y: 3})

	res := w.Update(Input{Pointer: components.Position{}, Bounds: arena})

	if !res.Died {
		t.Error("expected Died in result")
	}
	if w.Alive() {
		t.Fatal("player should be dead")
	}
	if c := w.Player().Color; c != components.Black {
		t.Errorf("player color = %+v, want black", c)
	}
}

func TestDeathIsMonotonicAndFreezes(t *testing.T) {
	w := newTestWorld(t, DefaultParams(), 2)
	addEnemy(w, components.Position{X: 3, Y: 3})
	w.Update(Input{Bounds: arena})
	if w.Alive() {
		t.Fatal("setup: player should be dead")
	}

	frozen := w.Snapshot()
	for i := 0; i < 50; i++ {
		res := w.Update(Input{Pointer: components.Position{X: 100, Y: 100}, Bounds: arena})
		if res.Reset || res.Died {
			t.Fatalf("frame %d: unexpected result %+v", i, res)
		}
		if w.Alive() {
			t.Fatalf("frame %d: player revived without reset", i)
		}
	}

	after := w.Snapshot()
	if !reflect.DeepEqual(frozen.Enemies, after.Enemies) {
		t.Error("enemies moved while the player was dead")
	}
	if frozen.Player != after.Player {
		t.Errorf("dead player changed: %+v -> %+v", frozen.Player, after.Player)
	}
}

func TestPressWhileAliveDoesNotReset(t *testing.T) {
	w := newTestWorld(t, emptyParams(), 3)
	res := w.Update(Input{Pressed: true, Bounds: arena})
	if res.Reset {
		t.Error("reset while alive")
	}
	if w.Life() != 1 {
		t.Errorf("Life = %d, want 1", w.Life())
	}
}

func TestResetIsAtomic(t *testing.T) {
	w := newTestWorld(t, DefaultParams(), 4)
	addEnemy(w, components.Position{X: 3, Y: 3})
	w.Update(Input{Bounds: arena})
	before := w.Snapshot()

	res := w.Update(Input{Pointer: components.Position{X: 120, Y: 80}, Pressed: true, Bounds: arena})

	if !res.Reset {
		t.Fatal("expected reset")
	}
	if res.Died {
		t.Error("reset frame should not also report a death")
	}
	if !w.Alive() {
		t.Fatal("player should be alive after reset")
	}
	if w.EnemyCount() != 500 {
		t.Errorf("EnemyCount = %d, want 500 (extra test enemy must be gone)", w.EnemyCount())
	}
	// The reset is the frame's only effect: the pointer was not applied
	if p := w.Player(); p.Position != (components.Position{}) || p.Color != components.White {
		t.Errorf("player after reset = %+v, want fresh default", p)
	}
	if w.Life() != 2 || res.Life != 2 {
		t.Errorf("Life = %d (result %d), want 2", w.Life(), res.Life)
	}
	checkSpawnInvariants(t, w)

	// The earlier snapshot is untouched
	if before.Player.Alive || len(before.Enemies) != 501 {
		t.Errorf("old snapshot mutated: alive=%v enemies=%d", before.Player.Alive, len(before.Enemies))
	}
}

func TestBoundsClampEveryone(t *testing.T) {
	w := newTestWorld(t, DefaultParams(), 5)
	for i := 0; i < 200 && w.Alive(); i++ {
		w.Update(Input{Pointer: components.Position{X: 1000, Y: -1000}, Bounds: arena})
		snap := w.Snapshot()
		snap.Each(func(d Drawable) {
			if !arena.Contains(d.Position) {
				t.Fatalf("frame %d: %+v outside arena", i, d.Position)
			}
		})
	}
	if w.Alive() {
		if p := w.Player().Position; p != (components.Position{X: 256, Y: -256}) {
			t.Errorf("player at %+v, want corner (256,-256)", p)
		}
	}
}

func TestDeathFrameClampsThenFreezes(t *testing.T) {
	tests := []struct {
		name          string
		clampWhenDead bool
		wantX         float32
	}{
		{"literal skips clamp after death", false, 256},
		{"clamp when dead", true, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := emptyParams()
			params.ClampWhenDead = tc.clampWhenDead
			w := newTestWorld(t, params, 6)
			addEnemy(w, components.Position{X: 295, Y: 0})

			// Pointer outside the arena, next to the enemy
			w.Update(Input{Pointer: components.Position{X: 300, Y: 0}, Bounds: arena})
			if w.Alive() {
				t.Fatal("setup: player should die")
			}
			if x := w.Player().Position.X; x != 256 {
				t.Fatalf("death frame should clamp: x = %f, want 256", x)
			}

			// Shrink the arena while dead
			w.Update(Input{Bounds: systems.CenteredRect(100, 100)})
			if x := w.Player().Position.X; x != tc.wantX {
				t.Errorf("after shrink x = %f, want %f", x, tc.wantX)
			}
		})
	}
}

func TestDeterministicTrajectory(t *testing.T) {
	run := func() Snapshot {
		w := newTestWorld(t, DefaultParams(), 99)
		for i := 0; i < 100; i++ {
			pointer := components.Position{X: float32(i) * 2, Y: float32(-i)}
			w.Update(Input{Pointer: pointer, Pressed: i%10 == 0, Bounds: arena})
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different worlds")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	w := newTestWorld(t, DefaultParams(), 7)
	snap := w.Snapshot()
	orig := snap.Enemies[0]
	snap.Enemies[0].Position.X = 9999
	snap.Player.Alive = false

	again := w.Snapshot()
	if again.Enemies[0] != orig {
		t.Error("mutating a snapshot leaked into the world")
	}
	if !again.Player.Alive {
		t.Error("mutating a snapshot killed the player")
	}
}

type phaseRecorder struct {
	phases []string
}

func (r *phaseRecorder) StartPhase(p string) {
	r.phases = append(r.phases, p)
}

func TestTracerPhases(t *testing.T) {
	w := newTestWorld(t, emptyParams(), 8)
	rec := &phaseRecorder{}
	w.SetTracer(rec)

	w.Update(Input{Bounds: arena})
	want := []string{PhaseControls, PhaseMovement, PhaseCollision, PhaseBounds}
	if !reflect.DeepEqual(rec.phases, want) {
		t.Errorf("phases = %v, want %v", rec.phases, want)
	}
}
