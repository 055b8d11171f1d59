package world

import "github.com/pthm-cable/dodge/components"

// Drawable is what a renderer needs to draw one entity.
type Drawable struct {
	Position components.Position
	Radius   float32
	Color    components.Color
	Alive    bool
}

// Snapshot is a point-in-time copy of everything drawable.
// Nothing in it aliases world storage.
type Snapshot struct {
	Player  Drawable
	Enemies []Drawable
	Tick    uint64
	Life    int
}

// Snapshot copies the current world state out for rendering.
func (w *World) Snapshot() Snapshot {
	s := w.state
	snap := Snapshot{
		Player:  s.drawable(s.player),
		Enemies: make([]Drawable, 0, s.enemies),
		Tick:    w.tick,
		Life:    w.life,
	}

	query := s.filter.Query()
	for query.Next() {
		pos, body, look, vit, role := query.Get()
		if role.Kind != components.KindEnemy {
			continue
		}
		snap.Enemies = append(snap.Enemies, Drawable{
			Position: *pos,
			Radius:   body.Radius,
			Color:    look.Color,
			Alive:    vit.Alive,
		})
	}
	return snap
}

// Each calls fn for the player and then every enemy, in snapshot order.
func (s Snapshot) Each(fn func(Drawable)) {
	fn(s.Player)
	for _, e := range s.Enemies {
		fn(e)
	}
}
