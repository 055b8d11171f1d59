// Package systems contains ECS systems for the simulation.
package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dodge/components"
)

// Rect is an axis-aligned arena rectangle in world space (y up).
type Rect struct {
	Left, Right, Bottom, Top float32
}

// CenteredRect returns a w×h rectangle centered on the origin.
func CenteredRect(w, h float32) Rect {
	return Rect{Left: -w / 2, Right: w / 2, Bottom: -h / 2, Top: h / 2}
}

// Clamp pulls a position inside the rectangle, each axis independently.
func (r Rect) Clamp(p components.Position) components.Position {
	return components.Position{
		X: clampFloat(p.X, r.Left, r.Right),
		Y: clampFloat(p.Y, r.Bottom, r.Top),
	}
}

// Contains reports whether p lies inside the rectangle, edges included.
func (r Rect) Contains(p components.Position) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Bottom && p.Y <= r.Top
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Top - r.Bottom }

// RandomWalk reassigns each axis to a uniform value within ±step of its
// current value. There is no velocity; the walk is memoryless.
func RandomWalk(rng *rand.Rand, p components.Position, step float32) components.Position {
	return components.Position{
		X: randRange(rng, p.X-step, p.X+step),
		Y: randRange(rng, p.Y-step, p.Y+step),
	}
}

// WanderSystem moves every enemy one random-walk step.
type WanderSystem struct {
	filter ecs.Filter2[components.Position, components.Role]
	step   float32
}

// NewWanderSystem creates a wander system with the given per-axis step.
func NewWanderSystem(w *ecs.World, step float32) *WanderSystem {
	return &WanderSystem{
		filter: *ecs.NewFilter2[components.Position, components.Role](w),
		step:   step,
	}
}

// Update runs the wander system.
func (s *WanderSystem) Update(rng *rand.Rand) {
	query := s.filter.Query()
	for query.Next() {
		pos, role := query.Get()
		if role.Kind != components.KindEnemy {
			continue
		}
		*pos = RandomWalk(rng, *pos, s.step)
	}
}

// BoundsSystem clamps every entity into the arena rectangle.
type BoundsSystem struct {
	filter ecs.Filter1[components.Position]
}

// NewBoundsSystem creates a bounds system.
func NewBoundsSystem(w *ecs.World) *BoundsSystem {
	return &BoundsSystem{
		filter: *ecs.NewFilter1[components.Position](w),
	}
}

// Update runs the bounds system.
func (s *BoundsSystem) Update(bounds Rect) {
	query := s.filter.Query()
	for query.Next() {
		pos := query.Get()
		*pos = bounds.Clamp(*pos)
	}
}
