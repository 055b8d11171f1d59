package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dodge/components"
)

// Circle is the collision shape of an entity.
type Circle struct {
	X, Y   float32
	Radius float32
}

// Overlaps reports whether two circles are closer than their combined radius
// on both axes independently. This is a bounding-box proximity test: it is
// more permissive than exact circle overlap near the diagonals.
func Overlaps(a, b Circle) bool {
	reach := a.Radius + b.Radius
	return absf(a.X-b.X) < reach && absf(a.Y-b.Y) < reach
}

// OverlapsCircle reports exact circle-circle overlap.
func OverlapsCircle(a, b Circle) bool {
	reach := a.Radius + b.Radius
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx+dy*dy < reach*reach
}

// CollisionTest selects the overlap predicate.
type CollisionTest uint8

const (
	CollisionBox CollisionTest = iota
	CollisionCircle
)

// ParseCollisionTest maps a config mode name to a CollisionTest.
func ParseCollisionTest(mode string) (CollisionTest, error) {
	switch mode {
	case "box", "":
		return CollisionBox, nil
	case "circle":
		return CollisionCircle, nil
	}
	return CollisionBox, fmt.Errorf("unknown collision mode %q", mode)
}

// Func returns the predicate for the test.
func (c CollisionTest) Func() func(a, b Circle) bool {
	if c == CollisionCircle {
		return OverlapsCircle
	}
	return Overlaps
}

func (c CollisionTest) String() string {
	if c == CollisionCircle {
		return "circle"
	}
	return "box"
}

// CircleOf builds the collision shape of a positioned body.
func CircleOf(pos components.Position, body components.Body) Circle {
	return Circle{X: pos.X, Y: pos.Y, Radius: body.Radius}
}

// CollisionSystem kills the player when any enemy overlaps it.
type CollisionSystem struct {
	filter  ecs.Filter3[components.Position, components.Body, components.Role]
	posMap  *ecs.Map1[components.Position]
	bodyMap *ecs.Map1[components.Body]
	lookMap *ecs.Map1[components.Appearance]
	vitMap  *ecs.Map1[components.Vitals]
	overlap func(a, b Circle) bool
}

// NewCollisionSystem creates a collision system using the given test.
func NewCollisionSystem(w *ecs.World, test CollisionTest) *CollisionSystem {
	return &CollisionSystem{
		filter:  *ecs.NewFilter3[components.Position, components.Body, components.Role](w),
		posMap:  ecs.NewMap1[components.Position](w),
		bodyMap: ecs.NewMap1[components.Body](w),
		lookMap: ecs.NewMap1[components.Appearance](w),
		vitMap:  ecs.NewMap1[components.Vitals](w),
		overlap: test.Func(),
	}
}

// Update tests every enemy against the player. On any overlap the player
// turns black and dies. Every enemy is visited; the effect is idempotent.
// Returns true if a collision was found this call.
func (s *CollisionSystem) Update(player ecs.Entity) bool {
	target := CircleOf(*s.posMap.Get(player), *s.bodyMap.Get(player))

	hit := false
	query := s.filter.Query()
	for query.Next() {
		pos, body, role := query.Get()
		if role.Kind != components.KindEnemy {
			continue
		}
		if s.overlap(target, CircleOf(*pos, *body)) {
			hit = true
		}
	}

	if hit {
		s.lookMap.Get(player).Color = components.Black
		s.vitMap.Get(player).Alive = false
	}
	return hit
}
