// Package components defines ECS components for the simulation.
package components

// Kind distinguishes the two entity roles sharing one component layout.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
)

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// Palette used by the simulation and its hosts.
var (
	White         = Color{R: 255, G: 255, B: 255}
	Red           = Color{R: 255, G: 0, B: 0}
	Black         = Color{R: 0, G: 0, B: 0}
	DarkSlateGray = Color{R: 47, G: 79, B: 79} // background fill
)

// Appearance holds the draw color of an entity.
// Players start white and turn black once, on death.
type Appearance struct {
	Color Color
}

// Entity is the value form of one player or enemy, used for construction
// and for copying state out of the ECS world.
type Entity struct {
	Position Position
	Body     Body
	Look     Appearance
	Vitals   Vitals
	Role     Role
}

// DefaultPlayer returns a live white player at the origin.
func DefaultPlayer(radius float32) Entity {
	return Entity{
		Position: Position{X: 0, Y: 0},
		Body:     Body{Radius: radius},
		Look:     Appearance{Color: White},
		Vitals:   Vitals{Alive: true},
		Role:     Role{Kind: KindPlayer},
	}
}

// DefaultEnemy returns a live red enemy at the origin.
// Callers are expected to override the position.
func DefaultEnemy(radius float32) Entity {
	return Entity{
		Position: Position{X: 0, Y: 0},
		Body:     Body{Radius: radius},
		Look:     Appearance{Color: Red},
		Vitals:   Vitals{Alive: true},
		Role:     Role{Kind: KindEnemy},
	}
}
