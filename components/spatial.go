package components

// Position represents an entity's world position.
// World space is centered on the origin with y pointing up.
type Position struct {
	X, Y float32
}
