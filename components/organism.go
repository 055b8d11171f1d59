package components

// Vitals tracks whether an entity is alive.
// Only the player ever dies; enemies carry the field for layout symmetry.
type Vitals struct {
	Alive bool
}

// Role tags an entity as player or enemy.
type Role struct {
	Kind Kind
}
