package components

// Body holds physical properties of an entity.
// Radius is fixed at construction.
type Body struct {
	Radius float32
}
