package components

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"Player", "Enemy"}
}

// RGBA returns the color with the given alpha, for hosts that need four channels.
func (c Color) RGBA(a uint8) (r, g, b, alpha uint8) {
	return c.R, c.G, c.B, a
}
