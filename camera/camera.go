// Package camera maps between screen space and world space.
//
// Screen space has its origin at the top-left corner with y growing down.
// World space has its origin at the viewport center with y growing up.
package camera

import (
	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/systems"
)

// Camera controls the viewport into the simulation world.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Screen units per world unit, per axis (1.0 = 1:1)
	ScaleX, ScaleY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World extent to fit, zero when the camera maps 1:1
	fitW, fitH float32
}

// New creates a camera centered on the world origin at 1:1 scale.
// The visible world area follows the viewport size.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		ScaleX:    1,
		ScaleY:    1,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}
}

// NewFitted creates a camera that stretches a worldW x worldH area over the
// whole viewport. Used where the screen unit is not square, such as terminal cells.
func NewFitted(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{fitW: worldW, fitH: worldH}
	c.Resize(viewportW, viewportH)
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.ScaleX
	sy = c.ViewportH/2 - (wy-c.Y)*c.ScaleY
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.ScaleX
	wy = c.Y - (sy-c.ViewportH/2)/c.ScaleY
	return wx, wy
}

// PointerToWorld converts a screen pointer into a world position.
func (c *Camera) PointerToWorld(sx, sy float32) components.Position {
	wx, wy := c.ScreenToWorld(sx, sy)
	return components.Position{X: wx, Y: wy}
}

// Bounds returns the visible world rectangle. It is the arena every entity is clamped to.
func (c *Camera) Bounds() systems.Rect {
	halfW := c.ViewportW / (2 * c.ScaleX)
	halfH := c.ViewportH / (2 * c.ScaleY)
	return systems.Rect{
		Left:   c.X - halfW,
		Right:  c.X + halfW,
		Bottom: c.Y - halfH,
		Top:    c.Y + halfH,
	}
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	b := c.Bounds()
	return wx+radius >= b.Left && wx-radius <= b.Right &&
		wy+radius >= b.Bottom && wy-radius <= b.Top
}

// Resize updates viewport dimensions. A fitted camera rescales to keep its
// world area on screen; a 1:1 camera shows more or less of the world.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if c.fitW > 0 && c.fitH > 0 {
		c.ScaleX = viewportW / c.fitW
		c.ScaleY = viewportH / c.fitH
	}
}
