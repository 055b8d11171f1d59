package session

import (
	"math"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/systems"
	"github.com/pthm-cable/dodge/world"
)

// Autopilot scripts input for runs without a human.
// The pointer traces a Lissajous curve over the arena and the button is
// held whenever the player is dead, so every death is followed by a reset.
type Autopilot struct {
	FreqX, FreqY float64 // Radians per tick
	Reach        float64 // Fraction of the arena half extent covered
	t            uint64
}

// NewAutopilot returns an autopilot with a slow, non-repeating-looking path.
func NewAutopilot() *Autopilot {
	return &Autopilot{FreqX: 0.013, FreqY: 0.017, Reach: 0.9}
}

// Next produces the input for the coming frame.
func (a *Autopilot) Next(alive bool, bounds systems.Rect) world.Input {
	a.t++
	t := float64(a.t)

	cx := float64(bounds.Left+bounds.Right) / 2
	cy := float64(bounds.Bottom+bounds.Top) / 2
	hx := float64(bounds.Width()) / 2 * a.Reach
	hy := float64(bounds.Height()) / 2 * a.Reach

	return world.Input{
		Pointer: components.Position{
			X: float32(cx + hx*math.Sin(a.FreqX*t)),
			Y: float32(cy + hy*math.Sin(a.FreqY*t+math.Pi/2)),
		},
		Pressed: !alive,
		Bounds:  bounds,
	}
}

// Run steps the session n times under autopilot.
func (a *Autopilot) Run(s *Session, bounds systems.Rect, n int) {
	for i := 0; i < n; i++ {
		s.Step(a.Next(s.World().Alive(), bounds))
	}
}
