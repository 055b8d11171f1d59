package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/world"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
}

// handleResize checks for window resize and propagates new dimensions.
// The arena is the window, so a resize also moves the clamp bounds.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(w, h)

	arena := float32(g.cfg.Arena.Size)
	if w < arena || h < arena {
		slog.Warn("window smaller than arena, entities outside it will be clamped",
			"width", w, "height", h, "arena", arena)
	}
}

// readInput samples the mouse for the coming frame.
func (g *Game) readInput() world.Input {
	mouse := rl.GetMousePosition()
	return world.Input{
		Pointer: g.camera.PointerToWorld(mouse.X, mouse.Y),
		Pressed: rl.IsMouseButtonDown(rl.MouseLeftButton),
		Bounds:  g.camera.Bounds(),
	}
}
