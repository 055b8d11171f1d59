package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/telemetry"
	"github.com/pthm-cable/dodge/ui"
	"github.com/pthm-cable/dodge/world"
)

const controlsText = "[mouse] move  [click] restart when dead  [space] pause  [p] perf  [F11] fullscreen"

// Draw renders the game.
func (g *Game) Draw() {
	g.session.RecordFrame()
	snap := g.session.Snapshot()

	rl.BeginDrawing()
	rl.ClearBackground(rlColor(components.DarkSlateGray))

	// Enemies first so the player is always on top
	for _, e := range snap.Enemies {
		g.drawEntity(e)
	}
	g.drawEntity(snap.Player)

	g.drawUI(snap)

	rl.EndDrawing()
}

// drawEntity renders one drawable as a filled circle.
func (g *Game) drawEntity(d world.Drawable) {
	if !g.camera.IsVisible(d.Position.X, d.Position.Y, d.Radius) {
		return
	}
	sx, sy := g.camera.WorldToScreen(d.Position.X, d.Position.Y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, d.Radius*g.camera.ScaleX, rlColor(d.Color))
}

// drawUI draws the HUD and performance panel.
func (g *Game) drawUI(snap world.Snapshot) {
	perf := g.session.Perf()

	g.hud.Draw(ui.HUDData{
		Tick:    snap.Tick,
		Life:    snap.Life,
		Enemies: len(snap.Enemies),
		Alive:   snap.Player.Alive,
		Paused:  g.paused,
		FPS:     perf.FPS,
	}, int32(g.screenWidth))

	if g.showPerf {
		g.perfPanel.SetPosition(int32(g.screenWidth)-230, 28)
		g.perfPanel.Draw(perf, telemetry.PipelinePhases())
	}

	if g.paused {
		g.hud.DrawControls(int32(g.screenHeight), controlsText)
	}
}

func rlColor(c components.Color) rl.Color {
	r, g, b, a := c.RGBA(255)
	return rl.NewColor(r, g, b, a)
}
