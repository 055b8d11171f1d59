package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dodge/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick    uint64
	Life    int
	Enemies int
	Alive   bool
	Paused  bool
	FPS     float64
}

// StatusLine summarizes the frame in one line.
func (d HUDData) StatusLine() string {
	state := "alive"
	if !d.Alive {
		state = "dead - click to restart"
	}
	if d.Paused {
		state = "paused"
	}
	return fmt.Sprintf("Tick: %d  Life: %d  Enemies: %d  %s", d.Tick, d.Life, d.Enemies, state)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the status label and frame rate.
func (h *HUD) Draw(data HUDData, screenWidth int32) {
	gui.Label(rl.Rectangle{X: 8, Y: 4, Width: float32(screenWidth) - 80, Height: 20}, data.StatusLine())

	if data.FPS > 0 {
		rl.DrawText(fmt.Sprintf("%.0f fps", data.FPS), screenWidth-60, 8, h.renderer.Theme.FontSize, rl.LightGray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 8, screenHeight-18, h.renderer.Theme.FontSize, rl.Gray)
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel for the given phases, in order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	r := p.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*int32(len(phases)+3)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Tick Performance")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "ticks/s", fmt.Sprintf("%.0f", stats.TicksPerSecond))

	for _, phase := range phases {
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase], p.width-pad*2)
	}
}
