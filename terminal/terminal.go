// Package terminal hosts the simulation in a terminal using tcell.
package terminal

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dodge/camera"
	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/session"
	"github.com/pthm-cable/dodge/world"
)

// Glyphs drawn for each entity kind.
const (
	PlayerGlyph = '@'
	EnemyGlyph  = '•'
)

// Host drives a session from terminal events and draws it into the screen.
type Host struct {
	screen  tcell.Screen
	session *session.Session
	camera  *camera.Camera

	pointer components.Position
	pressed bool
	paused  bool
	maxTick uint64
}

// Open creates and initializes a screen with mouse reporting.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// New creates a host that shows an arenaSize x arenaSize world stretched over the screen.
func New(screen tcell.Screen, s *session.Session, arenaSize float32) *Host {
	w, h := screen.Size()
	return &Host{
		screen:  screen,
		session: s,
		camera:  camera.NewFitted(float32(w), float32(h), arenaSize, arenaSize),
	}
}

// SetMaxTicks stops Run after n ticks. Zero means unlimited.
func (h *Host) SetMaxTicks(n uint64) {
	h.maxTick = n
}

// HandleEvent applies one terminal event. It returns false when the user quits.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev.Key(), ev.Rune()) {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			h.paused = !h.paused
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		// Aim at the middle of the cell
		h.pointer = h.camera.PointerToWorld(float32(x)+0.5, float32(y)+0.5)
		h.pressed = ev.Buttons()&tcell.Button1 != 0

	case *tcell.EventResize:
		w, hh := h.screen.Size()
		h.camera.Resize(float32(w), float32(hh))
		h.screen.Sync()
	}
	return true
}

func isQuitKey(k tcell.Key, r rune) bool {
	return k == tcell.KeyEscape || k == tcell.KeyCtrlC || (k == tcell.KeyRune && r == 'q')
}

// Frame steps the session once, unless paused, and redraws.
func (h *Host) Frame() {
	if !h.paused {
		h.session.Step(world.Input{
			Pointer: h.pointer,
			Pressed: h.pressed,
			Bounds:  h.camera.Bounds(),
		})
	}
	h.session.RecordFrame()
	h.Draw(h.session.Snapshot())
}

// Draw renders a snapshot.
func (h *Host) Draw(snap world.Snapshot) {
	bg := tcell.StyleDefault.Background(tcellColor(components.DarkSlateGray))
	h.screen.SetStyle(bg)
	h.screen.Clear()

	for _, e := range snap.Enemies {
		h.drawEntity(e, EnemyGlyph, bg)
	}
	h.drawEntity(snap.Player, PlayerGlyph, bg)

	h.drawStatus(snap, bg)
	h.screen.Show()
}

// drawEntity puts one glyph in the cell containing the entity center.
func (h *Host) drawEntity(d world.Drawable, glyph rune, bg tcell.Style) {
	col, row, ok := h.cell(d.Position)
	if !ok {
		return
	}
	h.screen.SetContent(col, row, glyph, nil, bg.Foreground(tcellColor(d.Color)))
}

// cell maps a world position to a screen cell.
func (h *Host) cell(p components.Position) (col, row int, ok bool) {
	sx, sy := h.camera.WorldToScreen(p.X, p.Y)
	col = int(math.Floor(float64(sx)))
	row = int(math.Floor(float64(sy)))

	// Positions on the right or bottom edge land one past the last cell
	w, hh := h.screen.Size()
	if col == w {
		col--
	}
	if row == hh {
		row--
	}
	return col, row, col >= 0 && col < w && row >= 0 && row < hh
}

func (h *Host) drawStatus(snap world.Snapshot, bg tcell.Style) {
	state := "alive"
	if !snap.Player.Alive {
		state = "dead, click to restart"
	}
	if h.paused {
		state = "paused"
	}
	text := fmt.Sprintf(" tick %d  life %d  %s  [q] quit ", snap.Tick, snap.Life, state)

	style := bg.Foreground(tcell.ColorWhite).Bold(true)
	for i, r := range text {
		h.screen.SetContent(i, 0, r, nil, style)
	}
}

// Run processes events and steps at fps until the user quits or the tick limit is hit.
func (h *Host) Run(fps int) {
	if fps < 1 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go h.pumpEvents(eventChan, quit)

	for {
		select {
		case ev := <-eventChan:
			if !h.HandleEvent(ev) {
				return
			}

		case <-ticker.C:
			h.Frame()
			if h.maxTick > 0 && h.session.Tick() >= h.maxTick {
				return
			}
		}
	}
}

// pumpEvents forwards screen events until the screen is finalized or quit closes.
func (h *Host) pumpEvents(events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

func tcellColor(c components.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
