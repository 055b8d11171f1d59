package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/session"
	"github.com/pthm-cable/dodge/systems"
	"github.com/pthm-cable/dodge/world"
)

func newTestHost(t *testing.T, enemies int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(64, 32)

	params := world.DefaultParams()
	params.EnemyCount = enemies
	s := session.New(session.Options{Params: params, Seed: 1})
	return New(screen, s, 512), screen
}

func TestMouseMovesPointer(t *testing.T) {
	h, _ := newTestHost(t, 0)

	// Cell (32,16) covers world x in [0,8) and y in (-16,0]
	if !h.HandleEvent(tcell.NewEventMouse(32, 16, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatal("mouse event should not quit")
	}
	if h.pointer != (components.Position{X: 4, Y: -8}) {
		t.Errorf("pointer = %+v, want (4,-8)", h.pointer)
	}
	if h.pressed {
		t.Error("no button held")
	}

	h.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	if !h.pressed {
		t.Error("left button should press")
	}
}

func TestFrameStepsAndDraws(t *testing.T) {
	h, screen := newTestHost(t, 0)
	h.HandleEvent(tcell.NewEventMouse(32, 16, tcell.ButtonNone, tcell.ModNone))
	h.Frame()

	if h.session.Tick() != 1 {
		t.Fatalf("Tick = %d, want 1", h.session.Tick())
	}
	r, _, _, _ := screen.GetContent(32, 16)
	if r != PlayerGlyph {
		t.Errorf("cell (32,16) = %q, want player glyph", r)
	}
}

func TestPauseStopsStepping(t *testing.T) {
	h, _ := newTestHost(t, 0)
	h.paused = true
	h.Frame()
	if h.session.Tick() != 0 {
		t.Errorf("Tick = %d, want 0 while paused", h.session.Tick())
	}
}

func TestCellMapping(t *testing.T) {
	h, _ := newTestHost(t, 0)

	tests := []struct {
		name     string
		pos      components.Position
		col, row int
		ok       bool
	}{
		{"origin", components.Position{X: 0, Y: 0}, 32, 16, true},
		{"top-left corner", components.Position{X: -256, Y: 256}, 0, 0, true},
		{"bottom-right corner", components.Position{X: 256, Y: -256}, 63, 31, true},
		{"outside", components.Position{X: 400, Y: 0}, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row, ok := h.cell(tc.pos)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && (col != tc.col || row != tc.row) {
				t.Errorf("cell = (%d,%d), want (%d,%d)", col, row, tc.col, tc.row)
			}
		})
	}
}

func TestArenaIsFixedAcrossResize(t *testing.T) {
	h, screen := newTestHost(t, 0)
	want := systems.CenteredRect(512, 512)
	if got := h.camera.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}

	screen.SetSize(128, 40)
	h.HandleEvent(tcell.NewEventResize(128, 40))
	if got := h.camera.Bounds(); got != want {
		t.Errorf("after resize Bounds = %+v, want %+v", got, want)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		quit bool
	}{
		{tcell.KeyEscape, 0, true},
		{tcell.KeyCtrlC, 0, true},
		{tcell.KeyRune, 'q', true},
		{tcell.KeyRune, ' ', false},
		{tcell.KeyEnter, 0, false},
	}
	for _, tc := range tests {
		if got := isQuitKey(tc.key, tc.r); got != tc.quit {
			t.Errorf("isQuitKey(%v, %q) = %v, want %v", tc.key, tc.r, got, tc.quit)
		}
	}
}

func TestDeadPlayerDrawnBlack(t *testing.T) {
	h, screen := newTestHost(t, 0)
	snap := h.session.Snapshot()
	snap.Player.Alive = false
	snap.Player.Color = components.Black
	h.Draw(snap)

	_, _, style, _ := screen.GetContent(32, 16)
	fg, _, _ := style.Decompose()
	if fg != tcellColor(components.Black) {
		t.Errorf("player foreground = %v, want black", fg)
	}
}

func TestPumpStopsWhenRunReturns(t *testing.T) {
	h, screen := newTestHost(t, 0)

	// Nobody reads events, as after Run has returned
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		h.pumpEvents(events, quit)
		close(done)
	}()

	close(quit)
	if err := screen.PostEvent(tcell.NewEventResize(80, 24)); err != nil {
		t.Fatalf("post event: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event pump blocked on an unread channel")
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	h, _ := newTestHost(t, 0)
	h.SetMaxTicks(3)

	done := make(chan struct{})
	go func() {
		h.Run(600)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop at the tick limit")
	}
	if h.session.Tick() != 3 {
		t.Errorf("Tick = %d, want 3", h.session.Tick())
	}
}
