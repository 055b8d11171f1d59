package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/dodge/components"
	"github.com/pthm-cable/dodge/systems"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(512, 512)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.ScaleX != 1 || cam.ScaleY != 1 {
		t.Errorf("expected 1:1 scale, got (%f, %f)", cam.ScaleX, cam.ScaleY)
	}
}

func TestScreenToWorldAxes(t *testing.T) {
	cam := New(512, 512)

	tests := []struct {
		name   string
		sx, sy float32
		wx, wy float32
	}{
		{"center", 256, 256, 0, 0},
		{"top-left", 0, 0, -256, 256},
		{"bottom-right", 512, 512, 256, -256},
		{"right of center", 300, 256, 44, 0},
		{"below center", 256, 300, 0, -44},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
			if !near(wx, tc.wx) || !near(wy, tc.wy) {
				t.Errorf("ScreenToWorld(%v,%v) = (%v,%v), want (%v,%v)", tc.sx, tc.sy, wx, wy, tc.wx, tc.wy)
			}
		})
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := NewFitted(80, 24, 512, 512)

	testCases := []struct{ sx, sy float32 }{
		{40, 12}, // center
		{0, 0},   // top-left
		{79, 23}, // bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestBounds(t *testing.T) {
	cam := New(512, 512)
	if got, want := cam.Bounds(), systems.CenteredRect(512, 512); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}

	// A 1:1 camera grows the arena with the window
	cam.Resize(800, 600)
	if got, want := cam.Bounds(), systems.CenteredRect(800, 600); got != want {
		t.Errorf("after resize Bounds = %+v, want %+v", got, want)
	}
}

func TestFittedBoundsSurviveResize(t *testing.T) {
	cam := NewFitted(80, 24, 512, 512)
	want := systems.CenteredRect(512, 512)
	if got := cam.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}

	cam.Resize(120, 40)
	if got := cam.Bounds(); got != want {
		t.Errorf("after resize Bounds = %+v, want %+v", got, want)
	}
	if !near(cam.ScaleX, 120.0/512) || !near(cam.ScaleY, 40.0/512) {
		t.Errorf("scale = (%f, %f)", cam.ScaleX, cam.ScaleY)
	}
}

func TestPointerToWorld(t *testing.T) {
	cam := New(512, 512)
	if got := cam.PointerToWorld(259, 253); got != (components.Position{X: 3, Y: 3}) {
		t.Errorf("PointerToWorld = %+v, want (3,3)", got)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(512, 512)

	if !cam.IsVisible(0, 0, 5) {
		t.Error("origin should be visible")
	}
	if !cam.IsVisible(259, 0, 5) {
		t.Error("circle overlapping the right edge should be visible")
	}
	if cam.IsVisible(300, 0, 5) {
		t.Error("circle far outside should not be visible")
	}
}
