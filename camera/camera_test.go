package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	// Should look at the garden centre
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)

	// Garden centre should map to screen center
	sx, sy := cam.WorldToScreen(0, 0)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.SetLimit(300)
	cam.Pan(40, -25)
	cam.SetZoom(1.7)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToWorldScalesWithZoom(t *testing.T) {
	cam := New(800, 600)
	cam.SetZoom(2)

	wx, wy := cam.ScreenToWorld(500, 300)
	if wx != 50 || wy != 0 {
		t.Errorf("expected (50, 0), got (%f, %f)", wx, wy)
	}
}

func TestPanIsClamped(t *testing.T) {
	cam := New(1280, 720)
	cam.SetLimit(100)

	cam.Pan(-500, 30)
	if cam.X != -100 {
		t.Errorf("expected X clamped to -100, got %f", cam.X)
	}
	if cam.Y != 30 {
		t.Errorf("expected Y 30, got %f", cam.Y)
	}

	cam.SetLimit(10)
	if cam.Y != 10 || cam.X != -10 {
		t.Errorf("expected position clamped to new limit, got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 0.5 {
		t.Errorf("expected zoom clamped to 0.5, got %f", cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 6.0 {
		t.Errorf("expected zoom clamped to 6.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	// Visible range in world coords: (-640, -360) to (640, 360)
	if !cam.IsVisible(0, 0, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(900, 500, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(-700, 0, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.SetLimit(500)
	cam.Pan(200, 200)
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	cam := New(800, 600)
	cam.SetLimit(1000)

	before, _ := cam.ScreenToWorld(700, 300)
	cam.ZoomAt(700, 300, 2)
	after, _ := cam.ScreenToWorld(700, 300)

	if cam.Zoom != 2 {
		t.Fatalf("expected zoom 2, got %f", cam.Zoom)
	}
	if math.Abs(float64(after-before)) > 0.01 {
		t.Errorf("point under cursor moved from %f to %f", before, after)
	}
}

func TestZoomAtRespectsLimit(t *testing.T) {
	cam := New(800, 600)
	cam.SetLimit(0)

	cam.ZoomAt(800, 600, 3)
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera pinned at centre, got (%f, %f)", cam.X, cam.Y)
	}
}
