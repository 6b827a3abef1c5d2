package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScreenWorldRoundTrip(t *testing.T) {
	cam := Camera{PanX: 120, PanY: -40, Scale: 2.5}

	wx, wy := cam.ScreenToWorld(300, 200)
	sx, sy := cam.WorldToScreen(wx, wy)

	if !almostEqual(sx, 300) || !almostEqual(sy, 200) {
		t.Errorf("round trip gave (%v, %v), want (300, 200)", sx, sy)
	}
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	cam := Camera{PanX: 50, PanY: 80, Scale: 1.5}
	const cx, cy = 400.0, 300.0

	beforeX, beforeY := cam.ScreenToWorld(cx, cy)
	cam.ZoomAt(1.7, cx, cy)
	afterX, afterY := cam.ScreenToWorld(cx, cy)

	if !almostEqual(beforeX, afterX) || !almostEqual(beforeY, afterY) {
		t.Errorf("world point under cursor moved from (%v, %v) to (%v, %v)",
			beforeX, beforeY, afterX, afterY)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := NewCamera()
	cam.ZoomAt(1e6, 0, 0)
	if cam.Scale != maxScale {
		t.Errorf("scale = %v, want clamped to %v", cam.Scale, maxScale)
	}

	cam.ZoomAt(1e-9, 0, 0)
	if cam.Scale != minScale {
		t.Errorf("scale = %v, want clamped to %v", cam.Scale, minScale)
	}
}

func TestZoomAtClampedStillAnchorsCursor(t *testing.T) {
	cam := Camera{PanX: 10, PanY: 20, Scale: 15}
	beforeX, beforeY := cam.ScreenToWorld(100, 100)

	// Requested factor overshoots the max; the effective ratio must be the
	// clamped one or the anchor drifts.
	cam.ZoomAt(10, 100, 100)
	afterX, afterY := cam.ScreenToWorld(100, 100)

	if cam.Scale != maxScale {
		t.Fatalf("scale = %v, want %v", cam.Scale, maxScale)
	}
	if !almostEqual(beforeX, afterX) || !almostEqual(beforeY, afterY) {
		t.Errorf("anchor drifted to (%v, %v) from (%v, %v)", afterX, afterY, beforeX, beforeY)
	}
}

func TestPanAndReset(t *testing.T) {
	cam := NewCamera()
	cam.Pan(30, -10)
	if cam.PanX != 30 || cam.PanY != -10 {
		t.Errorf("pan = (%v, %v), want (30, -10)", cam.PanX, cam.PanY)
	}

	cam.Reset()
	if cam.PanX != 0 || cam.PanY != 0 || cam.Scale != 1 {
		t.Errorf("reset camera = %+v, want identity", cam)
	}
}

func TestMatrix(t *testing.T) {
	cam := Camera{PanX: 5, PanY: 7, Scale: 2}
	m := cam.Matrix()
	want := []float64{2, 0, 0, 2, 5, 7}
	for i := range want {
		if m[i] != want[i] {
			t.Fatalf("matrix = %v, want %v", m, want)
		}
	}
}
