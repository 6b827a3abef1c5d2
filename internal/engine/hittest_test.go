package engine

import "testing"

func sceneWith(objects ...Object) *Scene {
	s := NewScene()
	for _, o := range objects {
		s.AddObject(o)
	}
	return s
}

func TestPickTopmostWins(t *testing.T) {
	s := sceneWith(
		&Rectangle{X: 0, Y: 0, W: 100, H: 100, Width: 2},
		&Rectangle{X: 0, Y: 0, W: 100, H: 100, Width: 2},
	)

	id, ok := s.Pick(50, 50, 8)
	if !ok {
		t.Fatal("no hit")
	}
	if id != s.Objects[1].ID() {
		t.Errorf("picked %d, want topmost %d", id, s.Objects[1].ID())
	}
}

func TestPickMissReturnsFalse(t *testing.T) {
	s := sceneWith(&Rectangle{X: 0, Y: 0, W: 10, H: 10, Width: 2})
	if id, ok := s.Pick(500, 500, 8); ok {
		t.Errorf("unexpected hit %d", id)
	}
}

// A fixed screen tolerance means the world-space pick band shrinks as the
// camera zooms in: a 5-unit offset from a hairline stroke is inside the band
// at scale 1 but outside it at scale 4.
func TestPickBandShrinksWithZoom(t *testing.T) {
	s := sceneWith(&Stroke{Points: []Point{{0, 0}, {100, 0}}, Width: 2})

	tolAt := func(scale float64) float64 { return pickTolerancePx / scale }

	if _, ok := s.Pick(50, 5, tolAt(1)); !ok {
		t.Error("expected hit at scale 1 (band 8+1 world units)")
	}
	if _, ok := s.Pick(50, 5, tolAt(4)); ok {
		t.Error("expected miss at scale 4 (band 2+1 world units)")
	}
}

func TestPickStrokeNeedsSegmentProximity(t *testing.T) {
	// An L-shaped stroke: its bounding box centre is far from every segment.
	s := sceneWith(&Stroke{Points: []Point{{0, 0}, {100, 0}, {100, 100}}, Width: 2})

	if _, ok := s.Pick(30, 60, 8); ok {
		t.Error("point inside bbox but far from path should miss")
	}
	if _, ok := s.Pick(100, 60, 8); !ok {
		t.Error("point on the vertical segment should hit")
	}
}

func TestPickEllipseRingOnly(t *testing.T) {
	s := sceneWith(&Ellipse{CX: 0, CY: 0, RX: 50, RY: 50, Width: 2})

	if _, ok := s.Pick(0, 0, 8); ok {
		t.Error("ellipse centre should miss; only the ring is hittable")
	}
	if _, ok := s.Pick(50, 0, 8); !ok {
		t.Error("point on the ring should hit")
	}
}

func TestPickRectangleInteriorHits(t *testing.T) {
	s := sceneWith(&Rectangle{X: 0, Y: 0, W: 100, H: 50, Width: 2})
	if _, ok := s.Pick(50, 25, 8); !ok {
		t.Error("rectangle interior should hit")
	}
}

func TestPickNoteHighestZWins(t *testing.T) {
	s := NewScene()
	a := &NoteCard{X: 0, Y: 0, W: 100, H: 100}
	b := &NoteCard{X: 50, Y: 50, W: 100, H: 100}
	s.AddNote(a)
	s.AddNote(b)

	id, ok := s.PickNote(75, 75)
	if !ok || id != b.Id {
		t.Errorf("picked %d, want later card %d", id, b.Id)
	}
}

func TestPickHandleDiskAndNearest(t *testing.T) {
	cam := NewCamera()
	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	if h, ok := PickHandle(&cam, bounds, 103, 104); !ok || h != HandleSE {
		t.Errorf("got (%q, %v), want se handle", h, ok)
	}
	if _, ok := PickHandle(&cam, bounds, 130, 130); ok {
		t.Error("point outside every handle disk should miss")
	}
}

func TestPickHandleUsesScreenSpace(t *testing.T) {
	cam := Camera{Scale: 10, PanX: 0, PanY: 0}
	bounds := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	// The se corner projects to (100, 100); the disk stays 10px regardless
	// of zoom.
	if h, ok := PickHandle(&cam, bounds, 106, 100); !ok || h != HandleSE {
		t.Errorf("got (%q, %v), want se handle at screen distance 6", h, ok)
	}
}

func TestEraseNearRemovesByCenterProximity(t *testing.T) {
	s := sceneWith(
		&Rectangle{X: 0, Y: 0, W: 10, H: 10, Width: 2},
		&Rectangle{X: 500, Y: 500, W: 10, H: 10, Width: 2},
	)

	removed := s.EraseNear(5, 5, 10)
	if removed != 1 {
		t.Fatalf("removed %d, want 1", removed)
	}
	if len(s.Objects) != 1 || s.Objects[0].ID() != 2 {
		t.Errorf("wrong survivor: %v", s.Objects)
	}
}
