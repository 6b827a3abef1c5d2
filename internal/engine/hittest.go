package engine

import (
	"math"
	"sort"
)

const (
	// pickTolerancePx is the picking tolerance in screen pixels. Callers
	// divide by the camera scale so pick precision is resolution
	// independent: the world-space band shrinks as you zoom in.
	pickTolerancePx = 8.0

	// handleRadiusPx is the screen-space disk around each resize anchor.
	handleRadiusPx = 10.0
)

// Pick returns the id of the topmost object within tol (world units) of a
// world point. Objects later in the z-order win.
func (s *Scene) Pick(wx, wy, tol float64) (int, bool) {
	for i := len(s.Objects) - 1; i >= 0; i-- {
		if hitObject(s.Objects[i], wx, wy, tol) {
			return s.Objects[i].ID(), true
		}
	}
	return 0, false
}

func hitObject(o Object, wx, wy, tol float64) bool {
	switch v := o.(type) {
	case *Stroke:
		if len(v.Points) < 2 {
			return false
		}
		p := Point{wx, wy}
		band := v.Width/2 + tol
		for i := 0; i < len(v.Points)-1; i++ {
			if DistPointSegment(p, v.Points[i], v.Points[i+1]) <= band {
				return true
			}
		}
		return false

	case *Line:
		d := DistPointSegment(Point{wx, wy}, Point{v.X1, v.Y1}, Point{v.X2, v.Y2})
		return d <= v.Width/2+tol

	case *Rectangle:
		return Rect{X: v.X, Y: v.Y, Width: v.W, Height: v.H}.Grow(tol).Contains(wx, wy)

	case *Ellipse:
		rx, ry := math.Abs(v.RX), math.Abs(v.RY)
		if rx == 0 || ry == 0 {
			return false
		}
		// Normalized-radius test: distance of the scaled point from the
		// unit circle, mapped back to world units by the smaller radius.
		d := math.Hypot((wx-v.CX)/rx, (wy-v.CY)/ry)
		return math.Abs(d-1)*math.Min(rx, ry) <= v.Width/2+tol

	case *Text:
		return BoundingBox(v).Grow(tol).Contains(wx, wy)
	}
	return false
}

// PickNote returns the topmost note card containing a world point. Cards sit
// on an overlay above the object pipeline, so they are tested first.
func (s *Scene) PickNote(wx, wy float64) (int, bool) {
	cards := make([]*NoteCard, len(s.Notes))
	copy(cards, s.Notes)
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].ZIndex > cards[j].ZIndex })
	for _, n := range cards {
		if NoteBounds(n).Contains(wx, wy) {
			return n.Id, true
		}
	}
	return 0, false
}

// PickHandle tests the eight anchors of a bounding box, projected to screen
// space, against a fixed-radius disk around (sx, sy). Returns the nearest
// matching handle.
func PickHandle(cam *Camera, bounds Rect, sx, sy float64) (HandleID, bool) {
	best := math.MaxFloat64
	var id HandleID
	for _, h := range HandlesForRect(bounds) {
		hx, hy := cam.WorldToScreen(h.Pos.X, h.Pos.Y)
		d := math.Hypot(sx-hx, sy-hy)
		if d <= handleRadiusPx && d < best {
			best = d
			id = h.ID
		}
	}
	return id, id != ""
}

// EraseNear removes every object whose bounding-box centre lies within
// radius of the point, padded by the box half-diagonal. This is a coarse
// proximity erase, not an exact-path erase: a large sparse shape can be
// erased from a click near its centre even when the click is far from any
// drawn edge.
func (s *Scene) EraseNear(wx, wy, radius float64) int {
	kept := s.Objects[:0]
	removed := 0
	for _, o := range s.Objects {
		cx, cy := BoundingBox(o).Center()
		if math.Hypot(wx-cx, wy-cy) <= radius+BoundingBox(o).HalfDiagonal() {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	s.Objects = kept
	return removed
}
