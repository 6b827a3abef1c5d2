package engine

import (
	"math"
	"strings"
)

// Rect is an axis-aligned box in world coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Normalized flips negative extents so Width and Height are non-negative.
func (r Rect) Normalized() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains checks inclusive containment on the normalized box.
func (r Rect) Contains(x, y float64) bool {
	n := r.Normalized()
	return x >= n.X && x <= n.X+n.Width && y >= n.Y && y <= n.Y+n.Height
}

// Grow pads the normalized box by d on all sides.
func (r Rect) Grow(d float64) Rect {
	n := r.Normalized()
	return Rect{X: n.X - d, Y: n.Y - d, Width: n.Width + 2*d, Height: n.Height + 2*d}
}

// Center returns the centre point of the box.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// HalfDiagonal is the distance from the centre to a corner.
func (r Rect) HalfDiagonal() float64 {
	return math.Hypot(r.Width/2, r.Height/2)
}

// BoundingBox returns the world-space axis-aligned bounds of an object.
// Strokes extend by half their stroke width on all sides; text boxes come
// from measured line widths and the synthetic line height.
func BoundingBox(o Object) Rect {
	switch v := o.(type) {
	case *Stroke:
		if len(v.Points) == 0 {
			return Rect{}
		}
		minX, minY := v.Points[0].X, v.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range v.Points[1:] {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
		half := v.Width / 2
		return Rect{X: minX - half, Y: minY - half, Width: maxX - minX + v.Width, Height: maxY - minY + v.Width}

	case *Line:
		return Rect{
			X:      math.Min(v.X1, v.X2),
			Y:      math.Min(v.Y1, v.Y2),
			Width:  math.Abs(v.X2 - v.X1),
			Height: math.Abs(v.Y2 - v.Y1),
		}

	case *Rectangle:
		return Rect{X: v.X, Y: v.Y, Width: v.W, Height: v.H}.Normalized()

	case *Ellipse:
		rx, ry := math.Abs(v.RX), math.Abs(v.RY)
		return Rect{X: v.CX - rx, Y: v.CY - ry, Width: 2 * rx, Height: 2 * ry}

	case *Text:
		w, h := MeasureText(v.Content, v.FontSize)
		return Rect{X: v.X, Y: v.Y, Width: w, Height: h}
	}
	return Rect{}
}

// NoteBounds returns a card's world-space box.
func NoteBounds(n *NoteCard) Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.W, Height: n.H}
}

// HandleID names one of the eight resize anchors: corners plus edge
// midpoints of the bounding box.
type HandleID string

const (
	HandleNW HandleID = "nw"
	HandleN  HandleID = "n"
	HandleNE HandleID = "ne"
	HandleE  HandleID = "e"
	HandleSE HandleID = "se"
	HandleS  HandleID = "s"
	HandleSW HandleID = "sw"
	HandleW  HandleID = "w"
)

// Handle is a named resize anchor in world coordinates.
type Handle struct {
	ID  HandleID
	Pos Point
}

// HandlesForRect returns the eight anchors of a bounding box.
func HandlesForRect(r Rect) []Handle {
	n := r.Normalized()
	midX := n.X + n.Width/2
	midY := n.Y + n.Height/2
	return []Handle{
		{HandleNW, Point{n.X, n.Y}},
		{HandleN, Point{midX, n.Y}},
		{HandleNE, Point{n.X + n.Width, n.Y}},
		{HandleE, Point{n.X + n.Width, midY}},
		{HandleSE, Point{n.X + n.Width, n.Y + n.Height}},
		{HandleS, Point{midX, n.Y + n.Height}},
		{HandleSW, Point{n.X, n.Y + n.Height}},
		{HandleW, Point{n.X, midY}},
	}
}

// Handles returns the resize anchors of an object's bounding box.
func Handles(o Object) []Handle {
	return HandlesForRect(BoundingBox(o))
}

// DistPointSegment is the projection-clamped distance from p to segment ab.
// A degenerate segment collapses to point distance.
func DistPointSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = clamp(t, 0, 1)
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

// Move translates every coordinate field of the variant by the same delta.
func Move(o Object, dx, dy float64) {
	switch v := o.(type) {
	case *Stroke:
		for i := range v.Points {
			v.Points[i].X += dx
			v.Points[i].Y += dy
		}
	case *Line:
		v.X1 += dx
		v.Y1 += dy
		v.X2 += dx
		v.Y2 += dy
	case *Rectangle:
		v.X += dx
		v.Y += dy
	case *Ellipse:
		v.CX += dx
		v.CY += dy
	case *Text:
		v.X += dx
		v.Y += dy
	}
}

func hasNorth(h HandleID) bool { return strings.ContainsRune(string(h), 'n') }
func hasSouth(h HandleID) bool { return strings.ContainsRune(string(h), 's') }
func hasEast(h HandleID) bool  { return strings.ContainsRune(string(h), 'e') }
func hasWest(h HandleID) bool  { return strings.ContainsRune(string(h), 'w') }

// Resize applies an anchored, variant-specific resize for a dragged handle:
//   - line: only the endpoint nearest the handle moves;
//   - rectangle: the edge under the handle moves, the opposite edge stays
//     fixed (signed extents, so mirroring through zero is fine);
//   - ellipse: the corresponding radius changes by half the drag delta;
//   - stroke and text: not resizable, no-op.
//
// Deltas are cumulative from the gesture start; callers reapply against a
// snapshot of the pre-drag object to avoid compounding error.
func Resize(o Object, h HandleID, dx, dy float64) {
	switch v := o.(type) {
	case *Line:
		hp := handlePosition(o, h)
		d1 := math.Hypot(hp.X-v.X1, hp.Y-v.Y1)
		d2 := math.Hypot(hp.X-v.X2, hp.Y-v.Y2)
		if d1 <= d2 {
			v.X1 += dx
			v.Y1 += dy
		} else {
			v.X2 += dx
			v.Y2 += dy
		}

	case *Rectangle:
		if hasNorth(h) {
			v.Y += dy
			v.H -= dy
		}
		if hasSouth(h) {
			v.H += dy
		}
		if hasWest(h) {
			v.X += dx
			v.W -= dx
		}
		if hasEast(h) {
			v.W += dx
		}

	case *Ellipse:
		if hasEast(h) {
			v.RX += dx / 2
		}
		if hasWest(h) {
			v.RX -= dx / 2
		}
		if hasSouth(h) {
			v.RY += dy / 2
		}
		if hasNorth(h) {
			v.RY -= dy / 2
		}
		v.RX = math.Max(v.RX, 0)
		v.RY = math.Max(v.RY, 0)
	}
}

func handlePosition(o Object, h HandleID) Point {
	for _, cand := range Handles(o) {
		if cand.ID == h {
			return cand.Pos
		}
	}
	return Point{}
}
