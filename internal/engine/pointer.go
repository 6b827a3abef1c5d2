package engine

import "math"

// gestureState tracks the pointer interaction machine. Exactly one gesture
// is in flight at a time; tool switches and Escape abort it.
type gestureState int

const (
	stateIdle gestureState = iota
	statePanning
	stateDrawing
	stateDragging
	stateResizing
)

// Button identifies which pointer button started an event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PointerEvent is a pointer sample in screen coordinates. PanModifier is set
// when the host's pan chord (space bar, typically) is held.
type PointerEvent struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Button      Button  `json:"button"`
	PanModifier bool    `json:"panModifier"`
}

// zoomStep is the per-100-units wheel zoom factor.
const zoomStep = 1.1

// eraserRadiusFactor scales the brush size into the world-space erase radius.
const eraserRadiusFactor = 2.5

func (e *Engine) wantsPan(ev PointerEvent) bool {
	return ev.PanModifier || ev.Button == ButtonMiddle || ev.Button == ButtonSecondary || e.tool == ToolPan
}

// PointerDown starts a gesture. Pan chords win over every tool; otherwise the
// active tool decides between selection, drawing and erasing.
func (e *Engine) PointerDown(ev PointerEvent) {
	if e.textSession != nil {
		// The host commits the editor buffer before forwarding clicks; a
		// click that still sees an open session abandons it.
		e.CancelTextEdit()
	}
	e.abortGesture()
	e.lastScreen = Point{ev.X, ev.Y}

	if e.wantsPan(ev) {
		e.state = statePanning
		return
	}

	wx, wy := e.camera.ScreenToWorld(ev.X, ev.Y)

	switch e.tool {
	case ToolSelect:
		e.beginSelectGesture(ev, wx, wy)

	case ToolPen, ToolHighlighter:
		s := &Stroke{
			Points:  []Point{{wx, wy}},
			Color:   e.activeColor,
			Width:   e.brushSize,
			Opacity: 1,
		}
		if e.tool == ToolHighlighter {
			s.Opacity = 0.4
			s.Width = e.brushSize * 2
		}
		e.activeStroke = s
		e.state = stateDrawing
		e.markDirty()

	case ToolEraser:
		e.state = stateDrawing
		if e.scene.EraseNear(wx, wy, e.eraserRadius()) > 0 {
			e.erased = true
			e.markDirty()
		}

	case ToolLine, ToolRect, ToolEllipse:
		e.anchor = Point{wx, wy}
		e.previewShape = e.makeShape(e.anchor, e.anchor)
		e.state = stateDrawing
		e.markDirty()

	case ToolText:
		// Single click is a no-op; DoubleClick opens the editor.
	}
}

func (e *Engine) beginSelectGesture(ev PointerEvent, wx, wy float64) {
	// A selected entity's handles sit above everything else.
	if e.selection != nil {
		if bounds, ok := e.selectionBounds(); ok {
			if h, ok := PickHandle(&e.camera, bounds, ev.X, ev.Y); ok {
				e.state = stateResizing
				e.resizeHandle = h
				e.resizeStart = Point{wx, wy}
				e.captureGestureBase()
				return
			}
		}
	}

	// Note cards overlay the drawable pipeline, so they are hit first.
	if id, ok := e.scene.PickNote(wx, wy); ok {
		e.selection = &Selection{ID: id, IsNote: true}
		n, _ := e.scene.NoteByID(id)
		e.dragOffset = Point{wx - n.X, wy - n.Y}
		e.state = stateDragging
		e.captureGestureBase()
		e.markDirty()
		return
	}

	if id, ok := e.scene.Pick(wx, wy, pickTolerancePx/e.camera.Scale); ok {
		e.selection = &Selection{ID: id, IsNote: false}
		o, _ := e.scene.ObjectByID(id)
		b := BoundingBox(o)
		e.dragOffset = Point{wx - b.X, wy - b.Y}
		e.state = stateDragging
		e.captureGestureBase()
		e.markDirty()
		return
	}

	if e.selection != nil {
		e.selection = nil
		e.markDirty()
	}
}

func (e *Engine) selectionBounds() (Rect, bool) {
	if e.selection == nil {
		return Rect{}, false
	}
	if e.selection.IsNote {
		if n, ok := e.scene.NoteByID(e.selection.ID); ok {
			return NoteBounds(n), true
		}
		return Rect{}, false
	}
	if o, ok := e.scene.ObjectByID(e.selection.ID); ok {
		return BoundingBox(o), true
	}
	return Rect{}, false
}

// captureGestureBase snapshots the selected entity so drags and resizes can
// be reapplied from fixed origins (and aborted cleanly).
func (e *Engine) captureGestureBase() {
	e.gestureBase = nil
	e.gestureNote = nil
	if e.selection == nil {
		return
	}
	if e.selection.IsNote {
		if n, ok := e.scene.NoteByID(e.selection.ID); ok {
			e.gestureNote = n.Clone()
		}
		return
	}
	if o, ok := e.scene.ObjectByID(e.selection.ID); ok {
		e.gestureBase = o.Clone()
	}
}

// PointerMove advances the in-flight gesture. Outside a gesture it is a no-op.
func (e *Engine) PointerMove(ev PointerEvent) {
	defer func() { e.lastScreen = Point{ev.X, ev.Y} }()

	switch e.state {
	case statePanning:
		e.camera.Pan(ev.X-e.lastScreen.X, ev.Y-e.lastScreen.Y)
		e.markDirty()

	case stateDrawing:
		wx, wy := e.camera.ScreenToWorld(ev.X, ev.Y)
		switch {
		case e.activeStroke != nil:
			e.activeStroke.Points = append(e.activeStroke.Points, Point{wx, wy})
			e.markDirty()
		case e.previewShape != nil:
			e.previewShape = e.makeShape(e.anchor, Point{wx, wy})
			e.markDirty()
		case e.tool == ToolEraser:
			if e.scene.EraseNear(wx, wy, e.eraserRadius()) > 0 {
				e.erased = true
				e.markDirty()
			}
		}

	case stateDragging:
		wx, wy := e.camera.ScreenToWorld(ev.X, ev.Y)
		e.applyDrag(wx, wy)

	case stateResizing:
		wx, wy := e.camera.ScreenToWorld(ev.X, ev.Y)
		e.applyResize(wx-e.resizeStart.X, wy-e.resizeStart.Y)
	}
}

// applyDrag repositions the selected entity so the grab point stays under
// the pointer. The origin is re-derived from the pointer each move rather
// than accumulated, so fast moves never drift.
func (e *Engine) applyDrag(wx, wy float64) {
	if e.selection == nil {
		return
	}
	if e.selection.IsNote {
		n, ok := e.scene.NoteByID(e.selection.ID)
		if !ok {
			return
		}
		nx, ny := wx-e.dragOffset.X, wy-e.dragOffset.Y
		if nx != n.X || ny != n.Y {
			n.X, n.Y = nx, ny
			e.moved = true
			e.markDirty()
		}
		return
	}
	o, ok := e.scene.ObjectByID(e.selection.ID)
	if !ok {
		return
	}
	b := BoundingBox(o)
	dx := (wx - e.dragOffset.X) - b.X
	dy := (wy - e.dragOffset.Y) - b.Y
	if dx != 0 || dy != 0 {
		Move(o, dx, dy)
		e.moved = true
		e.markDirty()
	}
}

// applyResize restores the pre-drag snapshot and applies the cumulative
// delta, so each move computes from the same base.
func (e *Engine) applyResize(dx, dy float64) {
	if e.selection == nil {
		return
	}
	if dx != 0 || dy != 0 {
		e.moved = true
	}
	if e.selection.IsNote {
		if e.gestureNote == nil {
			return
		}
		n, ok := e.scene.NoteByID(e.selection.ID)
		if !ok {
			return
		}
		resizeNote(n, e.gestureNote, e.resizeHandle, dx, dy)
		e.markDirty()
		return
	}
	if e.gestureBase == nil {
		return
	}
	o, ok := e.scene.ObjectByID(e.selection.ID)
	if !ok {
		return
	}
	base := e.gestureBase.Clone()
	Resize(base, e.resizeHandle, dx, dy)
	e.scene.replaceObject(o.ID(), base)
	e.markDirty()
}

// resizeNote applies rectangle-style edge resizing from the gesture base,
// clamped to the minimum card size.
func resizeNote(n, base *NoteCard, h HandleID, dx, dy float64) {
	n.X, n.Y, n.W, n.H = base.X, base.Y, base.W, base.H
	if hasNorth(h) {
		n.Y += dy
		n.H -= dy
	}
	if hasSouth(h) {
		n.H += dy
	}
	if hasWest(h) {
		n.X += dx
		n.W -= dx
	}
	if hasEast(h) {
		n.W += dx
	}
	if n.W < minNoteW {
		if hasWest(h) {
			n.X -= minNoteW - n.W
		}
		n.W = minNoteW
	}
	if n.H < minNoteH {
		if hasNorth(h) {
			n.Y -= minNoteH - n.H
		}
		n.H = minNoteH
	}
}

// PointerUp ends the gesture, committing drawn content and recording undo
// points for mutations.
func (e *Engine) PointerUp(ev PointerEvent) {
	state := e.state
	e.state = stateIdle

	switch state {
	case stateDrawing:
		switch {
		case e.activeStroke != nil:
			if len(e.activeStroke.Points) >= 2 {
				e.scene.AddObject(e.activeStroke)
				e.pushHistory()
			}
			e.activeStroke = nil
			e.markDirty()

		case e.previewShape != nil:
			shape := e.previewShape
			e.previewShape = nil
			if shapeHasArea(shape) {
				id := e.scene.AddObject(shape)
				e.selection = &Selection{ID: id, IsNote: false}
				e.tool = ToolSelect
				e.pushHistory()
			}
			e.markDirty()

		default: // eraser
			if e.erased {
				e.pushHistory()
			}
			e.erased = false
		}

	case stateDragging, stateResizing:
		if e.moved {
			e.pushHistory()
		}
	}

	e.moved = false
	e.gestureBase = nil
	e.gestureNote = nil
	e.resizeHandle = ""
}

// PointerLeave treats the surface exit as a release at the last position, so
// no gesture is left dangling.
func (e *Engine) PointerLeave() {
	if e.state == stateIdle {
		return
	}
	e.PointerUp(PointerEvent{X: e.lastScreen.X, Y: e.lastScreen.Y})
}

// Wheel zooms toward the cursor: 100 wheel units scale by one zoomStep.
func (e *Engine) Wheel(deltaY, sx, sy float64) {
	e.camera.ZoomAt(math.Pow(zoomStep, -deltaY/100), sx, sy)
	e.markDirty()
}

// PinchStart begins a two-finger zoom gesture, overriding the active tool.
func (e *Engine) PinchStart(x1, y1, x2, y2 float64) {
	e.abortGesture()
	e.pinchActive = true
	e.pinchDist = math.Hypot(x2-x1, y2-y1)
	e.lastScreen = Point{(x1 + x2) / 2, (y1 + y2) / 2}
}

// PinchMove zooms by the distance ratio at the midpoint and pans with it.
func (e *Engine) PinchMove(x1, y1, x2, y2 float64) {
	if !e.pinchActive {
		return
	}
	dist := math.Hypot(x2-x1, y2-y1)
	mid := Point{(x1 + x2) / 2, (y1 + y2) / 2}
	if e.pinchDist > 0 {
		e.camera.ZoomAt(dist/e.pinchDist, mid.X, mid.Y)
	}
	e.camera.Pan(mid.X-e.lastScreen.X, mid.Y-e.lastScreen.Y)
	e.pinchDist = dist
	e.lastScreen = mid
	e.markDirty()
}

func (e *Engine) PinchEnd() {
	e.pinchActive = false
	e.pinchDist = 0
}

// DoubleClick opens a text-edit session: on an existing text object with any
// tool, or at the clicked point with the text tool.
func (e *Engine) DoubleClick(ev PointerEvent) {
	wx, wy := e.camera.ScreenToWorld(ev.X, ev.Y)
	e.BeginTextEdit(wx, wy)
}

// abortGesture discards any in-flight gesture and restores the pre-gesture
// entity state. Committed objects are untouched.
func (e *Engine) abortGesture() {
	if e.state == stateIdle && e.activeStroke == nil && e.previewShape == nil {
		return
	}

	if e.selection != nil && (e.state == stateDragging || e.state == stateResizing) {
		if e.selection.IsNote {
			if e.gestureNote != nil {
				if n, ok := e.scene.NoteByID(e.selection.ID); ok {
					*n = *e.gestureNote
				}
			}
		} else if e.gestureBase != nil {
			e.scene.replaceObject(e.selection.ID, e.gestureBase.Clone())
		}
	}

	e.state = stateIdle
	e.activeStroke = nil
	e.previewShape = nil
	e.gestureBase = nil
	e.gestureNote = nil
	e.resizeHandle = ""
	e.moved = false
	e.erased = false
	e.markDirty()
}

func (e *Engine) eraserRadius() float64 {
	return e.brushSize * eraserRadiusFactor / e.camera.Scale
}

// makeShape builds the preview object for the shape tools from the gesture
// anchor to the current point.
func (e *Engine) makeShape(a, b Point) Object {
	switch e.tool {
	case ToolLine:
		return &Line{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y, Color: e.activeColor, Width: e.brushSize}
	case ToolRect:
		return &Rectangle{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y, Color: e.activeColor, Width: e.brushSize}
	case ToolEllipse:
		return &Ellipse{
			CX:    (a.X + b.X) / 2,
			CY:    (a.Y + b.Y) / 2,
			RX:    math.Abs(b.X-a.X) / 2,
			RY:    math.Abs(b.Y-a.Y) / 2,
			Color: e.activeColor,
			Width: e.brushSize,
		}
	}
	return nil
}

// shapeHasArea rejects degenerate shapes from a click without a drag.
func shapeHasArea(o Object) bool {
	switch v := o.(type) {
	case *Line:
		return math.Hypot(v.X2-v.X1, v.Y2-v.Y1) > 0
	case *Rectangle:
		return v.W != 0 && v.H != 0
	case *Ellipse:
		return v.RX > 0 && v.RY > 0
	}
	return false
}
