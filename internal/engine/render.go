package engine

import "encoding/json"

// DrawCommand is one backend-agnostic paint instruction. World-space
// commands are drawn under the frame transform; the selection overlay and
// its handles carry screen coordinates and are drawn untransformed.
type DrawCommand struct {
	Op string `json:"op"`

	ID      int     `json:"id,omitempty"`
	Points  []Point `json:"points,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
	X2      float64 `json:"x2,omitempty"`
	Y2      float64 `json:"y2,omitempty"`
	RX      float64 `json:"rx,omitempty"`
	RY      float64 `json:"ry,omitempty"`
	Color   string  `json:"color,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`

	Text       string  `json:"text,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	ColorIndex int     `json:"colorIndex,omitempty"`

	Handle  string `json:"handle,omitempty"`
	Preview bool   `json:"preview,omitempty"`
}

// Frame is one compiled render pass: the camera transform, the commands in
// painter's order and the toolbar state the host mirrors.
type Frame struct {
	Transform []float64     `json:"transform"`
	Commands  []DrawCommand `json:"commands"`

	Tool      Tool    `json:"tool"`
	Color     string  `json:"color"`
	BrushSize float64 `json:"brushSize"`
	CanUndo   bool    `json:"canUndo"`
	CanRedo   bool    `json:"canRedo"`
}

// Tick returns the next frame as JSON, or the empty string when nothing has
// changed since the last call. Hosts poll on their paint cadence; repeated
// events between ticks coalesce into one compile.
func (e *Engine) Tick() string {
	if !e.needsPaint {
		return ""
	}
	e.needsPaint = false
	return e.Render()
}

// Render unconditionally compiles the current state to a JSON frame.
func (e *Engine) Render() string {
	f := Frame{
		Transform: e.camera.Matrix(),
		Commands:  e.compile(),
		Tool:      e.tool,
		Color:     e.activeColor,
		BrushSize: e.brushSize,
		CanUndo:   e.history.CanUndo(),
		CanRedo:   e.history.CanRedo(),
	}
	buf, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	return string(buf)
}

// compile walks the scene in painter's order: clear, grid, drawables in
// insertion order, live previews, note cards by z-index, then the
// screen-space selection overlay on top.
func (e *Engine) compile() []DrawCommand {
	cmds := []DrawCommand{{Op: "clear"}, {Op: "grid"}}

	for _, o := range e.scene.Objects {
		cmds = append(cmds, commandFor(o, false))
	}
	if e.activeStroke != nil {
		cmds = append(cmds, commandFor(e.activeStroke, true))
	}
	if e.previewShape != nil {
		cmds = append(cmds, commandFor(e.previewShape, true))
	}

	for _, n := range e.scene.notesByZ() {
		cmds = append(cmds, DrawCommand{
			Op:         "note",
			ID:         n.Id,
			X:          n.X,
			Y:          n.Y,
			W:          n.W,
			H:          n.H,
			Text:       n.Text,
			ColorIndex: n.ColorIndex,
		})
	}

	cmds = append(cmds, e.selectionOverlay()...)
	return cmds
}

func commandFor(o Object, preview bool) DrawCommand {
	switch v := o.(type) {
	case *Stroke:
		return DrawCommand{
			Op: "stroke", ID: v.Id, Points: v.Points,
			Color: v.Color, Width: v.Width, Opacity: v.Opacity, Preview: preview,
		}
	case *Line:
		return DrawCommand{
			Op: "line", ID: v.Id, X: v.X1, Y: v.Y1, X2: v.X2, Y2: v.Y2,
			Color: v.Color, Width: v.Width, Preview: preview,
		}
	case *Rectangle:
		return DrawCommand{
			Op: "rect", ID: v.Id, X: v.X, Y: v.Y, W: v.W, H: v.H,
			Color: v.Color, Width: v.Width, Preview: preview,
		}
	case *Ellipse:
		return DrawCommand{
			Op: "ellipse", ID: v.Id, X: v.CX, Y: v.CY, RX: v.RX, RY: v.RY,
			Color: v.Color, Width: v.Width, Preview: preview,
		}
	case *Text:
		return DrawCommand{
			Op: "text", ID: v.Id, X: v.X, Y: v.Y,
			Text: v.Content, Color: v.Color, FontSize: v.FontSize, Preview: preview,
		}
	}
	return DrawCommand{}
}

// selectionOverlay emits the screen-space selection rectangle and, for
// resizable entities, the eight handle disks.
func (e *Engine) selectionOverlay() []DrawCommand {
	bounds, ok := e.selectionBounds()
	if !ok {
		return nil
	}

	x1, y1 := e.camera.WorldToScreen(bounds.X, bounds.Y)
	x2, y2 := e.camera.WorldToScreen(bounds.X+bounds.Width, bounds.Y+bounds.Height)
	cmds := []DrawCommand{{Op: "selection", X: x1, Y: y1, W: x2 - x1, H: y2 - y1}}

	if !e.selectionResizable() {
		return cmds
	}
	for _, h := range HandlesForRect(bounds) {
		hx, hy := e.camera.WorldToScreen(h.Pos.X, h.Pos.Y)
		cmds = append(cmds, DrawCommand{Op: "handle", Handle: string(h.ID), X: hx, Y: hy})
	}
	return cmds
}

// selectionResizable reports whether the selected entity shows handles:
// lines, rectangles, ellipses and note cards do; strokes and text do not.
func (e *Engine) selectionResizable() bool {
	if e.selection == nil {
		return false
	}
	if e.selection.IsNote {
		return true
	}
	o, ok := e.scene.ObjectByID(e.selection.ID)
	if !ok {
		return false
	}
	switch o.Kind() {
	case KindLine, KindRect, KindEllipse:
		return true
	}
	return false
}
