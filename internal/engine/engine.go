package engine

// Tool identifies the active drawing tool.
type Tool string

const (
	ToolSelect      Tool = "select"
	ToolPan         Tool = "pan"
	ToolPen         Tool = "pen"
	ToolHighlighter Tool = "highlighter"
	ToolEraser      Tool = "eraser"
	ToolLine        Tool = "line"
	ToolRect        Tool = "rect"
	ToolEllipse     Tool = "ellipse"
	ToolText        Tool = "text"
)

var validTools = map[Tool]bool{
	ToolSelect: true, ToolPan: true, ToolPen: true, ToolHighlighter: true,
	ToolEraser: true, ToolLine: true, ToolRect: true, ToolEllipse: true,
	ToolText: true,
}

// Selection identifies at most one selected entity, drawable or note card.
type Selection struct {
	ID     int  `json:"id"`
	IsNote bool `json:"isNote"`
}

const (
	defaultColor     = "#1d1d1f"
	defaultBrushSize = 4.0
	defaultFontSize  = 24.0

	defaultNoteW = 160.0
	defaultNoteH = 100.0
	minNoteW     = 60.0
	minNoteH     = 40.0
	noteColors   = 5

	defaultViewportW = 1280.0
	defaultViewportH = 800.0
)

// Engine owns the scene, camera, history, selection and interaction state
// for one board. It is an explicit context object: hosts create as many
// independent engines as they need and funnel all events for an engine
// through a single goroutine; the engine itself does no locking.
type Engine struct {
	scene   *Scene
	camera  Camera
	history *History

	tool        Tool
	activeColor string
	brushSize   float64
	fontSize    float64
	selection   *Selection

	viewportW float64
	viewportH float64

	// gesture state, see pointer.go
	state        gestureState
	activeStroke *Stroke
	previewShape Object
	anchor       Point
	dragOffset   Point
	gestureBase  Object
	gestureNote  *NoteCard
	resizeHandle HandleID
	resizeStart  Point
	moved        bool
	erased       bool
	lastScreen   Point
	pinchDist    float64
	pinchActive  bool

	textSession *textSession

	needsPaint bool
}

// New returns an engine with an empty scene, identity camera and history
// seeded with the initial state.
func New() *Engine {
	e := &Engine{
		scene:       NewScene(),
		camera:      NewCamera(),
		tool:        ToolPen,
		activeColor: defaultColor,
		brushSize:   defaultBrushSize,
		fontSize:    defaultFontSize,
		viewportW:   defaultViewportW,
		viewportH:   defaultViewportH,
		needsPaint:  true,
	}
	e.history = NewHistory(e.snapshot())
	return e
}

func (e *Engine) snapshot() Snapshot {
	return Snapshot{Scene: e.scene.Clone(), Camera: e.camera}
}

// pushHistory records the current state as a new undo point.
func (e *Engine) pushHistory() {
	e.history.Push(e.snapshot())
}

func (e *Engine) markDirty() { e.needsPaint = true }

// restore replaces live state wholesale from a snapshot. The snapshot is
// deep-copied first so the history entry stays immutable, and the selection
// is cleared because it is not part of a snapshot.
func (e *Engine) restore(s Snapshot) {
	e.scene = s.Scene.Clone()
	e.camera = s.Camera
	e.selection = nil
	e.markDirty()
}

// Undo steps back one snapshot. No-op at the bottom of the stack.
func (e *Engine) Undo() {
	if s, ok := e.history.Undo(); ok {
		e.restore(s)
	}
}

// Redo steps forward one snapshot. No-op at the top of the stack.
func (e *Engine) Redo() {
	if s, ok := e.history.Redo(); ok {
		e.restore(s)
	}
}

func (e *Engine) CanUndo() bool { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// SetTool switches the active tool, aborting any in-flight gesture.
func (e *Engine) SetTool(t Tool) {
	if !validTools[t] {
		return
	}
	e.abortGesture()
	e.tool = t
	e.markDirty()
}

func (e *Engine) SetColor(c string) {
	if c == "" {
		return
	}
	e.activeColor = c
}

func (e *Engine) SetBrushSize(v float64) {
	e.brushSize = clamp(v, 1, 64)
}

func (e *Engine) SetFontSize(v float64) {
	e.fontSize = clamp(v, 8, 128)
}

// SetViewport records the host surface size, used to centre new note cards.
func (e *Engine) SetViewport(w, h float64) {
	if w > 0 && h > 0 {
		e.viewportW, e.viewportH = w, h
	}
}

// AddNote creates a note card at the viewport centre, selects it and records
// an undo point.
func (e *Engine) AddNote() int {
	wx, wy := e.camera.ScreenToWorld(e.viewportW/2, e.viewportH/2)
	n := &NoteCard{
		X: wx - defaultNoteW/2,
		Y: wy - defaultNoteH/2,
		W: defaultNoteW,
		H: defaultNoteH,
	}
	id := e.scene.AddNote(n)
	n.ColorIndex = (id - 1) % noteColors
	e.selection = &Selection{ID: id, IsNote: true}
	e.pushHistory()
	e.markDirty()
	return id
}

// SetNoteText replaces a card's text. Unknown ids are ignored.
func (e *Engine) SetNoteText(id int, text string) {
	n, ok := e.scene.NoteByID(id)
	if !ok {
		return
	}
	if n.Text == text {
		return
	}
	n.Text = text
	e.pushHistory()
	e.markDirty()
}

// DeleteSelection removes the selected entity and records an undo point.
func (e *Engine) DeleteSelection() {
	if e.selection == nil {
		return
	}
	sel := *e.selection
	e.selection = nil
	var removed bool
	if sel.IsNote {
		removed = e.scene.RemoveNote(sel.ID)
	} else {
		removed = e.scene.RemoveObject(sel.ID)
	}
	if removed {
		e.pushHistory()
	}
	e.markDirty()
}

// ClearBoard empties both collections and resets the camera to identity.
// History restarts from the cleared state; the host is responsible for
// confirming the destructive action first.
func (e *Engine) ClearBoard() {
	e.abortGesture()
	e.textSession = nil
	e.scene.Clear()
	e.camera.Reset()
	e.selection = nil
	e.history.Reset(e.snapshot())
	e.markDirty()
}

// ResetView returns the camera to identity without touching the scene.
func (e *Engine) ResetView() {
	e.camera.Reset()
	e.markDirty()
}

// KeyDown handles the keyboard surface: modifier+z / y for undo/redo,
// Delete/Backspace for the selection, Escape to abort, and single letters
// for tool switching. Returns false when the key was not consumed.
func (e *Engine) KeyDown(key string, ctrl, shift bool) bool {
	if e.textSession != nil {
		// Typing goes to the host's editor overlay; only Escape is ours.
		if key == "Escape" {
			e.CancelTextEdit()
			return true
		}
		return false
	}

	if ctrl {
		switch key {
		case "z", "Z":
			if shift {
				e.Redo()
			} else {
				e.Undo()
			}
			return true
		case "y", "Y":
			e.Redo()
			return true
		}
		return false
	}

	switch key {
	case "Delete", "Backspace":
		e.DeleteSelection()
		return true
	case "Escape":
		e.abortGesture()
		e.selection = nil
		e.markDirty()
		return true
	case "v":
		e.SetTool(ToolSelect)
	case "p":
		e.SetTool(ToolPen)
	case "h":
		e.SetTool(ToolHighlighter)
	case "e":
		e.SetTool(ToolEraser)
	case "l":
		e.SetTool(ToolLine)
	case "r":
		e.SetTool(ToolRect)
	case "c":
		e.SetTool(ToolEllipse)
	case "t":
		e.SetTool(ToolText)
	case "n":
		e.AddNote()
	default:
		return false
	}
	return true
}

// --- accessors used by the renderer, the board codec and hosts ---

func (e *Engine) Objects() []Object   { return e.scene.Objects }
func (e *Engine) Notes() []*NoteCard  { return e.scene.Notes }
func (e *Engine) Camera() Camera      { return e.camera }
func (e *Engine) Tool() Tool          { return e.tool }
func (e *Engine) ActiveColor() string { return e.activeColor }
func (e *Engine) BrushSize() float64  { return e.brushSize }
func (e *Engine) FontSize() float64   { return e.fontSize }

func (e *Engine) Selection() *Selection {
	if e.selection == nil {
		return nil
	}
	sel := *e.selection
	return &sel
}

// Restore replaces the whole engine state from persisted values, reseeding
// the id counters and the history. Missing or malformed values degrade to
// defaults rather than failing.
func (e *Engine) Restore(objects []Object, notes []*NoteCard, cam Camera, color string, brush float64, tool Tool) {
	e.abortGesture()
	e.textSession = nil

	s := NewScene()
	for _, o := range objects {
		if o != nil {
			s.Objects = append(s.Objects, o)
		}
	}
	for _, n := range notes {
		if n != nil {
			s.Notes = append(s.Notes, n)
		}
	}
	s.SyncIDCounters()
	e.scene = s

	if cam.Scale <= 0 {
		cam = NewCamera()
	}
	cam.Scale = clamp(cam.Scale, minScale, maxScale)
	e.camera = cam

	if color != "" {
		e.activeColor = color
	}
	if brush > 0 {
		e.brushSize = clamp(brush, 1, 64)
	}
	if validTools[tool] {
		e.tool = tool
	}

	e.selection = nil
	e.history.Reset(e.snapshot())
	e.markDirty()
}
