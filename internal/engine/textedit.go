package engine

import "strings"

// textSession tracks one in-progress text edit. The host renders the actual
// editor overlay and owns the typed buffer; the engine only remembers which
// object is being edited (0 for a brand-new one) and where it anchors.
type textSession struct {
	targetID int
	anchor   Point
	initial  string
}

// TextEditActive reports whether an edit session is open.
func (e *Engine) TextEditActive() bool { return e.textSession != nil }

// TextEditState returns the target id (0 for a new object), the world-space
// anchor and the initial content of the open session.
func (e *Engine) TextEditState() (int, Point, string, bool) {
	if e.textSession == nil {
		return 0, Point{}, "", false
	}
	s := e.textSession
	return s.targetID, s.anchor, s.initial, true
}

// BeginTextEdit opens a session on the text object at the world point, or a
// session for a new object anchored there when nothing is hit. Non-text
// objects under the point are left alone.
func (e *Engine) BeginTextEdit(wx, wy float64) {
	e.abortGesture()

	tol := pickTolerancePx / e.camera.Scale
	if id, ok := e.scene.Pick(wx, wy, tol); ok {
		if t, isText := e.objectAsText(id); isText {
			e.textSession = &textSession{
				targetID: id,
				anchor:   Point{t.X, t.Y},
				initial:  t.Content,
			}
			e.selection = &Selection{ID: id, IsNote: false}
			e.markDirty()
			return
		}
	}

	if e.tool != ToolText {
		return
	}
	e.textSession = &textSession{anchor: Point{wx, wy}}
	e.markDirty()
}

func (e *Engine) objectAsText(id int) (*Text, bool) {
	o, ok := e.scene.ObjectByID(id)
	if !ok {
		return nil, false
	}
	t, isText := o.(*Text)
	return t, isText
}

// CommitTextEdit closes the session with the edited content. An existing
// target takes both the content and the active color. Whitespace-only
// content discards the edit for a new object, and deletes an existing one.
// Any real change records an undo point.
func (e *Engine) CommitTextEdit(content string) {
	s := e.textSession
	if s == nil {
		return
	}
	e.textSession = nil

	trimmed := strings.TrimRight(content, " \t\n")
	if strings.TrimSpace(trimmed) == "" {
		if s.targetID != 0 && e.scene.RemoveObject(s.targetID) {
			e.selection = nil
			e.pushHistory()
		}
		e.markDirty()
		return
	}

	if s.targetID != 0 {
		t, ok := e.objectAsText(s.targetID)
		if !ok {
			return
		}
		if t.Content == trimmed && t.Color == e.activeColor {
			e.markDirty()
			return
		}
		t.Content = trimmed
		t.Color = e.activeColor
		e.pushHistory()
		e.markDirty()
		return
	}

	id := e.scene.AddObject(&Text{
		X:        s.anchor.X,
		Y:        s.anchor.Y,
		Content:  trimmed,
		Color:    e.activeColor,
		FontSize: e.fontSize,
	})
	e.selection = &Selection{ID: id, IsNote: false}
	e.pushHistory()
	e.markDirty()
}

// CancelTextEdit closes the session without applying the edit.
func (e *Engine) CancelTextEdit() {
	if e.textSession == nil {
		return
	}
	e.textSession = nil
	e.markDirty()
}
