package engine

import (
	"encoding/json"
	"strings"
	"testing"
)

func down(e *Engine, x, y float64) { e.PointerDown(PointerEvent{X: x, Y: y}) }
func move(e *Engine, x, y float64) { e.PointerMove(PointerEvent{X: x, Y: y}) }
func up(e *Engine, x, y float64)   { e.PointerUp(PointerEvent{X: x, Y: y}) }

func drawStroke(e *Engine, pts ...Point) {
	down(e, pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		move(e, p.X, p.Y)
	}
	up(e, pts[len(pts)-1].X, pts[len(pts)-1].Y)
}

func TestPenStrokeCommit(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)

	drawStroke(e, Point{10, 10}, Point{20, 15}, Point{30, 20})

	objs := e.Objects()
	if len(objs) != 1 {
		t.Fatalf("got %d objects, want 1", len(objs))
	}
	s, ok := objs[0].(*Stroke)
	if !ok {
		t.Fatalf("got %T, want *Stroke", objs[0])
	}
	if len(s.Points) != 3 {
		t.Errorf("stroke has %d points, want 3", len(s.Points))
	}
	if e.Selection() != nil {
		t.Error("finishing a stroke should not select it")
	}
	if e.Tool() != ToolPen {
		t.Errorf("tool switched to %q, want pen kept", e.Tool())
	}
	if !e.CanUndo() {
		t.Error("stroke commit should record an undo point")
	}
}

func TestPenClickWithoutDragDiscards(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)

	down(e, 10, 10)
	up(e, 10, 10)

	if len(e.Objects()) != 0 {
		t.Errorf("single-point stroke should be discarded, got %d objects", len(e.Objects()))
	}
	if e.CanUndo() {
		t.Error("discarded stroke should not touch history")
	}
}

func TestHighlighterStroke(t *testing.T) {
	e := New()
	e.SetBrushSize(4)
	e.SetTool(ToolHighlighter)

	drawStroke(e, Point{0, 0}, Point{50, 0})

	s := e.Objects()[0].(*Stroke)
	if s.Opacity != 0.4 {
		t.Errorf("opacity = %v, want 0.4", s.Opacity)
	}
	if s.Width != 8 {
		t.Errorf("width = %v, want doubled brush size 8", s.Width)
	}
}

func TestShapeDrawSelectsAndSwitchesTool(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)

	down(e, 10, 10)
	move(e, 110, 60)
	up(e, 110, 60)

	objs := e.Objects()
	if len(objs) != 1 {
		t.Fatalf("got %d objects, want 1", len(objs))
	}
	r := objs[0].(*Rectangle)
	if r.X != 10 || r.Y != 10 || r.W != 100 || r.H != 50 {
		t.Errorf("rect = %+v", r)
	}

	sel := e.Selection()
	if sel == nil || sel.ID != r.Id || sel.IsNote {
		t.Errorf("selection = %+v, want the new rect", sel)
	}
	if e.Tool() != ToolSelect {
		t.Errorf("tool = %q, want auto-switch to select", e.Tool())
	}
}

func TestShapeClickWithoutDragDiscards(t *testing.T) {
	e := New()
	e.SetTool(ToolEllipse)

	down(e, 40, 40)
	up(e, 40, 40)

	if len(e.Objects()) != 0 {
		t.Error("zero-size ellipse should be discarded")
	}
	if e.Tool() != ToolEllipse {
		t.Errorf("tool = %q, want ellipse kept after a discarded shape", e.Tool())
	}
}

func TestEllipseFromDragCorners(t *testing.T) {
	e := New()
	e.SetTool(ToolEllipse)

	down(e, 0, 0)
	move(e, 100, 60)
	up(e, 100, 60)

	el := e.Objects()[0].(*Ellipse)
	if el.CX != 50 || el.CY != 30 || el.RX != 50 || el.RY != 30 {
		t.Errorf("ellipse = %+v", el)
	}
}

func TestSelectAndDragObject(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 10, 10)
	move(e, 60, 60)
	up(e, 60, 60)

	// Drag from the middle; selection already on the rect.
	down(e, 35, 35)
	move(e, 135, 85)
	up(e, 135, 85)

	r := e.Objects()[0].(*Rectangle)
	if r.X != 110 || r.Y != 60 {
		t.Errorf("rect at (%v, %v), want (110, 60)", r.X, r.Y)
	}
}

func TestDragRecordsSingleUndoPoint(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 10, 10)
	move(e, 60, 60)
	up(e, 60, 60)

	down(e, 35, 35)
	for i := 0; i < 10; i++ {
		move(e, 35+float64(i*10), 35)
	}
	up(e, 125, 35)

	e.Undo()
	r := e.Objects()[0].(*Rectangle)
	if r.X != 10 || r.Y != 10 {
		t.Errorf("one undo should revert the whole drag, rect at (%v, %v)", r.X, r.Y)
	}
}

func TestClickEmptySpaceClearsSelection(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 10, 10)
	move(e, 60, 60)
	up(e, 60, 60)

	if e.Selection() == nil {
		t.Fatal("expected selection after shape draw")
	}

	down(e, 500, 500)
	up(e, 500, 500)

	if e.Selection() != nil {
		t.Error("clicking empty space should clear the selection")
	}
}

func TestResizeViaHandle(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 0, 0)
	move(e, 100, 50)
	up(e, 100, 50)

	// Grab the east handle at screen (100, 25) and pull right by 20.
	down(e, 100, 25)
	move(e, 120, 25)
	up(e, 120, 25)

	r := e.Objects()[0].(*Rectangle)
	if r.X != 0 || r.W != 120 || r.H != 50 {
		t.Errorf("rect = %+v, want {0 0 120 50}", r)
	}

	e.Undo()
	r = e.Objects()[0].(*Rectangle)
	if r.W != 100 {
		t.Errorf("undo gave W = %v, want 100", r.W)
	}
}

func TestEraserRemovesAndRecordsOnce(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 0, 0)
	move(e, 10, 10)
	up(e, 10, 10)
	e.SetTool(ToolRect)
	down(e, 200, 200)
	move(e, 210, 210)
	up(e, 210, 210)

	e.SetTool(ToolEraser)
	down(e, 5, 5)
	move(e, 205, 205)
	up(e, 205, 205)

	if len(e.Objects()) != 0 {
		t.Fatalf("%d objects left, want 0", len(e.Objects()))
	}

	e.Undo()
	if len(e.Objects()) != 2 {
		t.Errorf("one undo restored %d objects, want 2", len(e.Objects()))
	}
}

func TestEraserNoHitNoHistory(t *testing.T) {
	e := New()
	before := e.CanUndo()

	e.SetTool(ToolEraser)
	down(e, 400, 400)
	up(e, 400, 400)

	if e.CanUndo() != before {
		t.Error("erasing nothing should not record history")
	}
}

func TestPanDoesNotTouchHistory(t *testing.T) {
	e := New()
	e.SetTool(ToolPan)
	down(e, 100, 100)
	move(e, 150, 120)
	up(e, 150, 120)

	cam := e.Camera()
	if cam.PanX != 50 || cam.PanY != 20 {
		t.Errorf("pan = (%v, %v), want (50, 20)", cam.PanX, cam.PanY)
	}
	if e.CanUndo() {
		t.Error("panning should not record history")
	}
}

func TestPanModifierOverridesTool(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)
	e.PointerDown(PointerEvent{X: 0, Y: 0, PanModifier: true})
	e.PointerMove(PointerEvent{X: 40, Y: 0, PanModifier: true})
	e.PointerUp(PointerEvent{X: 40, Y: 0, PanModifier: true})

	if len(e.Objects()) != 0 {
		t.Error("pan chord should not draw")
	}
	if e.Camera().PanX != 40 {
		t.Errorf("panX = %v, want 40", e.Camera().PanX)
	}
}

func TestWheelZoomTowardCursor(t *testing.T) {
	e := New()
	wx, wy := e.camera.ScreenToWorld(320, 240)

	e.Wheel(-100, 320, 240)

	if e.Camera().Scale <= 1 {
		t.Fatalf("scale = %v, want zoomed in", e.Camera().Scale)
	}
	ax, ay := e.camera.ScreenToWorld(320, 240)
	if !almostEqual(wx, ax) || !almostEqual(wy, ay) {
		t.Error("cursor anchor moved during wheel zoom")
	}
}

func TestDrawingAccountsForCamera(t *testing.T) {
	e := New()
	e.Wheel(-100, 0, 0) // zoom in at origin
	scale := e.Camera().Scale

	e.SetTool(ToolPen)
	drawStroke(e, Point{110, 0}, Point{220, 0})

	s := e.Objects()[0].(*Stroke)
	if want := 110 / scale; !almostEqual(s.Points[0].X, want) {
		t.Errorf("world x = %v, want %v", s.Points[0].X, want)
	}
}

func TestEscapeAbortsStroke(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)
	down(e, 0, 0)
	move(e, 50, 50)

	e.KeyDown("Escape", false, false)
	up(e, 50, 50)

	if len(e.Objects()) != 0 {
		t.Error("escaped stroke should not commit")
	}
}

func TestEscapeAbortsDragRestoresPosition(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 10, 10)
	move(e, 60, 60)
	up(e, 60, 60)

	down(e, 35, 35)
	move(e, 200, 200)
	e.KeyDown("Escape", false, false)

	r := e.Objects()[0].(*Rectangle)
	if r.X != 10 || r.Y != 10 {
		t.Errorf("abort left rect at (%v, %v), want (10, 10)", r.X, r.Y)
	}
}

func TestKeyboardShortcuts(t *testing.T) {
	e := New()

	if !e.KeyDown("r", false, false) || e.Tool() != ToolRect {
		t.Errorf("tool = %q, want rect", e.Tool())
	}
	if !e.KeyDown("v", false, false) || e.Tool() != ToolSelect {
		t.Errorf("tool = %q, want select", e.Tool())
	}

	e.SetTool(ToolPen)
	drawStroke(e, Point{0, 0}, Point{10, 10})

	if !e.KeyDown("z", true, false) {
		t.Fatal("ctrl+z not consumed")
	}
	if len(e.Objects()) != 0 {
		t.Error("ctrl+z should undo the stroke")
	}
	if !e.KeyDown("z", true, true) {
		t.Fatal("ctrl+shift+z not consumed")
	}
	if len(e.Objects()) != 1 {
		t.Error("ctrl+shift+z should redo the stroke")
	}
	e.KeyDown("z", true, false)
	e.KeyDown("y", true, false)
	if len(e.Objects()) != 1 {
		t.Error("ctrl+y should redo")
	}

	if e.KeyDown("q", false, false) {
		t.Error("unbound key reported as consumed")
	}
}

func TestDeleteKeyRemovesSelection(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 0, 0)
	move(e, 50, 50)
	up(e, 50, 50)

	e.KeyDown("Delete", false, false)

	if len(e.Objects()) != 0 {
		t.Error("delete key should remove the selected object")
	}
	if e.Selection() != nil {
		t.Error("selection should clear after delete")
	}

	e.Undo()
	if len(e.Objects()) != 1 {
		t.Error("delete should be undoable")
	}
}

func TestAddNoteCentersAndSelects(t *testing.T) {
	e := New()
	e.SetViewport(1000, 600)

	id := e.AddNote()

	notes := e.Notes()
	if len(notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(notes))
	}
	n := notes[0]
	cx, cy := NoteBounds(n).Center()
	if !almostEqual(cx, 500) || !almostEqual(cy, 300) {
		t.Errorf("note centre = (%v, %v), want viewport centre (500, 300)", cx, cy)
	}
	sel := e.Selection()
	if sel == nil || !sel.IsNote || sel.ID != id {
		t.Errorf("selection = %+v, want the new note", sel)
	}
}

func TestNoteColorCycles(t *testing.T) {
	e := New()
	seen := map[int]bool{}
	for i := 0; i < noteColors; i++ {
		e.AddNote()
	}
	for _, n := range e.Notes() {
		seen[n.ColorIndex] = true
	}
	if len(seen) != noteColors {
		t.Errorf("saw %d distinct colors, want %d", len(seen), noteColors)
	}
}

func TestNoteDragAndResize(t *testing.T) {
	e := New()
	id := e.AddNote()
	n, _ := e.scene.NoteByID(id)
	origX, origY := n.X, n.Y

	e.SetTool(ToolSelect)
	sx, sy := e.camera.WorldToScreen(n.X+10, n.Y+10)
	down(e, sx, sy)
	move(e, sx+30, sy+20)
	up(e, sx+30, sy+20)

	if n.X != origX+30 || n.Y != origY+20 {
		t.Errorf("note at (%v, %v), want (%v, %v)", n.X, n.Y, origX+30, origY+20)
	}

	// Resize below the minimum clamps.
	hx, hy := e.camera.WorldToScreen(n.X+n.W, n.Y+n.H)
	down(e, hx, hy)
	move(e, hx-1000, hy-1000)
	up(e, hx-1000, hy-1000)

	if n.W != minNoteW || n.H != minNoteH {
		t.Errorf("note size = (%v, %v), want clamped to (%v, %v)", n.W, n.H, minNoteW, minNoteH)
	}
}

func TestSetNoteText(t *testing.T) {
	e := New()
	id := e.AddNote()

	e.SetNoteText(id, "ship it")

	n, _ := e.scene.NoteByID(id)
	if n.Text != "ship it" {
		t.Errorf("text = %q", n.Text)
	}

	e.Undo()
	n, _ = e.scene.NoteByID(id)
	if n.Text != "" {
		t.Error("note text edit should be undoable")
	}
}

func TestClearBoardResetsEverything(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)
	drawStroke(e, Point{0, 0}, Point{10, 10})
	e.AddNote()
	e.Wheel(-100, 0, 0)

	e.ClearBoard()

	if len(e.Objects()) != 0 || len(e.Notes()) != 0 {
		t.Error("clear should empty the scene")
	}
	if e.Camera() != NewCamera() {
		t.Errorf("camera = %+v, want identity", e.Camera())
	}
	if e.CanUndo() {
		t.Error("history should restart after clear")
	}
}

func TestIDsNeverReused(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)
	drawStroke(e, Point{0, 0}, Point{10, 10})
	first := e.Objects()[0].ID()

	e.selection = &Selection{ID: first}
	e.DeleteSelection()

	e.SetTool(ToolPen)
	drawStroke(e, Point{20, 20}, Point{30, 30})
	second := e.Objects()[0].ID()

	if second <= first {
		t.Errorf("id %d reused after deleting %d", second, first)
	}
}

func TestUndoRestoresDeletedThenRedo(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 0, 0)
	move(e, 50, 50)
	up(e, 50, 50)

	e.DeleteSelection()
	if len(e.Objects()) != 0 {
		t.Fatal("delete failed")
	}

	e.Undo()
	if len(e.Objects()) != 1 {
		t.Fatal("undo should restore the object")
	}
	e.Redo()
	if len(e.Objects()) != 0 {
		t.Error("redo should delete it again")
	}
}

func TestDoubleClickCreatesTextSession(t *testing.T) {
	e := New()
	e.SetTool(ToolText)

	e.DoubleClick(PointerEvent{X: 100, Y: 80})
	if !e.TextEditActive() {
		t.Fatal("double click with text tool should open a session")
	}

	e.CommitTextEdit("hello\nworld")

	objs := e.Objects()
	if len(objs) != 1 {
		t.Fatalf("got %d objects, want 1", len(objs))
	}
	txt := objs[0].(*Text)
	if txt.Content != "hello\nworld" {
		t.Errorf("content = %q", txt.Content)
	}
	if txt.X != 100 || txt.Y != 80 {
		t.Errorf("anchor = (%v, %v), want (100, 80)", txt.X, txt.Y)
	}
	if !e.CanUndo() {
		t.Error("text commit should record history")
	}
}

func TestDoubleClickEditsExistingText(t *testing.T) {
	e := New()
	id := e.scene.AddObject(&Text{X: 10, Y: 10, Content: "draft", Color: "#000000", FontSize: 24})
	e.pushHistory()

	// Any tool: double click on the text object opens it for editing.
	e.SetTool(ToolSelect)
	e.DoubleClick(PointerEvent{X: 15, Y: 15})

	gotID, _, initial, active := e.TextEditState()
	if !active || gotID != id || initial != "draft" {
		t.Fatalf("session = (%d, %q, %v), want existing object", gotID, initial, active)
	}

	// The commit takes the active color along with the content.
	e.SetColor("#ff0000")
	e.CommitTextEdit("final")
	txt, _ := e.scene.ObjectByID(id)
	if txt.(*Text).Content != "final" {
		t.Errorf("content = %q, want final", txt.(*Text).Content)
	}
	if txt.(*Text).Color != "#ff0000" {
		t.Errorf("color = %q, want active color #ff0000", txt.(*Text).Color)
	}

	e.Undo()
	txt, _ = e.scene.ObjectByID(id)
	if txt.(*Text).Content != "draft" || txt.(*Text).Color != "#000000" {
		t.Errorf("after undo = (%q, %q), want original draft", txt.(*Text).Content, txt.(*Text).Color)
	}
}

func TestCommitColorOnlyChangeIsUndoable(t *testing.T) {
	e := New()
	id := e.scene.AddObject(&Text{X: 10, Y: 10, Content: "keep", Color: "#000000", FontSize: 24})
	e.pushHistory()

	e.SetColor("#00aa00")
	e.DoubleClick(PointerEvent{X: 12, Y: 12})
	e.CommitTextEdit("keep")

	txt, _ := e.scene.ObjectByID(id)
	if txt.(*Text).Color != "#00aa00" {
		t.Fatalf("color = %q, want recolored #00aa00", txt.(*Text).Color)
	}
	// One undo steps back to the original color, not past the object.
	e.Undo()
	txt, ok := e.scene.ObjectByID(id)
	if !ok {
		t.Fatal("object gone after one undo, recolor did not push its own snapshot")
	}
	if txt.(*Text).Color != "#000000" {
		t.Errorf("color after undo = %q, want #000000", txt.(*Text).Color)
	}
}

func TestSetFontSizeAppliesToNewText(t *testing.T) {
	e := New()
	e.SetFontSize(48)
	if e.FontSize() != 48 {
		t.Fatalf("font size = %v, want 48", e.FontSize())
	}

	e.SetTool(ToolText)
	e.DoubleClick(PointerEvent{X: 0, Y: 0})
	e.CommitTextEdit("big")

	txt := e.Objects()[0].(*Text)
	if txt.FontSize != 48 {
		t.Errorf("committed font size = %v, want 48", txt.FontSize)
	}

	e.SetFontSize(1000)
	if e.FontSize() != 128 {
		t.Errorf("font size = %v, want clamp to 128", e.FontSize())
	}
	e.SetFontSize(2)
	if e.FontSize() != 8 {
		t.Errorf("font size = %v, want clamp to 8", e.FontSize())
	}
}

func TestCommitEmptyTextDiscardsNew(t *testing.T) {
	e := New()
	e.SetTool(ToolText)
	e.DoubleClick(PointerEvent{X: 0, Y: 0})

	e.CommitTextEdit("   \n\t")

	if len(e.Objects()) != 0 {
		t.Error("whitespace-only commit should create nothing")
	}
	if e.CanUndo() {
		t.Error("discarded edit should not record history")
	}
}

func TestCommitEmptyTextDeletesExisting(t *testing.T) {
	e := New()
	id := e.scene.AddObject(&Text{Content: "bye", FontSize: 24})
	e.pushHistory()

	e.DoubleClick(PointerEvent{X: 1, Y: 1})
	if !e.TextEditActive() {
		t.Fatal("expected session on existing text")
	}
	e.CommitTextEdit("")

	if _, ok := e.scene.ObjectByID(id); ok {
		t.Error("empty commit should delete the text object")
	}
}

func TestCancelTextEditKeepsOriginal(t *testing.T) {
	e := New()
	e.scene.AddObject(&Text{Content: "keep", FontSize: 24})
	e.pushHistory()

	e.DoubleClick(PointerEvent{X: 1, Y: 1})
	e.CancelTextEdit()

	if e.Objects()[0].(*Text).Content != "keep" {
		t.Error("cancel should leave content untouched")
	}
}

func TestSingleClickTextToolIsNoOp(t *testing.T) {
	e := New()
	e.SetTool(ToolText)

	down(e, 50, 50)
	up(e, 50, 50)

	if e.TextEditActive() || len(e.Objects()) != 0 {
		t.Error("single click with text tool should do nothing")
	}
}

func TestTickCoalesces(t *testing.T) {
	e := New()
	if e.Tick() == "" {
		t.Fatal("first tick should emit the initial frame")
	}
	if e.Tick() != "" {
		t.Error("tick without changes should emit nothing")
	}

	e.SetTool(ToolPen)
	drawStroke(e, Point{0, 0}, Point{10, 10})
	if e.Tick() == "" {
		t.Error("tick after drawing should emit a frame")
	}
	if e.Tick() != "" {
		t.Error("second tick should be coalesced away")
	}
}

func TestRenderFrameShape(t *testing.T) {
	e := New()
	e.SetTool(ToolRect)
	down(e, 0, 0)
	move(e, 50, 50)
	up(e, 50, 50)

	var f Frame
	if err := json.Unmarshal([]byte(e.Render()), &f); err != nil {
		t.Fatalf("render is not valid JSON: %v", err)
	}

	if len(f.Transform) != 6 {
		t.Fatalf("transform has %d entries, want 6", len(f.Transform))
	}
	if f.Commands[0].Op != "clear" || f.Commands[1].Op != "grid" {
		t.Errorf("frame must start with clear+grid, got %q, %q", f.Commands[0].Op, f.Commands[1].Op)
	}

	var ops []string
	for _, c := range f.Commands {
		ops = append(ops, c.Op)
	}
	joined := strings.Join(ops, ",")
	if !strings.Contains(joined, "rect") {
		t.Errorf("no rect command in %v", ops)
	}
	if !strings.Contains(joined, "selection") {
		t.Errorf("no selection overlay in %v", ops)
	}
	handles := 0
	for _, c := range f.Commands {
		if c.Op == "handle" {
			handles++
		}
	}
	if handles != 8 {
		t.Errorf("got %d handles, want 8", handles)
	}
}

func TestSelectionOverlayOmittedForStroke(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)
	drawStroke(e, Point{0, 0}, Point{20, 20})

	e.SetTool(ToolSelect)
	down(e, 10, 10)
	up(e, 10, 10)
	if e.Selection() == nil {
		t.Fatal("stroke not selected")
	}

	var f Frame
	if err := json.Unmarshal([]byte(e.Render()), &f); err != nil {
		t.Fatal(err)
	}
	for _, c := range f.Commands {
		if c.Op == "handle" {
			t.Fatal("strokes are not resizable; no handles expected")
		}
	}
}

func TestPinchZoomAndPan(t *testing.T) {
	e := New()
	e.PinchStart(100, 200, 300, 200)
	e.PinchMove(50, 200, 350, 200) // distance 200 -> 300

	if got, want := e.Camera().Scale, 1.5; !almostEqual(got, want) {
		t.Errorf("scale = %v, want %v", got, want)
	}

	e.PinchEnd()
	if e.pinchActive {
		t.Error("pinch should be inactive after end")
	}
}

func TestPointerLeaveCommitsStroke(t *testing.T) {
	e := New()
	e.SetTool(ToolPen)
	down(e, 0, 0)
	move(e, 40, 40)

	e.PointerLeave()

	if len(e.Objects()) != 1 {
		t.Error("leaving the surface mid-stroke should commit it")
	}
	if e.state != stateIdle {
		t.Error("gesture should be finished after leave")
	}
}

func TestRestoreReseedsCountersAndHistory(t *testing.T) {
	e := New()
	objects := []Object{
		&Rectangle{Id: 7, X: 0, Y: 0, W: 10, H: 10, Color: "#111111", Width: 2},
	}
	notes := []*NoteCard{{Id: 3, X: 0, Y: 0, W: 100, H: 80, ZIndex: 5}}

	e.Restore(objects, notes, Camera{PanX: 1, PanY: 2, Scale: 2}, "#ff0000", 6, ToolSelect)

	if e.CanUndo() || e.CanRedo() {
		t.Error("restore should reset history")
	}
	if e.ActiveColor() != "#ff0000" || e.BrushSize() != 6 || e.Tool() != ToolSelect {
		t.Error("toolbar state not restored")
	}

	id := e.scene.AddObject(&Line{X2: 1, Y2: 1})
	if id != 8 {
		t.Errorf("next object id = %d, want 8 (max+1)", id)
	}
	nid := e.scene.AddNote(&NoteCard{})
	if nid != 4 {
		t.Errorf("next note id = %d, want 4", nid)
	}
}

func TestRestoreBadCameraFallsBack(t *testing.T) {
	e := New()
	e.Restore(nil, nil, Camera{}, "", 0, "")
	if e.Camera() != NewCamera() {
		t.Errorf("camera = %+v, want identity fallback", e.Camera())
	}
}
