package engine

import "sort"

// Kind tags the drawable variants.
type Kind string

const (
	KindStroke  Kind = "stroke"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindText    Kind = "text"
)

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Object is the drawable sum type. Concrete variants are *Stroke, *Line,
// *Rectangle, *Ellipse and *Text; the geometry kernel, hit-tester and
// renderer switch exhaustively over them. Field sets differ enough per
// variant that a shared base struct would be mostly dead weight.
type Object interface {
	ID() int
	Kind() Kind
	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() Object

	setID(id int)
}

// Stroke is a freehand polyline. Committed strokes have at least two points.
type Stroke struct {
	Id      int
	Points  []Point
	Color   string
	Width   float64
	Opacity float64
}

func (s *Stroke) ID() int      { return s.Id }
func (s *Stroke) Kind() Kind   { return KindStroke }
func (s *Stroke) setID(id int) { s.Id = id }
func (s *Stroke) Clone() Object {
	cp := *s
	cp.Points = append([]Point(nil), s.Points...)
	return &cp
}

// Line is a straight segment between two endpoints.
type Line struct {
	Id     int
	X1, Y1 float64
	X2, Y2 float64
	Color  string
	Width  float64
}

func (l *Line) ID() int      { return l.Id }
func (l *Line) Kind() Kind   { return KindLine }
func (l *Line) setID(id int) { l.Id = id }
func (l *Line) Clone() Object {
	cp := *l
	return &cp
}

// Rectangle has a signed extent: negative W or H mirrors across the origin
// corner, which falls out naturally from anchored drawing and resizing.
type Rectangle struct {
	Id    int
	X, Y  float64
	W, H  float64
	Color string
	Width float64
}

func (r *Rectangle) ID() int      { return r.Id }
func (r *Rectangle) Kind() Kind   { return KindRect }
func (r *Rectangle) setID(id int) { r.Id = id }
func (r *Rectangle) Clone() Object {
	cp := *r
	return &cp
}

// Ellipse is centre plus radii.
type Ellipse struct {
	Id     int
	CX, CY float64
	RX, RY float64
	Color  string
	Width  float64
}

func (e *Ellipse) ID() int      { return e.Id }
func (e *Ellipse) Kind() Kind   { return KindEllipse }
func (e *Ellipse) setID(id int) { e.Id = id }
func (e *Ellipse) Clone() Object {
	cp := *e
	return &cp
}

// Text is a multi-line block anchored at its top-left corner. Its bounding
// box comes from text metrics, not stored extent.
type Text struct {
	Id       int
	X, Y     float64
	Content  string
	Color    string
	FontSize float64
}

func (t *Text) ID() int      { return t.Id }
func (t *Text) Kind() Kind   { return KindText }
func (t *Text) setID(id int) { t.Id = id }
func (t *Text) Clone() Object {
	cp := *t
	return &cp
}

// NoteCard is a free-floating card rendered on an overlay layer synced to the
// camera, outside the primary object pipeline, but participating in the same
// selection and undo model.
type NoteCard struct {
	Id         int
	X, Y       float64
	W, H       float64
	Text       string
	ColorIndex int
	ZIndex     int
}

func (n *NoteCard) Clone() *NoteCard {
	cp := *n
	return &cp
}

// Scene is the ordered object store plus the note-card collection. Object
// slice order is the z-order: later entries paint and hit-test on top.
// Identifiers are monotonic and never reused, even after deletion.
type Scene struct {
	Objects []Object
	Notes   []*NoteCard

	nextObjectID int
	nextNoteID   int
	nextNoteZ    int
}

func NewScene() *Scene {
	return &Scene{nextObjectID: 1, nextNoteID: 1, nextNoteZ: 1}
}

// AddObject assigns a fresh id and appends the object on top of the z-order.
func (s *Scene) AddObject(o Object) int {
	o.setID(s.nextObjectID)
	s.nextObjectID++
	s.Objects = append(s.Objects, o)
	return o.ID()
}

func (s *Scene) ObjectByID(id int) (Object, bool) {
	for _, o := range s.Objects {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

func (s *Scene) RemoveObject(id int) bool {
	for i, o := range s.Objects {
		if o.ID() == id {
			s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
			return true
		}
	}
	return false
}

// replaceObject swaps the stored object with the given id in place,
// preserving its z-position.
func (s *Scene) replaceObject(id int, o Object) bool {
	for i, old := range s.Objects {
		if old.ID() == id {
			s.Objects[i] = o
			return true
		}
	}
	return false
}

// AddNote assigns a fresh id and stacks the card above all existing cards.
func (s *Scene) AddNote(n *NoteCard) int {
	n.Id = s.nextNoteID
	s.nextNoteID++
	n.ZIndex = s.nextNoteZ
	s.nextNoteZ++
	s.Notes = append(s.Notes, n)
	return n.Id
}

func (s *Scene) NoteByID(id int) (*NoteCard, bool) {
	for _, n := range s.Notes {
		if n.Id == id {
			return n, true
		}
	}
	return nil, false
}

// notesByZ returns the cards in ascending z-order for painting.
func (s *Scene) notesByZ() []*NoteCard {
	cards := make([]*NoteCard, len(s.Notes))
	copy(cards, s.Notes)
	sort.SliceStable(cards, func(i, j int) bool { return cards[i].ZIndex < cards[j].ZIndex })
	return cards
}

func (s *Scene) RemoveNote(id int) bool {
	for i, n := range s.Notes {
		if n.Id == id {
			s.Notes = append(s.Notes[:i], s.Notes[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties both collections. Id counters keep running so ids from the
// cleared board are never reissued.
func (s *Scene) Clear() {
	s.Objects = nil
	s.Notes = nil
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (s *Scene) Clone() *Scene {
	cp := &Scene{
		nextObjectID: s.nextObjectID,
		nextNoteID:   s.nextNoteID,
		nextNoteZ:    s.nextNoteZ,
	}
	if len(s.Objects) > 0 {
		cp.Objects = make([]Object, len(s.Objects))
		for i, o := range s.Objects {
			cp.Objects[i] = o.Clone()
		}
	}
	if len(s.Notes) > 0 {
		cp.Notes = make([]*NoteCard, len(s.Notes))
		for i, n := range s.Notes {
			cp.Notes[i] = n.Clone()
		}
	}
	return cp
}

// SyncIDCounters recomputes the id sequences as max(existing)+1. Called after
// loading persisted state so future creations never collide with stored ids.
func (s *Scene) SyncIDCounters() {
	maxObj, maxNote, maxZ := 0, 0, 0
	for _, o := range s.Objects {
		if o.ID() > maxObj {
			maxObj = o.ID()
		}
	}
	for _, n := range s.Notes {
		if n.Id > maxNote {
			maxNote = n.Id
		}
		if n.ZIndex > maxZ {
			maxZ = n.ZIndex
		}
	}
	s.nextObjectID = maxObj + 1
	s.nextNoteID = maxNote + 1
	s.nextNoteZ = maxZ + 1
}
