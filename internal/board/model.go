// Package board defines the persisted board document: a flat JSON union of
// the engine's drawable variants plus note cards, camera and toolbar state.
// The same format is stored in snapshots and exchanged with hosts.
package board

import (
	"encoding/json"
	"fmt"

	"github.com/inkboard/inkboard/backend-go/internal/engine"
)

// CurrentVersion is written into every encoded file. Decoding accepts any
// version at or below it.
const CurrentVersion = 1

// ObjectRecord is the flat union of all drawable variants, discriminated by
// Kind. Fields not used by a variant stay at their zero value.
type ObjectRecord struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`

	Points []engine.Point `json:"points,omitempty"`

	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
	W  float64 `json:"w,omitempty"`
	H  float64 `json:"h,omitempty"`
	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`
	RX float64 `json:"rx,omitempty"`
	RY float64 `json:"ry,omitempty"`

	Color    string  `json:"color,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Opacity  float64 `json:"opacity,omitempty"`
	Content  string  `json:"content,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// NoteRecord is the persisted form of a note card.
type NoteRecord struct {
	ID         int     `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
	Text       string  `json:"text,omitempty"`
	ColorIndex int     `json:"colorIndex"`
	ZIndex     int     `json:"zIndex"`
}

// File is the complete persisted board document.
type File struct {
	Version     int             `json:"version"`
	Objects     []ObjectRecord  `json:"objects"`
	NoteCards   []NoteRecord    `json:"noteCards"`
	Camera      engine.Camera   `json:"camera"`
	ActiveColor string          `json:"activeColor,omitempty"`
	BrushSize   float64         `json:"brushSize,omitempty"`
	ActiveTool  string          `json:"activeTool,omitempty"`
}

// New returns an empty document at the current version with an identity
// camera, suitable as the first snapshot of a fresh board.
func New() File {
	return File{
		Version:   CurrentVersion,
		Objects:   []ObjectRecord{},
		NoteCards: []NoteRecord{},
		Camera:    engine.NewCamera(),
	}
}

// Encode captures an engine's full persistable state.
func Encode(e *engine.Engine) File {
	f := File{
		Version:     CurrentVersion,
		Objects:     make([]ObjectRecord, 0, len(e.Objects())),
		NoteCards:   make([]NoteRecord, 0, len(e.Notes())),
		Camera:      e.Camera(),
		ActiveColor: e.ActiveColor(),
		BrushSize:   e.BrushSize(),
		ActiveTool:  string(e.Tool()),
	}
	for _, o := range e.Objects() {
		f.Objects = append(f.Objects, recordFor(o))
	}
	for _, n := range e.Notes() {
		f.NoteCards = append(f.NoteCards, NoteRecord{
			ID: n.Id, X: n.X, Y: n.Y, W: n.W, H: n.H,
			Text: n.Text, ColorIndex: n.ColorIndex, ZIndex: n.ZIndex,
		})
	}
	return f
}

func recordFor(o engine.Object) ObjectRecord {
	switch v := o.(type) {
	case *engine.Stroke:
		return ObjectRecord{
			ID: v.Id, Kind: string(engine.KindStroke), Points: v.Points,
			Color: v.Color, Width: v.Width, Opacity: v.Opacity,
		}
	case *engine.Line:
		return ObjectRecord{
			ID: v.Id, Kind: string(engine.KindLine),
			X: v.X1, Y: v.Y1, X2: v.X2, Y2: v.Y2,
			Color: v.Color, Width: v.Width,
		}
	case *engine.Rectangle:
		return ObjectRecord{
			ID: v.Id, Kind: string(engine.KindRect),
			X: v.X, Y: v.Y, W: v.W, H: v.H,
			Color: v.Color, Width: v.Width,
		}
	case *engine.Ellipse:
		return ObjectRecord{
			ID: v.Id, Kind: string(engine.KindEllipse),
			X: v.CX, Y: v.CY, RX: v.RX, RY: v.RY,
			Color: v.Color, Width: v.Width,
		}
	case *engine.Text:
		return ObjectRecord{
			ID: v.Id, Kind: string(engine.KindText),
			X: v.X, Y: v.Y, Content: v.Content,
			Color: v.Color, FontSize: v.FontSize,
		}
	}
	return ObjectRecord{}
}

// objectFor rebuilds the engine variant from a record. Unknown kinds return
// nil so newer documents load with those entries skipped rather than failing.
func objectFor(r ObjectRecord) engine.Object {
	switch engine.Kind(r.Kind) {
	case engine.KindStroke:
		return &engine.Stroke{
			Id: r.ID, Points: append([]engine.Point(nil), r.Points...),
			Color: r.Color, Width: r.Width, Opacity: r.Opacity,
		}
	case engine.KindLine:
		return &engine.Line{
			Id: r.ID, X1: r.X, Y1: r.Y, X2: r.X2, Y2: r.Y2,
			Color: r.Color, Width: r.Width,
		}
	case engine.KindRect:
		return &engine.Rectangle{
			Id: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H,
			Color: r.Color, Width: r.Width,
		}
	case engine.KindEllipse:
		return &engine.Ellipse{
			Id: r.ID, CX: r.X, CY: r.Y, RX: r.RX, RY: r.RY,
			Color: r.Color, Width: r.Width,
		}
	case engine.KindText:
		return &engine.Text{
			Id: r.ID, X: r.X, Y: r.Y, Content: r.Content,
			Color: r.Color, FontSize: r.FontSize,
		}
	}
	return nil
}

// Marshal serializes a document to its stored JSON form.
func Marshal(f File) ([]byte, error) {
	buf, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return buf, nil
}

// Unmarshal parses a stored document. Structural JSON errors and documents
// from a future version fail; missing fields get defaults.
func Unmarshal(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("unmarshal board: %w", err)
	}
	if f.Version == 0 {
		f.Version = 1
	}
	if f.Version > CurrentVersion {
		return File{}, fmt.Errorf("unsupported board version %d", f.Version)
	}
	if f.Camera.Scale == 0 {
		f.Camera = engine.NewCamera()
	}
	return f, nil
}

// Apply loads a document into an engine, replacing its state. Records with
// unknown kinds are skipped and id counters are recomputed from the loaded
// content.
func Apply(f File, e *engine.Engine) {
	objects := make([]engine.Object, 0, len(f.Objects))
	for _, r := range f.Objects {
		if o := objectFor(r); o != nil {
			objects = append(objects, o)
		}
	}
	notes := make([]*engine.NoteCard, 0, len(f.NoteCards))
	for _, r := range f.NoteCards {
		notes = append(notes, &engine.NoteCard{
			Id: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H,
			Text: r.Text, ColorIndex: r.ColorIndex, ZIndex: r.ZIndex,
		})
	}
	e.Restore(objects, notes, f.Camera, f.ActiveColor, f.BrushSize, engine.Tool(f.ActiveTool))
}
