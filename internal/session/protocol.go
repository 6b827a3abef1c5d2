// Package session runs the engine server-side: each websocket connection
// gets a session that owns one engine, funnels all client input through a
// single goroutine, streams compiled frames back and autosaves snapshots.
package session

import "encoding/json"

// Message is the envelope for both directions on the wire.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client to server.
const (
	TypeHello       = "hello"
	TypePointer     = "input.pointer"
	TypeWheel       = "input.wheel"
	TypePinch       = "input.pinch"
	TypeKey         = "input.key"
	TypeDoubleClick = "input.dblclick"
	TypeSetTool     = "tool.set"
	TypeSetColor    = "color.set"
	TypeSetBrush    = "brush.set"
	TypeSetFont     = "font.set"
	TypeAddNote     = "note.add"
	TypeSetNoteText = "note.text"
	TypeTextCommit  = "text.commit"
	TypeTextCancel  = "text.cancel"
	TypeClearBoard  = "board.clear"
	TypeUndo        = "undo"
	TypeRedo        = "redo"
	TypeResetView   = "view.reset"
)

// Server to client.
const (
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
)

// Pointer gesture phases.
const (
	PhaseDown  = "down"
	PhaseMove  = "move"
	PhaseUp    = "up"
	PhaseLeave = "leave"
	PhaseStart = "start"
	PhaseEnd   = "end"
)

type HelloPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PointerPayload struct {
	Phase       string  `json:"phase"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Button      int     `json:"button"`
	PanModifier bool    `json:"panModifier"`
}

type WheelPayload struct {
	DeltaY float64 `json:"deltaY"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type PinchPayload struct {
	Phase string  `json:"phase"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
}

type KeyPayload struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
}

type SetToolPayload struct {
	Tool string `json:"tool"`
}

type SetColorPayload struct {
	Color string `json:"color"`
}

type SetBrushPayload struct {
	Size float64 `json:"size"`
}

type SetFontPayload struct {
	Size float64 `json:"size"`
}

type NoteTextPayload struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type TextCommitPayload struct {
	Content string `json:"content"`
}

type WelcomePayload struct {
	BoardID string          `json:"boardId"`
	Frame   json.RawMessage `json:"frame"`
}
