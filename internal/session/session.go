package session

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/inkboard/inkboard/backend-go/internal/board"
	"github.com/inkboard/inkboard/backend-go/internal/engine"
)

// framePeriod is the paint cadence. Input arriving between frames coalesces
// into a single compile.
const framePeriod = 16 * time.Millisecond

// DocStore is the persistence surface a session needs.
type DocStore interface {
	LoadDocument(ctx context.Context, boardID string) (board.File, error)
	SaveDocument(ctx context.Context, boardID string, doc board.File) error
}

// Session owns one engine and processes everything for it on one goroutine:
// client input, the frame ticker and autosave. The engine needs no locking
// because nothing else touches it.
type Session struct {
	boardID string
	eng     *engine.Engine
	store   DocStore
	client  *Client

	inbox     chan *Message
	done      chan struct{}
	closeOnce sync.Once

	autosaveEvery time.Duration
	lastSaved     []byte
}

// New loads the board's latest snapshot into a fresh engine. Load failures
// degrade to an empty board so the client can still draw.
func New(ctx context.Context, boardID string, store DocStore, autosaveEvery time.Duration) *Session {
	s := &Session{
		boardID:       boardID,
		eng:           engine.New(),
		store:         store,
		inbox:         make(chan *Message, 256),
		done:          make(chan struct{}),
		autosaveEvery: autosaveEvery,
	}

	doc, err := store.LoadDocument(ctx, boardID)
	if err != nil {
		slog.Warn("load board failed, starting empty", "board", boardID, "error", err)
		doc = board.New()
	}
	board.Apply(doc, s.eng)
	if buf, err := board.Marshal(board.Encode(s.eng)); err == nil {
		s.lastSaved = buf
	}
	return s
}

// Bind attaches the connected client the session streams frames to.
func (s *Session) Bind(c *Client) { s.client = c }

// Deliver queues a client message; a full inbox drops it.
func (s *Session) Deliver(msg *Message) {
	select {
	case s.inbox <- msg:
	default:
		slog.Warn("session inbox full, dropping message", "board", s.boardID)
	}
}

// Close stops the run loop; the final save happens there.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Run processes the session until the connection closes or the server shuts
// down. It always saves on the way out.
func (s *Session) Run(ctx context.Context) {
	frames := time.NewTicker(framePeriod)
	autosave := time.NewTicker(s.autosaveEvery)
	defer frames.Stop()
	defer autosave.Stop()

	s.sendWelcome()

	for {
		select {
		case msg := <-s.inbox:
			s.handleMessage(msg)

		case <-frames.C:
			if frame := s.eng.Tick(); frame != "" {
				s.client.Send(&Message{Type: TypeFrame, Payload: json.RawMessage(frame)})
			}

		case <-autosave.C:
			s.save(ctx)

		case <-s.done:
			s.save(context.Background())
			return

		case <-ctx.Done():
			s.save(context.Background())
			return
		}
	}
}

func (s *Session) sendWelcome() {
	payload, err := json.Marshal(WelcomePayload{
		BoardID: s.boardID,
		Frame:   json.RawMessage(s.eng.Render()),
	})
	if err != nil {
		return
	}
	s.client.Send(&Message{Type: TypeWelcome, Payload: payload})
}

// save writes a new snapshot version when the document changed since the
// last save. Errors are logged, never fatal to the session.
func (s *Session) save(ctx context.Context) {
	doc := board.Encode(s.eng)
	buf, err := board.Marshal(doc)
	if err != nil {
		slog.Error("encode board", "board", s.boardID, "error", err)
		return
	}
	if bytes.Equal(buf, s.lastSaved) {
		return
	}
	if err := s.store.SaveDocument(ctx, s.boardID, doc); err != nil {
		slog.Error("save board", "board", s.boardID, "error", err)
		return
	}
	s.lastSaved = buf
	slog.Debug("board saved", "board", s.boardID)
}

func (s *Session) handleMessage(msg *Message) {
	switch msg.Type {
	case TypeHello:
		var p HelloPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.SetViewport(p.Width, p.Height)
		}

	case TypePointer:
		var p PointerPayload
		if !unmarshal(msg.Payload, &p) {
			return
		}
		ev := engine.PointerEvent{X: p.X, Y: p.Y, Button: engine.Button(p.Button), PanModifier: p.PanModifier}
		switch p.Phase {
		case PhaseDown:
			s.eng.PointerDown(ev)
		case PhaseMove:
			s.eng.PointerMove(ev)
		case PhaseUp:
			s.eng.PointerUp(ev)
		case PhaseLeave:
			s.eng.PointerLeave()
		}

	case TypeWheel:
		var p WheelPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.Wheel(p.DeltaY, p.X, p.Y)
		}

	case TypePinch:
		var p PinchPayload
		if !unmarshal(msg.Payload, &p) {
			return
		}
		switch p.Phase {
		case PhaseStart:
			s.eng.PinchStart(p.X1, p.Y1, p.X2, p.Y2)
		case PhaseMove:
			s.eng.PinchMove(p.X1, p.Y1, p.X2, p.Y2)
		case PhaseEnd:
			s.eng.PinchEnd()
		}

	case TypeKey:
		var p KeyPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.KeyDown(p.Key, p.Ctrl, p.Shift)
		}

	case TypeDoubleClick:
		var p PointerPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.DoubleClick(engine.PointerEvent{X: p.X, Y: p.Y})
		}

	case TypeSetTool:
		var p SetToolPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.SetTool(engine.Tool(p.Tool))
		}

	case TypeSetColor:
		var p SetColorPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.SetColor(p.Color)
		}

	case TypeSetBrush:
		var p SetBrushPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.SetBrushSize(p.Size)
		}

	case TypeSetFont:
		var p SetFontPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.SetFontSize(p.Size)
		}

	case TypeAddNote:
		s.eng.AddNote()

	case TypeSetNoteText:
		var p NoteTextPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.SetNoteText(p.ID, p.Text)
		}

	case TypeTextCommit:
		var p TextCommitPayload
		if unmarshal(msg.Payload, &p) {
			s.eng.CommitTextEdit(p.Content)
		}

	case TypeTextCancel:
		s.eng.CancelTextEdit()

	case TypeClearBoard:
		s.eng.ClearBoard()

	case TypeUndo:
		s.eng.Undo()

	case TypeRedo:
		s.eng.Redo()

	case TypeResetView:
		s.eng.ResetView()

	default:
		slog.Warn("unknown message type", "type", msg.Type, "board", s.boardID)
	}
}

func unmarshal(data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("invalid payload", "error", err)
		return false
	}
	return true
}
