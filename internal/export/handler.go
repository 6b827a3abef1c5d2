package export

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inkboard/inkboard/backend-go/internal/auth"
	"github.com/inkboard/inkboard/backend-go/internal/board"
	"github.com/inkboard/inkboard/backend-go/internal/store"
)

const (
	defaultExportW = 1920
	defaultExportH = 1080
	maxExportDim   = 8192
)

type Handler struct {
	store *store.Service
}

func NewHandler(s *store.Service) *Handler {
	return &Handler{store: s}
}

// ExportPNG renders the board's latest snapshot as a PNG. Width and height
// come from query params, clamped to sane bounds.
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	boardID := mux.Vars(r)["boardId"]

	doc, err := h.store.GetLatestSnapshot(r.Context(), boardID, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, store.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			slog.Error("export snapshot fetch", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	f, err := board.Unmarshal(doc)
	if err != nil {
		slog.Error("export decode", "board", boardID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	width := dimParam(r, "width", defaultExportW)
	height := dimParam(r, "height", defaultExportH)

	w.Header().Set("Content-Type", "image/png")
	if err := EncodePNG(w, f, width, height); err != nil {
		slog.Error("export render", "board", boardID, "error", err)
	}
}

func dimParam(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return fallback
	}
	if v > maxExportDim {
		return maxExportDim
	}
	return v
}
