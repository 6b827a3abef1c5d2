package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/inkboard/inkboard/backend-go/internal/auth"
	"github.com/inkboard/inkboard/backend-go/internal/config"
	"github.com/inkboard/inkboard/backend-go/internal/db"
	"github.com/inkboard/inkboard/backend-go/internal/export"
	mw "github.com/inkboard/inkboard/backend-go/internal/middleware"
	"github.com/inkboard/inkboard/backend-go/internal/session"
	"github.com/inkboard/inkboard/backend-go/internal/store"
)

// playgroundBoardID is open to anonymous connections; everything else needs
// a token and ownership.
const playgroundBoardID = "board_playground"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	queries := db.New(pool)

	if err := seedPlayground(ctx, queries); err != nil {
		slog.Error("seed playground board", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	boardService := store.NewService(queries)
	boardHandler := store.NewHandler(boardService)
	exportHandler := export.NewHandler(boardService)

	sessions := session.NewManager()
	autosaveEvery := time.Duration(cfg.AutosaveSeconds) * time.Second

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/boards", boardHandler.List).Methods("GET")
	api.HandleFunc("/boards", boardHandler.Create).Methods("POST")
	api.HandleFunc("/boards/{boardId}", boardHandler.Get).Methods("GET")
	api.HandleFunc("/boards/{boardId}", boardHandler.Delete).Methods("DELETE")
	api.HandleFunc("/boards/{boardId}/snapshots/latest", boardHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/boards/{boardId}/export.png", exportHandler.ExportPNG).Methods("GET")

	// WebSocket endpoint
	r.HandleFunc("/ws/board/{boardId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, boardService, authService, sessions, cfg, autosaveEvery)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close sessions first so every dirty board gets a final snapshot
		slog.Info("saving all boards...")
		sessions.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, boards *store.Service, authSvc *auth.Service, sessions *session.Manager, cfg *config.Config, autosaveEvery time.Duration) {
	vars := mux.Vars(r)
	boardID := vars["boardId"]

	var userID string

	// Playground board allows anonymous access
	if boardID == playgroundBoardID {
		userID = "anon-" + uuid.New().String()[:8]
	} else {
		// Auth via query param for real boards
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		var err error
		userID, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if err := boards.CheckAccess(r.Context(), boardID, userID); err != nil {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(cfg.AllowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	sess := session.New(r.Context(), boardID, boards, autosaveEvery)
	client := session.NewClient(conn, sess, userID, boardID)
	sess.Bind(client)

	sessions.Add(sess)
	defer sessions.Remove(sess)

	ctx := r.Context()
	go client.WritePump(ctx)
	go sess.Run(ctx)
	client.ReadPump(ctx)
}

// seedPlayground makes sure the anonymous board and its system owner exist
// so sessions can snapshot against them.
func seedPlayground(ctx context.Context, queries *db.Queries) error {
	if _, err := queries.GetBoard(ctx, playgroundBoardID); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("get playground board: %w", err)
	}

	const ownerID = "user_playground"
	if _, err := queries.GetUserByID(ctx, ownerID); errors.Is(err, pgx.ErrNoRows) {
		_, err = queries.CreateUser(ctx, db.CreateUserParams{
			ID:          ownerID,
			Email:       "playground@localhost",
			Password:    "!",
			DisplayName: "Playground",
		})
		if err != nil {
			return fmt.Errorf("create playground user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("get playground user: %w", err)
	}

	_, err := queries.CreateBoard(ctx, db.CreateBoardParams{
		ID:      playgroundBoardID,
		Name:    "Playground",
		OwnerID: ownerID,
	})
	if err != nil {
		return fmt.Errorf("create playground board: %w", err)
	}
	return nil
}

// originPatterns strips schemes from the configured origins for the
// websocket accept check.
func originPatterns(origins string) []string {
	var patterns []string
	for _, o := range strings.Split(origins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}
