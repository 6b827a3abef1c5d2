// Package store implements board CRUD and the versioned snapshot store the
// remote sessions load from and save to.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/inkboard/inkboard/backend-go/internal/board"
	"github.com/inkboard/inkboard/backend-go/internal/db"
	"github.com/inkboard/inkboard/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("board not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	queries *db.Queries
}

func NewService(queries *db.Queries) *Service {
	return &Service{queries: queries}
}

type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Create makes a board and seeds version 1 with an empty document so a
// session always has a snapshot to load.
func (s *Service) Create(ctx context.Context, name, ownerID string) (*Board, error) {
	dbBoard, err := s.queries.CreateBoard(ctx, db.CreateBoardParams{
		ID:      typeid.NewBoardID(),
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	docJSON, err := board.Marshal(board.New())
	if err != nil {
		return nil, fmt.Errorf("marshal empty board: %w", err)
	}
	_, err = s.queries.CreateSnapshot(ctx, db.CreateSnapshotParams{
		ID:       typeid.NewSnapshotID(),
		BoardID:  dbBoard.ID,
		Version:  1,
		Document: docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) Get(ctx context.Context, boardID, userID string) (*Board, error) {
	dbBoard, err := s.getOwned(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Board, error) {
	dbBoards, err := s.queries.ListBoardsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	boards := make([]Board, len(dbBoards))
	for i, b := range dbBoards {
		boards[i] = *dbBoardToBoard(b)
	}
	return boards, nil
}

func (s *Service) Delete(ctx context.Context, boardID, userID string) error {
	if _, err := s.getOwned(ctx, boardID, userID); err != nil {
		return err
	}
	return s.queries.DeleteBoard(ctx, boardID)
}

// CheckAccess verifies the user owns the board, for the websocket endpoint.
func (s *Service) CheckAccess(ctx context.Context, boardID, userID string) error {
	_, err := s.getOwned(ctx, boardID, userID)
	return err
}

// GetLatestSnapshot returns the raw stored document for a board the user owns.
func (s *Service) GetLatestSnapshot(ctx context.Context, boardID, userID string) (json.RawMessage, error) {
	if _, err := s.getOwned(ctx, boardID, userID); err != nil {
		return nil, err
	}

	snap, err := s.queries.GetLatestSnapshot(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap.Document, nil
}

// LoadDocument fetches and decodes the latest snapshot without an ownership
// check; sessions authenticate before they are created.
func (s *Service) LoadDocument(ctx context.Context, boardID string) (board.File, error) {
	snap, err := s.queries.GetLatestSnapshot(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return board.File{}, ErrNotFound
		}
		return board.File{}, fmt.Errorf("get snapshot: %w", err)
	}
	return board.Unmarshal(snap.Document)
}

// SaveDocument writes the document as the next snapshot version.
func (s *Service) SaveDocument(ctx context.Context, boardID string, doc board.File) error {
	docJSON, err := board.Marshal(doc)
	if err != nil {
		return err
	}

	nextVersion := int32(1)
	if snap, err := s.queries.GetLatestSnapshot(ctx, boardID); err == nil {
		nextVersion = snap.Version + 1
	}

	_, err = s.queries.CreateSnapshot(ctx, db.CreateSnapshotParams{
		ID:       typeid.NewSnapshotID(),
		BoardID:  boardID,
		Version:  nextVersion,
		Document: docJSON,
	})
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if err := s.queries.TouchBoard(ctx, boardID); err != nil {
		return fmt.Errorf("touch board: %w", err)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, boardID, userID string) (db.Board, error) {
	dbBoard, err := s.queries.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Board{}, ErrNotFound
		}
		return db.Board{}, fmt.Errorf("get board: %w", err)
	}
	if dbBoard.OwnerID != userID {
		return db.Board{}, ErrForbidden
	}
	return dbBoard, nil
}

func dbBoardToBoard(b db.Board) *Board {
	return &Board{
		ID:        b.ID,
		Name:      b.Name,
		OwnerID:   b.OwnerID,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
