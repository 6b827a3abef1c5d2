package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Queries struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Board struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Snapshot struct {
	ID        string
	BoardID   string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
}

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password, display_name, created_at`,
		arg.ID, arg.Email, arg.Password, arg.DisplayName)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE email = $1`,
		email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at FROM users WHERE id = $1`,
		id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

type CreateBoardParams struct {
	ID      string
	Name    string
	OwnerID string
}

func (q *Queries) CreateBoard(ctx context.Context, arg CreateBoardParams) (Board, error) {
	row := q.pool.QueryRow(ctx,
		`INSERT INTO boards (id, name, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, owner_id, created_at, updated_at`,
		arg.ID, arg.Name, arg.OwnerID)
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (q *Queries) GetBoard(ctx context.Context, id string) (Board, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, created_at, updated_at FROM boards WHERE id = $1`,
		id)
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (q *Queries) ListBoardsForOwner(ctx context.Context, ownerID string) ([]Board, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT id, name, owner_id, created_at, updated_at
		 FROM boards WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []Board
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (q *Queries) DeleteBoard(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	return err
}

func (q *Queries) TouchBoard(ctx context.Context, id string) error {
	_, err := q.pool.Exec(ctx, `UPDATE boards SET updated_at = now() WHERE id = $1`, id)
	return err
}

type CreateSnapshotParams struct {
	ID       string
	BoardID  string
	Version  int32
	Document json.RawMessage
}

func (q *Queries) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (Snapshot, error) {
	row := q.pool.QueryRow(ctx,
		`INSERT INTO board_snapshots (id, board_id, version, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, board_id, version, document, created_at`,
		arg.ID, arg.BoardID, arg.Version, arg.Document)
	var s Snapshot
	err := row.Scan(&s.ID, &s.BoardID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}

func (q *Queries) GetLatestSnapshot(ctx context.Context, boardID string) (Snapshot, error) {
	row := q.pool.QueryRow(ctx,
		`SELECT id, board_id, version, document, created_at
		 FROM board_snapshots WHERE board_id = $1
		 ORDER BY version DESC LIMIT 1`,
		boardID)
	var s Snapshot
	err := row.Scan(&s.ID, &s.BoardID, &s.Version, &s.Document, &s.CreatedAt)
	return s, err
}
