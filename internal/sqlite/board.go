package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/repository"
)

// BoardRepository implements board.Repository for SQLite
type BoardRepository struct {
	db *DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts a new board
func (r *BoardRepository) Create(ctx context.Context, b *board.Board) error {
	query := `
		INSERT INTO boards (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, b.ID, b.Title, b.CreatedAt, b.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	return nil
}

// Get retrieves a board by ID
func (r *BoardRepository) Get(ctx context.Context, id string) (*board.Board, error) {
	query := `SELECT id, title, created_at, updated_at FROM boards WHERE id = ?`

	var b board.Board
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	return &b, nil
}

// UpdateTitle renames a board
func (r *BoardRepository) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE boards SET title = ?, updated_at = ? WHERE id = ?`, title, at, id)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}
	return requireOneRow(result, repository.ErrNotFound)
}

// Delete removes a board; lists and cards cascade
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return requireOneRow(result, repository.ErrNotFound)
}
