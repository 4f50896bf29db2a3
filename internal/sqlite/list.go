package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/rpggio/kanbee/internal/repository"
)

const listColumns = `id, board_id, title, position, created_at, updated_at`

// ListRepository implements list.Repository for SQLite
type ListRepository struct {
	db *DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *DB) *ListRepository {
	return &ListRepository{db: db}
}

// ListTx is the list ledger bound to one transaction.
type ListTx struct {
	positionStore
}

// Create inserts a list at the position already resolved by the engine.
func (t *ListTx) Create(ctx context.Context, l *list.List) error {
	query := `
		INSERT INTO board_lists (id, board_id, title, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := t.q.ExecContext(ctx, query, l.ID, l.BoardID, l.Title, l.Position, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ordering.ErrContainerNotFound
		}
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// WithinTx runs fn with a list ledger bound to a new transaction.
func (r *ListRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx list.Tx) error) error {
	return r.db.withinTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &ListTx{positionStore: newPositionStore(tx, listsTable)})
	})
}

// Get retrieves a list by ID
func (r *ListRepository) Get(ctx context.Context, id string) (*list.List, error) {
	query := `SELECT ` + listColumns + ` FROM board_lists WHERE id = ?`

	l, err := scanList(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return l, nil
}

// ListByBoard returns a board's lists ordered by position
func (r *ListRepository) ListByBoard(ctx context.Context, boardID string) ([]list.List, error) {
	query := `SELECT ` + listColumns + ` FROM board_lists WHERE board_id = ? ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	lists := []list.List{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lists: %w", err)
	}
	return lists, nil
}

// UpdateTitle renames a list
func (r *ListRepository) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE board_lists SET title = ?, updated_at = ? WHERE id = ?`, title, at, id)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return requireOneRow(result, repository.ErrNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanList(row rowScanner) (*list.List, error) {
	var l list.List
	if err := row.Scan(&l.ID, &l.BoardID, &l.Title, &l.Position, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
