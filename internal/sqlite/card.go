package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/rpggio/kanbee/internal/repository"
)

const cardColumns = `c.id, c.list_id, c.title, c.description, c.position, c.created_at, c.updated_at`

// CardRepository implements card.Repository for SQLite
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

// CardTx is the card ledger bound to one transaction.
type CardTx struct {
	positionStore
}

// Create inserts a card at the position already resolved by the engine.
func (t *CardTx) Create(ctx context.Context, c *card.Card) error {
	query := `
		INSERT INTO cards (id, list_id, title, description, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := t.q.ExecContext(ctx, query,
		c.ID, c.ListID, c.Title, nullString(c.Description), c.Position, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ordering.ErrContainerNotFound
		}
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// WithinTx runs fn with a card ledger bound to a new transaction.
func (r *CardRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx card.Tx) error) error {
	return r.db.withinTx(ctx, func(tx *sql.Tx) error {
		return fn(ctx, &CardTx{positionStore: newPositionStore(tx, cardsTable)})
	})
}

// Get retrieves a card by ID
func (r *CardRepository) Get(ctx context.Context, id string) (*card.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards c WHERE c.id = ?`

	c, err := scanCard(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return c, nil
}

// ListByList returns a list's cards ordered by position
func (r *CardRepository) ListByList(ctx context.Context, listID string) ([]card.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards c WHERE c.list_id = ? ORDER BY c.position`
	return r.query(ctx, query, listID)
}

// ListByBoard returns every card on a board ordered by list position, then card position
func (r *CardRepository) ListByBoard(ctx context.Context, boardID string) ([]card.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards c
		JOIN board_lists l ON l.id = c.list_id
		WHERE l.board_id = ?
		ORDER BY l.position, c.position
	`
	return r.query(ctx, query, boardID)
}

// Update writes a card's title and description
func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cards SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		c.Title, nullString(c.Description), c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	return requireOneRow(result, repository.ErrNotFound)
}

// BoardIDOf returns the board owning a list
func (r *CardRepository) BoardIDOf(ctx context.Context, listID string) (string, error) {
	var boardID string
	err := r.db.QueryRowContext(ctx, `SELECT board_id FROM board_lists WHERE id = ?`, listID).Scan(&boardID)
	if err != nil {
		if isNoRows(err) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("failed to get board of list: %w", err)
	}
	return boardID, nil
}

func (r *CardRepository) query(ctx context.Context, query string, args ...any) ([]card.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []card.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}
	return cards, nil
}

func scanCard(row rowScanner) (*card.Card, error) {
	var (
		c    card.Card
		desc sql.NullString
	)
	if err := row.Scan(&c.ID, &c.ListID, &c.Title, &desc, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		c.Description = &desc.String
	}
	return &c, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
