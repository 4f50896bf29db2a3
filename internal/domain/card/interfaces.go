package card

import (
	"context"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// Tx is the card store bound to one transaction.
type Tx interface {
	ordering.Store
	Create(ctx context.Context, c *Card) error
}

// Repository provides persistence operations for cards.
type Repository interface {
	Get(ctx context.Context, id string) (*Card, error)
	ListByList(ctx context.Context, listID string) ([]Card, error)
	Update(ctx context.Context, c *Card) error
	// BoardIDOf returns the board owning listID.
	BoardIDOf(ctx context.Context, listID string) (string, error)
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// ActivityLogger records card events.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
