package list

import (
	"context"
	"time"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// Tx is the list store bound to one transaction.
type Tx interface {
	ordering.Store
	Create(ctx context.Context, l *List) error
}

// Repository provides persistence operations for lists.
type Repository interface {
	Get(ctx context.Context, id string) (*List, error)
	ListByBoard(ctx context.Context, boardID string) ([]List, error)
	UpdateTitle(ctx context.Context, id, title string, at time.Time) error
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// CardReader lists the cards of one list.
type CardReader interface {
	ListByList(ctx context.Context, listID string) ([]card.Card, error)
}

// ActivityLogger records list events.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
