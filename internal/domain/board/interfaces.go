package board

import (
	"context"
	"time"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
)

// Repository provides persistence operations for boards.
type Repository interface {
	Create(ctx context.Context, b *Board) error
	Get(ctx context.Context, id string) (*Board, error)
	UpdateTitle(ctx context.Context, id, title string, at time.Time) error
	// Delete removes the board; its lists and cards go with it.
	Delete(ctx context.Context, id string) error
}

// ListReader lists the lists of one board.
type ListReader interface {
	ListByBoard(ctx context.Context, boardID string) ([]list.List, error)
}

// CardReader lists every card on one board, ordered by list then position.
type CardReader interface {
	ListByBoard(ctx context.Context, boardID string) ([]card.Card, error)
}

// SnapshotStore persists board trees outside the database.
type SnapshotStore interface {
	// Save stores the tree and returns where it was written.
	Save(ctx context.Context, tree *Tree) (string, error)
	Load(ctx context.Context, boardID string) (*Tree, error)
}

// ActivityLogger records board events.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
