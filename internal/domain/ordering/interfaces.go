package ordering

import "context"

// Ledger applies bulk position updates scoped to a single container.
// Every method runs on the caller's transaction and reports the number of rows it shifted.
type Ledger interface {
	// ShiftUpFrom increments every position >= from.
	ShiftUpFrom(ctx context.Context, containerID string, from int) (int64, error)
	// CloseGapForward decrements every position in (from, to]. Requires from < to.
	CloseGapForward(ctx context.Context, containerID string, from, to int) (int64, error)
	// CloseGapBackward increments every position in [to, from). Requires to < from.
	CloseGapBackward(ctx context.Context, containerID string, from, to int) (int64, error)
}

// Store is the container/item capability set the engine needs, bound to one transaction.
type Store interface {
	Ledger

	// FindItem returns ErrItemNotFound when the item doesn't exist.
	FindItem(ctx context.Context, itemID string) (Placement, error)
	ContainerExists(ctx context.Context, containerID string) (bool, error)
	// MaxPosition reports false when the container holds no items.
	MaxPosition(ctx context.Context, containerID string) (int, bool, error)
	// Place writes the item's container and position.
	Place(ctx context.Context, p Placement) error
	Delete(ctx context.Context, itemID string) error
	// Positions lists the container's item positions in ascending order.
	Positions(ctx context.Context, containerID string) ([]int, error)
}

// TxRunner runs fn inside one transaction, committing only when fn returns nil.
type TxRunner[S Store] interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store S) error) error
}
