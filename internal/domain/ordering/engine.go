package ordering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// maxLockAttempts bounds how often an operation re-locks when its item
// changes container between lookup and lock acquisition.
const maxLockAttempts = 3

// PersistFunc writes a new item at the resolved position on the insert transaction.
type PersistFunc[S Store] func(ctx context.Context, store S, position int) error

// Engine keeps every container's positions dense under insert, move and remove.
// Mutations on one container are serialized by an in-process lock taken before
// the transaction opens.
type Engine[S Store] struct {
	tx     TxRunner[S]
	locks  *Locks
	logger *slog.Logger
}

// NewEngine creates an engine running its transactions through tx.
func NewEngine[S Store](tx TxRunner[S], logger *slog.Logger) *Engine[S] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine[S]{tx: tx, locks: NewLocks(), logger: logger}
}

// Insert places a new item into containerID. A nil requested position appends.
func (e *Engine[S]) Insert(ctx context.Context, itemID, containerID string, requested *int, persist PersistFunc[S]) (Placement, error) {
	if requested != nil && *requested < 0 {
		return Placement{}, ErrInvalidPosition
	}

	unlock := e.locks.Lock(containerID)
	defer unlock()

	var placed Placement
	err := e.tx.WithinTx(ctx, func(ctx context.Context, s S) error {
		if err := e.requireContainer(ctx, s, containerID); err != nil {
			return err
		}
		maxPos, hasItems, err := s.MaxPosition(ctx, containerID)
		if err != nil {
			return fmt.Errorf("reading max position: %w", err)
		}

		pos := ResolveInsert(maxPos, hasItems, requested)
		if hasItems && pos <= maxPos {
			if _, err := s.ShiftUpFrom(ctx, containerID, pos); err != nil {
				return fmt.Errorf("opening slot %d: %w", pos, err)
			}
		}
		if err := persist(ctx, s, pos); err != nil {
			return err
		}
		if err := e.verify(ctx, s, containerID); err != nil {
			return err
		}

		placed = Placement{ItemID: itemID, ContainerID: containerID, Position: pos}
		return nil
	})
	if err != nil {
		return Placement{}, err
	}

	e.logger.Debug("item inserted", "item_id", itemID, "container_id", containerID, "position", placed.Position)
	return placed, nil
}

// Move dispatches to MoveWithin when targetContainerID is empty and to MoveAcross otherwise.
func (e *Engine[S]) Move(ctx context.Context, itemID, targetContainerID string, requested int) (Placement, error) {
	if targetContainerID == "" {
		return e.MoveWithin(ctx, itemID, requested)
	}
	return e.MoveAcross(ctx, itemID, targetContainerID, requested)
}

// MoveWithin reorders an item inside its current container. Requests past the
// end are clamped to the last slot.
func (e *Engine[S]) MoveWithin(ctx context.Context, itemID string, requested int) (Placement, error) {
	if requested < 0 {
		return Placement{}, ErrInvalidPosition
	}
	return e.withItemLocked(ctx, itemID, "", func(ctx context.Context, s S, cur Placement) (Placement, error) {
		return e.moveWithin(ctx, s, cur, requested)
	})
}

// MoveAcross transfers an item to another container, closing the gap it leaves behind.
// When the target is the item's own container it behaves like MoveWithin.
func (e *Engine[S]) MoveAcross(ctx context.Context, itemID, targetContainerID string, requested int) (Placement, error) {
	if requested < 0 {
		return Placement{}, ErrInvalidPosition
	}
	return e.withItemLocked(ctx, itemID, targetContainerID, func(ctx context.Context, s S, cur Placement) (Placement, error) {
		if cur.ContainerID == targetContainerID {
			return e.moveWithin(ctx, s, cur, requested)
		}
		return e.moveAcross(ctx, s, cur, targetContainerID, requested)
	})
}

// Remove deletes an item and shifts every later sibling back by one.
func (e *Engine[S]) Remove(ctx context.Context, itemID string) (Placement, error) {
	return e.withItemLocked(ctx, itemID, "", func(ctx context.Context, s S, cur Placement) (Placement, error) {
		maxPos, _, err := s.MaxPosition(ctx, cur.ContainerID)
		if err != nil {
			return Placement{}, fmt.Errorf("reading max position: %w", err)
		}
		if err := s.Delete(ctx, cur.ItemID); err != nil {
			return Placement{}, fmt.Errorf("deleting item: %w", err)
		}
		if err := e.compact(ctx, s, cur.ContainerID, cur.Position, maxPos); err != nil {
			return Placement{}, err
		}
		if err := e.verify(ctx, s, cur.ContainerID); err != nil {
			return Placement{}, err
		}
		e.logger.Debug("item removed", "item_id", cur.ItemID, "container_id", cur.ContainerID, "position", cur.Position)
		return cur, nil
	})
}

func (e *Engine[S]) moveWithin(ctx context.Context, s S, cur Placement, requested int) (Placement, error) {
	if requested == cur.Position {
		return cur, nil
	}
	maxPos, _, err := s.MaxPosition(ctx, cur.ContainerID)
	if err != nil {
		return Placement{}, fmt.Errorf("reading max position: %w", err)
	}

	newPos := ResolveMove(maxPos, requested)
	if newPos == cur.Position {
		return cur, nil
	}

	if newPos > cur.Position {
		_, err = s.CloseGapForward(ctx, cur.ContainerID, cur.Position, newPos)
	} else {
		_, err = s.CloseGapBackward(ctx, cur.ContainerID, cur.Position, newPos)
	}
	if err != nil {
		return Placement{}, fmt.Errorf("shifting siblings: %w", err)
	}

	next := Placement{ItemID: cur.ItemID, ContainerID: cur.ContainerID, Position: newPos}
	if err := s.Place(ctx, next); err != nil {
		return Placement{}, fmt.Errorf("placing item: %w", err)
	}
	if err := e.verify(ctx, s, cur.ContainerID); err != nil {
		return Placement{}, err
	}

	e.logger.Debug("item moved", "item_id", cur.ItemID, "container_id", cur.ContainerID, "from", cur.Position, "to", newPos)
	return next, nil
}

func (e *Engine[S]) moveAcross(ctx context.Context, s S, cur Placement, targetID string, requested int) (Placement, error) {
	if err := e.requireContainer(ctx, s, targetID); err != nil {
		return Placement{}, err
	}

	srcMax, _, err := s.MaxPosition(ctx, cur.ContainerID)
	if err != nil {
		return Placement{}, fmt.Errorf("reading source max position: %w", err)
	}
	if err := e.compact(ctx, s, cur.ContainerID, cur.Position, srcMax); err != nil {
		return Placement{}, err
	}

	dstMax, hasItems, err := s.MaxPosition(ctx, targetID)
	if err != nil {
		return Placement{}, fmt.Errorf("reading target max position: %w", err)
	}
	pos := ResolveInsert(dstMax, hasItems, &requested)
	if hasItems && pos <= dstMax {
		if _, err := s.ShiftUpFrom(ctx, targetID, pos); err != nil {
			return Placement{}, fmt.Errorf("opening slot %d: %w", pos, err)
		}
	}

	next := Placement{ItemID: cur.ItemID, ContainerID: targetID, Position: pos}
	if err := s.Place(ctx, next); err != nil {
		return Placement{}, fmt.Errorf("placing item: %w", err)
	}
	if err := e.verify(ctx, s, cur.ContainerID); err != nil {
		return Placement{}, err
	}
	if err := e.verify(ctx, s, targetID); err != nil {
		return Placement{}, err
	}

	e.logger.Debug("item moved across",
		"item_id", cur.ItemID,
		"from_container", cur.ContainerID,
		"from", cur.Position,
		"to_container", targetID,
		"to", pos,
	)
	return next, nil
}

// withItemLocked resolves the item's container, locks it (and extra, if set),
// then runs fn in a transaction against a fresh read of the item. The item is
// looked up again under the lock; if it moved meanwhile the attempt is retried.
func (e *Engine[S]) withItemLocked(ctx context.Context, itemID, extra string, fn func(ctx context.Context, s S, cur Placement) (Placement, error)) (Placement, error) {
	for attempt := 1; attempt <= maxLockAttempts; attempt++ {
		seen, err := e.find(ctx, itemID)
		if err != nil {
			return Placement{}, err
		}

		keys := []string{seen.ContainerID}
		if extra != "" {
			keys = append(keys, extra)
		}
		unlock := e.locks.Lock(keys...)

		var (
			result  Placement
			shifted bool
		)
		err = e.tx.WithinTx(ctx, func(ctx context.Context, s S) error {
			cur, err := s.FindItem(ctx, itemID)
			if err != nil {
				return err
			}
			if cur.ContainerID != seen.ContainerID {
				shifted = true
				return nil
			}
			result, err = fn(ctx, s, cur)
			return err
		})
		unlock()

		if err != nil {
			return Placement{}, err
		}
		if !shifted {
			return result, nil
		}
		e.logger.Debug("item changed container before lock, retrying", "item_id", itemID, "attempt", attempt)
	}
	return Placement{}, fmt.Errorf("%w: %s", ErrConcurrentModification, itemID)
}

func (e *Engine[S]) find(ctx context.Context, itemID string) (Placement, error) {
	var found Placement
	err := e.tx.WithinTx(ctx, func(ctx context.Context, s S) error {
		var err error
		found, err = s.FindItem(ctx, itemID)
		return err
	})
	return found, err
}

func (e *Engine[S]) requireContainer(ctx context.Context, s S, containerID string) error {
	ok, err := s.ContainerExists(ctx, containerID)
	if err != nil {
		return fmt.Errorf("checking container: %w", err)
	}
	if !ok {
		return ErrContainerNotFound
	}
	return nil
}

// compact closes the hole left at vacated by shifting (vacated, maxPos] back by one.
func (e *Engine[S]) compact(ctx context.Context, s S, containerID string, vacated, maxPos int) error {
	if maxPos <= vacated {
		return nil
	}
	if _, err := s.CloseGapForward(ctx, containerID, vacated, maxPos); err != nil {
		return fmt.Errorf("closing gap at %d: %w", vacated, err)
	}
	return nil
}

func (e *Engine[S]) verify(ctx context.Context, s S, containerID string) error {
	positions, err := s.Positions(ctx, containerID)
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}
	if err := CheckDense(positions); err != nil {
		e.logger.Error("position invariant violated", "container_id", containerID, "positions", positions, "error", err)
		return err
	}
	return nil
}

// IsNotFound reports whether err means the item or container is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) || errors.Is(err, ErrContainerNotFound)
}
