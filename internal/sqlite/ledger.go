package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// orderedTable names a table of positioned rows and the table owning them.
// Names are compile-time constants, never user input.
type orderedTable struct {
	name            string
	containerColumn string
	containerTable  string
}

var (
	listsTable = orderedTable{name: "board_lists", containerColumn: "board_id", containerTable: "boards"}
	cardsTable = orderedTable{name: "cards", containerColumn: "list_id", containerTable: "board_lists"}
)

// positionStore implements ordering.Store for one orderedTable on one transaction.
type positionStore struct {
	q     querier
	table orderedTable
}

func newPositionStore(q querier, table orderedTable) positionStore {
	return positionStore{q: q, table: table}
}

// ShiftUpFrom opens a slot at from.
func (s positionStore) ShiftUpFrom(ctx context.Context, containerID string, from int) (int64, error) {
	query := fmt.Sprintf(`UPDATE %s SET position = position + 1 WHERE %s = ? AND position >= ?`,
		s.table.name, s.table.containerColumn)
	return s.exec(ctx, query, containerID, from)
}

// CloseGapForward pulls (from, to] back by one.
func (s positionStore) CloseGapForward(ctx context.Context, containerID string, from, to int) (int64, error) {
	if from >= to {
		return 0, fmt.Errorf("%w: forward range (%d, %d]", ordering.ErrInvalidRange, from, to)
	}
	query := fmt.Sprintf(`UPDATE %s SET position = position - 1 WHERE %s = ? AND position > ? AND position <= ?`,
		s.table.name, s.table.containerColumn)
	return s.exec(ctx, query, containerID, from, to)
}

// CloseGapBackward pushes [to, from) forward by one.
func (s positionStore) CloseGapBackward(ctx context.Context, containerID string, from, to int) (int64, error) {
	if to >= from {
		return 0, fmt.Errorf("%w: backward range [%d, %d)", ordering.ErrInvalidRange, to, from)
	}
	query := fmt.Sprintf(`UPDATE %s SET position = position + 1 WHERE %s = ? AND position >= ? AND position < ?`,
		s.table.name, s.table.containerColumn)
	return s.exec(ctx, query, containerID, to, from)
}

func (s positionStore) exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		if isCheckViolation(err) {
			return 0, fmt.Errorf("%w: %v", ordering.ErrInvariantViolation, err)
		}
		return 0, fmt.Errorf("failed to shift positions in %s: %w", s.table.name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func (s positionStore) FindItem(ctx context.Context, itemID string) (ordering.Placement, error) {
	query := fmt.Sprintf(`SELECT id, %s, position FROM %s WHERE id = ?`, s.table.containerColumn, s.table.name)

	var p ordering.Placement
	err := s.q.QueryRowContext(ctx, query, itemID).Scan(&p.ItemID, &p.ContainerID, &p.Position)
	if err != nil {
		if isNoRows(err) {
			return ordering.Placement{}, ordering.ErrItemNotFound
		}
		return ordering.Placement{}, fmt.Errorf("failed to find %s row: %w", s.table.name, err)
	}
	return p, nil
}

func (s positionStore) ContainerExists(ctx context.Context, containerID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)`, s.table.containerTable)

	var exists bool
	if err := s.q.QueryRowContext(ctx, query, containerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", s.table.containerTable, err)
	}
	return exists, nil
}

func (s positionStore) MaxPosition(ctx context.Context, containerID string) (int, bool, error) {
	query := fmt.Sprintf(`SELECT MAX(position) FROM %s WHERE %s = ?`, s.table.name, s.table.containerColumn)

	var maxPos sql.NullInt64
	if err := s.q.QueryRowContext(ctx, query, containerID).Scan(&maxPos); err != nil {
		return 0, false, fmt.Errorf("failed to read max position: %w", err)
	}
	if !maxPos.Valid {
		return 0, false, nil
	}
	return int(maxPos.Int64), true, nil
}

func (s positionStore) Place(ctx context.Context, p ordering.Placement) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = ?, position = ?, updated_at = ? WHERE id = ?`,
		s.table.name, s.table.containerColumn)

	result, err := s.q.ExecContext(ctx, query, p.ContainerID, p.Position, time.Now().UTC(), p.ItemID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ordering.ErrContainerNotFound
		}
		return fmt.Errorf("failed to place %s row: %w", s.table.name, err)
	}
	return requireOneRow(result, ordering.ErrItemNotFound)
}

func (s positionStore) Delete(ctx context.Context, itemID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table.name)

	result, err := s.q.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete %s row: %w", s.table.name, err)
	}
	return requireOneRow(result, ordering.ErrItemNotFound)
}

func (s positionStore) Positions(ctx context.Context, containerID string) ([]int, error) {
	query := fmt.Sprintf(`SELECT position FROM %s WHERE %s = ? ORDER BY position`, s.table.name, s.table.containerColumn)

	rows, err := s.q.QueryContext(ctx, query, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, nil
}
