package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// seedCards fills list l1 on board b1 with cards a..e at positions 0..4, and an
// unrelated list l2 holding x at 0.
func seedCards(t *testing.T) *DB {
	t.Helper()
	db := NewTestDB(t)
	insertBoard(t, db, "b1")
	insertList(t, db, "l1", "b1", 0)
	insertList(t, db, "l2", "b1", 1)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		insertCard(t, db, id, "l1", i)
	}
	insertCard(t, db, "x", "l2", 0)
	return db
}

func withCardStore(t *testing.T, db *DB, fn func(ctx context.Context, s positionStore)) {
	t.Helper()
	ctx := context.Background()
	err := db.withinTx(ctx, func(tx *sql.Tx) error {
		fn(ctx, newPositionStore(tx, cardsTable))
		return nil
	})
	require.NoError(t, err)
}

func TestLedger_ShiftUpFrom(t *testing.T) {
	db := seedCards(t)

	withCardStore(t, db, func(ctx context.Context, s positionStore) {
		n, err := s.ShiftUpFrom(ctx, "l1", 2)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)

		positions, err := s.Positions(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 3, 4, 5}, positions)

		other, err := s.Positions(ctx, "l2")
		require.NoError(t, err)
		require.Equal(t, []int{0}, other)
	})
}

func TestLedger_CloseGapForward(t *testing.T) {
	db := seedCards(t)

	withCardStore(t, db, func(ctx context.Context, s positionStore) {
		n, err := s.CloseGapForward(ctx, "l1", 1, 3)
		require.NoError(t, err)
		require.Equal(t, int64(2), n)

		p, err := s.FindItem(ctx, "c")
		require.NoError(t, err)
		require.Equal(t, 1, p.Position)
		p, err = s.FindItem(ctx, "d")
		require.NoError(t, err)
		require.Equal(t, 2, p.Position)
		p, err = s.FindItem(ctx, "e")
		require.NoError(t, err)
		require.Equal(t, 4, p.Position)

		_, err = s.CloseGapForward(ctx, "l1", 3, 3)
		require.ErrorIs(t, err, ordering.ErrInvalidRange)
	})
}

func TestLedger_CloseGapBackward(t *testing.T) {
	db := seedCards(t)

	withCardStore(t, db, func(ctx context.Context, s positionStore) {
		n, err := s.CloseGapBackward(ctx, "l1", 3, 0)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)

		positions, err := s.Positions(ctx, "l1")
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3, 3, 4}, positions)

		_, err = s.CloseGapBackward(ctx, "l1", 0, 2)
		require.ErrorIs(t, err, ordering.ErrInvalidRange)
	})
}

func TestLedger_Lookups(t *testing.T) {
	db := seedCards(t)

	withCardStore(t, db, func(ctx context.Context, s positionStore) {
		p, err := s.FindItem(ctx, "b")
		require.NoError(t, err)
		require.Equal(t, ordering.Placement{ItemID: "b", ContainerID: "l1", Position: 1}, p)

		_, err = s.FindItem(ctx, "missing")
		require.ErrorIs(t, err, ordering.ErrItemNotFound)

		ok, err := s.ContainerExists(ctx, "l2")
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = s.ContainerExists(ctx, "l9")
		require.NoError(t, err)
		require.False(t, ok)

		maxPos, has, err := s.MaxPosition(ctx, "l1")
		require.NoError(t, err)
		require.True(t, has)
		require.Equal(t, 4, maxPos)

		_, has, err = s.MaxPosition(ctx, "empty")
		require.NoError(t, err)
		require.False(t, has)
	})
}

func TestLedger_PlaceAndDelete(t *testing.T) {
	db := seedCards(t)

	withCardStore(t, db, func(ctx context.Context, s positionStore) {
		require.NoError(t, s.Place(ctx, ordering.Placement{ItemID: "e", ContainerID: "l2", Position: 1}))
		p, err := s.FindItem(ctx, "e")
		require.NoError(t, err)
		require.Equal(t, "l2", p.ContainerID)

		err = s.Place(ctx, ordering.Placement{ItemID: "e", ContainerID: "l9", Position: 0})
		require.ErrorIs(t, err, ordering.ErrContainerNotFound)

		err = s.Place(ctx, ordering.Placement{ItemID: "ghost", ContainerID: "l1", Position: 0})
		require.ErrorIs(t, err, ordering.ErrItemNotFound)

		require.NoError(t, s.Delete(ctx, "a"))
		require.ErrorIs(t, s.Delete(ctx, "a"), ordering.ErrItemNotFound)
	})
}

func TestLedger_RollbackOnError(t *testing.T) {
	db := seedCards(t)
	ctx := context.Background()

	err := db.withinTx(ctx, func(tx *sql.Tx) error {
		s := newPositionStore(tx, cardsTable)
		if _, err := s.ShiftUpFrom(ctx, "l1", 0); err != nil {
			return err
		}
		return ordering.ErrInvariantViolation
	})
	require.ErrorIs(t, err, ordering.ErrInvariantViolation)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, cardOrder(t, db, "l1"))

	var first int
	require.NoError(t, db.QueryRow(`SELECT position FROM cards WHERE id = 'a'`).Scan(&first))
	require.Equal(t, 0, first)
}
