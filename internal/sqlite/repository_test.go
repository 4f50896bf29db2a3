package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/repository"
)

func TestBoardRepository_CRUD(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewBoardRepository(db)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, &board.Board{ID: "b1", Title: "Roadmap", CreatedAt: now, UpdatedAt: now}))

	b, err := repo.Get(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, "Roadmap", b.Title)
	require.True(t, b.CreatedAt.Equal(now))

	require.NoError(t, repo.UpdateTitle(ctx, "b1", "Plan", now.Add(time.Minute)))
	b, err = repo.Get(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, "Plan", b.Title)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.UpdateTitle(ctx, "missing", "x", now), repository.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "b1"))
	require.ErrorIs(t, repo.Delete(ctx, "b1"), repository.ErrNotFound)
}

func TestListRepository_Reads(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBoard(t, db, "b1")
	insertList(t, db, "l2", "b1", 1)
	insertList(t, db, "l1", "b1", 0)
	repo := NewListRepository(db)

	lists, err := repo.ListByBoard(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	require.Equal(t, "l1", lists[0].ID)
	require.Equal(t, "l2", lists[1].ID)

	empty, err := repo.ListByBoard(ctx, "other")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	require.NoError(t, repo.UpdateTitle(ctx, "l1", "Doing", time.Now().UTC()))
	l, err := repo.Get(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "Doing", l.Title)
	require.Equal(t, "b1", l.BoardID)

	_, err = repo.Get(ctx, "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCardRepository_Reads(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBoard(t, db, "b1")
	insertList(t, db, "l1", "b1", 1)
	insertList(t, db, "l0", "b1", 0)
	insertCard(t, db, "c2", "l1", 1)
	insertCard(t, db, "c1", "l1", 0)
	insertCard(t, db, "c0", "l0", 0)
	repo := NewCardRepository(db)

	cards, err := repo.ListByList(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "c1", cards[0].ID)
	require.Equal(t, "c2", cards[1].ID)

	all, err := repo.ListByBoard(ctx, "b1")
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}
	require.Equal(t, []string{"c0", "c1", "c2"}, ids)

	boardID, err := repo.BoardIDOf(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "b1", boardID)
	_, err = repo.BoardIDOf(ctx, "zz")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCardRepository_CreateAndUpdate(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBoard(t, db, "b1")
	insertList(t, db, "l1", "b1", 0)
	repo := NewCardRepository(db)

	now := time.Now().UTC()
	desc := "details"
	err := repo.WithinTx(ctx, func(ctx context.Context, tx card.Tx) error {
		return tx.Create(ctx, &card.Card{ID: "c1", ListID: "l1", Title: "First", Description: &desc, CreatedAt: now, UpdatedAt: now})
	})
	require.NoError(t, err)

	c, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "details", *c.Description)
	require.Equal(t, 0, c.Position)

	c.Title = "Renamed"
	c.Description = nil
	require.NoError(t, repo.Update(ctx, c))

	c, err = repo.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", c.Title)
	require.Nil(t, c.Description)

	require.ErrorIs(t, repo.Update(ctx, &card.Card{ID: "ghost", Title: "x"}), repository.ErrNotFound)
}
