package integration_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/rpggio/kanbee/internal/sqlite"
)

type testEnv struct {
	db *sqlite.DB

	boardSvc    *board.Service
	listSvc     *list.Service
	cardSvc     *card.Service
	activitySvc *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	boardRepo := sqlite.NewBoardRepository(db)
	listRepo := sqlite.NewListRepository(db)
	cardRepo := sqlite.NewCardRepository(db)
	activities := activity.NewService(sqlite.NewActivityRepository(db), nil)

	return &testEnv{
		db:          db,
		boardSvc:    board.NewService(boardRepo, listRepo, cardRepo, nil, activities, nil),
		listSvc:     list.NewService(listRepo, cardRepo, activities, nil),
		cardSvc:     card.NewService(cardRepo, activities, nil),
		activitySvc: activities,
	}
}

func (e *testEnv) titles(t *testing.T, listID string) []string {
	t.Helper()
	cards, err := e.cardSvc.ListByList(context.Background(), listID)
	require.NoError(t, err)
	out := make([]string, len(cards))
	for i, c := range cards {
		require.Equal(t, i, c.Position, "card %s in list %s", c.Title, listID)
		out[i] = c.Title
	}
	return out
}

func (e *testEnv) requireDenseTree(t *testing.T, boardID string) int {
	t.Helper()
	tree, err := e.boardSvc.GetTree(context.Background(), boardID)
	require.NoError(t, err)

	total := 0
	for i, l := range tree.Lists {
		require.Equal(t, i, l.Position, "list %s", l.Title)
		for j, c := range l.Cards {
			require.Equal(t, j, c.Position, "card %s in list %s", c.Title, l.Title)
		}
		total += len(l.Cards)
	}
	return total
}

func TestIntegration_BoardWorkflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := env.boardSvc.Create(ctx, "Sprint 12")
	require.NoError(t, err)

	todo, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: "Todo"})
	require.NoError(t, err)
	done, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: "Done"})
	require.NoError(t, err)
	doing, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: "Doing", Position: intPtr(1)})
	require.NoError(t, err)
	require.Equal(t, 1, doing.Position)

	ids := make(map[string]string)
	for _, title := range []string{"A", "B", "C", "D"} {
		c, err := env.cardSvc.Create(ctx, card.CreateRequest{ListID: todo.ID, Title: title})
		require.NoError(t, err)
		ids[title] = c.ID
	}

	// [A, B, C, D] move B to 3.
	_, err = env.cardSvc.Move(ctx, ids["B"], card.MoveRequest{Position: 3})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C", "D", "B"}, env.titles(t, todo.ID))

	// Across into an empty list, requested slot clamped to 0.
	moved, err := env.cardSvc.Move(ctx, ids["C"], card.MoveRequest{ListID: doing.ID, Position: 5})
	require.NoError(t, err)
	require.Equal(t, 0, moved.Position)
	require.Equal(t, []string{"A", "D", "B"}, env.titles(t, todo.ID))
	require.Equal(t, []string{"C"}, env.titles(t, doing.ID))

	require.NoError(t, env.cardSvc.Delete(ctx, ids["A"]))
	require.Equal(t, []string{"D", "B"}, env.titles(t, todo.ID))

	// Done jumps to the front of the board.
	_, err = env.listSvc.Move(ctx, done.ID, list.MoveRequest{Position: 0})
	require.NoError(t, err)

	tree, err := env.boardSvc.GetTree(ctx, b.ID)
	require.NoError(t, err)
	var order []string
	for _, l := range tree.Lists {
		order = append(order, l.Title)
	}
	require.Equal(t, []string{"Done", "Todo", "Doing"}, order)
	require.Equal(t, 3, env.requireDenseTree(t, b.ID))

	// Deleting a list removes its cards and compacts the board.
	require.NoError(t, env.listSvc.Delete(ctx, todo.ID))
	_, err = env.cardSvc.Get(ctx, ids["D"])
	require.ErrorIs(t, err, card.ErrCardNotFound)
	require.Equal(t, 1, env.requireDenseTree(t, b.ID))

	entries, err := env.activitySvc.GetRecentActivity(ctx, activity.ListActivityOptions{BoardID: b.ID, Limit: 100})
	require.NoError(t, err)
	counts := make(map[activity.ActivityType]int)
	for _, e := range entries {
		counts[e.ActivityType]++
	}
	require.Equal(t, 3, counts[activity.TypeListCreated])
	require.Equal(t, 4, counts[activity.TypeCardCreated])
	require.Equal(t, 2, counts[activity.TypeCardMoved])
	require.Equal(t, 1, counts[activity.TypeCardDeleted])
	require.Equal(t, 1, counts[activity.TypeListMoved])
	require.Equal(t, 1, counts[activity.TypeListDeleted])
}

func TestIntegration_ListMovesAcrossBoards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	src, err := env.boardSvc.Create(ctx, "Source")
	require.NoError(t, err)
	dst, err := env.boardSvc.Create(ctx, "Target")
	require.NoError(t, err)

	var lists []*list.List
	for i := range 3 {
		l, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: src.ID, Title: fmt.Sprintf("L%d", i)})
		require.NoError(t, err)
		lists = append(lists, l)
	}
	_, err = env.cardSvc.Create(ctx, card.CreateRequest{ListID: lists[0].ID, Title: "rides along"})
	require.NoError(t, err)

	moved, err := env.listSvc.Move(ctx, lists[0].ID, list.MoveRequest{BoardID: dst.ID, Position: 0})
	require.NoError(t, err)
	require.Equal(t, dst.ID, moved.BoardID)

	require.Equal(t, 0, env.requireDenseTree(t, src.ID))
	require.Equal(t, 1, env.requireDenseTree(t, dst.ID))

	_, err = env.listSvc.Move(ctx, lists[1].ID, list.MoveRequest{BoardID: "missing", Position: 0})
	require.ErrorIs(t, err, list.ErrBoardNotFound)
	require.Equal(t, 0, env.requireDenseTree(t, src.ID))
}

func TestIntegration_InvalidRequestsLeaveStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := env.boardSvc.Create(ctx, "Board")
	require.NoError(t, err)
	l, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: "L"})
	require.NoError(t, err)
	c, err := env.cardSvc.Create(ctx, card.CreateRequest{ListID: l.ID, Title: "only"})
	require.NoError(t, err)

	_, err = env.cardSvc.Create(ctx, card.CreateRequest{ListID: l.ID, Title: "neg", Position: intPtr(-1)})
	require.ErrorIs(t, err, card.ErrInvalidInput)

	_, err = env.cardSvc.Move(ctx, c.ID, card.MoveRequest{Position: -1})
	require.ErrorIs(t, err, card.ErrInvalidInput)

	_, err = env.cardSvc.Move(ctx, "ghost", card.MoveRequest{Position: 0})
	require.ErrorIs(t, err, card.ErrCardNotFound)

	_, err = env.cardSvc.Create(ctx, card.CreateRequest{ListID: "ghost", Title: "x"})
	require.ErrorIs(t, err, card.ErrListNotFound)

	require.Equal(t, []string{"only"}, env.titles(t, l.ID))
}

func TestIntegration_RandomOperationsStayDense(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(3, 5))

	b, err := env.boardSvc.Create(ctx, "Fuzz")
	require.NoError(t, err)

	var listIDs []string
	for i := range 3 {
		l, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: fmt.Sprintf("L%d", i)})
		require.NoError(t, err)
		listIDs = append(listIDs, l.ID)
	}

	var cardIDs []string
	for step := range 200 {
		switch op := rng.IntN(4); {
		case op == 0 || len(cardIDs) == 0:
			pos := rng.IntN(6)
			c, err := env.cardSvc.Create(ctx, card.CreateRequest{
				ListID:   listIDs[rng.IntN(len(listIDs))],
				Title:    fmt.Sprintf("c%d", step),
				Position: &pos,
			})
			require.NoError(t, err)
			cardIDs = append(cardIDs, c.ID)
		case op == 1:
			_, err := env.cardSvc.Move(ctx, cardIDs[rng.IntN(len(cardIDs))], card.MoveRequest{Position: rng.IntN(8)})
			require.NoError(t, err)
		case op == 2:
			_, err := env.cardSvc.Move(ctx, cardIDs[rng.IntN(len(cardIDs))], card.MoveRequest{
				ListID:   listIDs[rng.IntN(len(listIDs))],
				Position: rng.IntN(8),
			})
			require.NoError(t, err)
		default:
			i := rng.IntN(len(cardIDs))
			require.NoError(t, env.cardSvc.Delete(ctx, cardIDs[i]))
			cardIDs = append(cardIDs[:i], cardIDs[i+1:]...)
		}
		require.Equal(t, len(cardIDs), env.requireDenseTree(t, b.ID), "step %d", step)
	}
}

func TestIntegration_ConcurrentCardMoves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := env.boardSvc.Create(ctx, "Concurrent")
	require.NoError(t, err)
	left, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: "Left"})
	require.NoError(t, err)
	right, err := env.listSvc.Create(ctx, list.CreateRequest{BoardID: b.ID, Title: "Right"})
	require.NoError(t, err)

	var ids []string
	for i := range 20 {
		c, err := env.cardSvc.Create(ctx, card.CreateRequest{ListID: left.ID, Title: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	var g errgroup.Group
	for i, id := range ids {
		target := right.ID
		if i%3 == 0 {
			target = left.ID
		}
		g.Go(func() error {
			_, err := env.cardSvc.Move(ctx, id, card.MoveRequest{ListID: target, Position: i % 5})
			if errors.Is(err, ordering.ErrConcurrentModification) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	require.Equal(t, 20, env.requireDenseTree(t, b.ID))
}

func intPtr(v int) *int { return &v }
