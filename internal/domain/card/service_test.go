package card_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/rpggio/kanbee/internal/repository"
	"github.com/rpggio/kanbee/internal/repository/mocks"
)

func strPtr(s string) *string { return &s }

func TestCardService_CreateAppends(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	tx := &mocks.CardTx{}
	activities := &mocks.ActivityLogger{}

	repo.On("WithinTx", ctx).Return(tx, nil).Once()
	tx.On("ContainerExists", mock.Anything, "list1").Return(true, nil)
	tx.On("MaxPosition", mock.Anything, "list1").Return(1, true, nil)
	tx.On("Create", mock.Anything, mock.MatchedBy(func(c *card.Card) bool {
		return c.ListID == "list1" && c.Title == "Write tests" && c.Position == 2
	})).Return(nil)
	tx.On("Positions", mock.Anything, "list1").Return([]int{0, 1, 2}, nil)
	repo.On("BoardIDOf", ctx, "list1").Return("board1", nil)
	activities.On("LogActivity", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.BoardID == "board1" && e.ActivityType == activity.TypeCardCreated
	})).Return(nil)

	svc := card.NewService(repo, activities, nil)
	c, err := svc.Create(ctx, card.CreateRequest{
		ListID:      "list1",
		Title:       "  Write   tests ",
		Description: strPtr("  cover the ledger  "),
	})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, 2, c.Position)
	require.Equal(t, "Write tests", c.Title)
	require.Equal(t, "cover the ledger", *c.Description)

	tx.AssertNotCalled(t, "ShiftUpFrom", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestCardService_CreateAtHeadShiftsSiblings(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	tx := &mocks.CardTx{}

	repo.On("WithinTx", ctx).Return(tx, nil).Once()
	tx.On("ContainerExists", mock.Anything, "list1").Return(true, nil)
	tx.On("MaxPosition", mock.Anything, "list1").Return(2, true, nil)
	tx.On("ShiftUpFrom", mock.Anything, "list1", 0).Return(int64(3), nil).Once()
	tx.On("Create", mock.Anything, mock.AnythingOfType("*card.Card")).Return(nil)
	tx.On("Positions", mock.Anything, "list1").Return([]int{0, 1, 2, 3}, nil)

	svc := card.NewService(repo, nil, nil)
	pos := 0
	c, err := svc.Create(ctx, card.CreateRequest{ListID: "list1", Title: "Urgent", Position: &pos})
	require.NoError(t, err)
	require.Equal(t, 0, c.Position)
	require.Nil(t, c.Description)
	tx.AssertExpectations(t)
}

func TestCardService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	svc := card.NewService(repo, nil, nil)

	_, err := svc.Create(ctx, card.CreateRequest{ListID: "list1", Title: "   "})
	require.ErrorIs(t, err, card.ErrInvalidInput)

	neg := -1
	_, err = svc.Create(ctx, card.CreateRequest{ListID: "list1", Title: "ok", Position: &neg})
	require.ErrorIs(t, err, card.ErrInvalidInput)

	repo.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestCardService_CreateMissingList(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	tx := &mocks.CardTx{}

	repo.On("WithinTx", ctx).Return(tx, nil).Once()
	tx.On("ContainerExists", mock.Anything, "gone").Return(false, nil)

	svc := card.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, card.CreateRequest{ListID: "gone", Title: "Orphan"})
	require.ErrorIs(t, err, card.ErrListNotFound)
}

func TestCardService_Get(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	repo.On("Get", ctx, "c1").Return(&card.Card{ID: "c1", Title: "One"}, nil)
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := card.NewService(repo, nil, nil)
	c, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "One", c.Title)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, card.ErrCardNotFound)
}

func TestCardService_Update(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	existing := &card.Card{ID: "c1", ListID: "list1", Title: "Old", Position: 4}

	repo.On("Get", ctx, "c1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(c *card.Card) bool {
		return c.Title == "New title" && c.Description != nil && *c.Description == "" && c.Position == 4
	})).Return(nil)

	svc := card.NewService(repo, nil, nil)
	c, err := svc.Update(ctx, "c1", card.UpdateRequest{Title: strPtr(" New\ttitle "), Description: strPtr("   ")})
	require.NoError(t, err)
	require.Equal(t, "New title", c.Title)
	repo.AssertExpectations(t)
}

func TestCardService_UpdateRequiresAChange(t *testing.T) {
	svc := card.NewService(&mocks.CardRepository{}, nil, nil)

	_, err := svc.Update(context.Background(), "c1", card.UpdateRequest{})
	require.ErrorIs(t, err, card.ErrInvalidInput)
	require.ErrorIs(t, err, card.ErrNoChanges)
}

func TestCardService_MoveAcrossLists(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	tx := &mocks.CardTx{}

	repo.On("Get", ctx, "c1").Return(&card.Card{ID: "c1", ListID: "src", Title: "Card", Position: 0}, nil).Once()
	repo.On("WithinTx", ctx).Return(tx, nil).Twice()
	tx.On("FindItem", mock.Anything, "c1").Return(ordering.Placement{ItemID: "c1", ContainerID: "src", Position: 0}, nil)
	tx.On("ContainerExists", mock.Anything, "dst").Return(true, nil)
	tx.On("MaxPosition", mock.Anything, "src").Return(1, true, nil)
	tx.On("CloseGapForward", mock.Anything, "src", 0, 1).Return(int64(1), nil)
	tx.On("MaxPosition", mock.Anything, "dst").Return(0, false, nil)
	tx.On("Place", mock.Anything, ordering.Placement{ItemID: "c1", ContainerID: "dst", Position: 0}).Return(nil)
	tx.On("Positions", mock.Anything, "src").Return([]int{0}, nil)
	tx.On("Positions", mock.Anything, "dst").Return([]int{0}, nil)
	repo.On("Get", ctx, "c1").Return(&card.Card{ID: "c1", ListID: "dst", Title: "Card", Position: 0}, nil).Once()

	svc := card.NewService(repo, nil, nil)
	c, err := svc.Move(ctx, "c1", card.MoveRequest{ListID: "dst", Position: 9})
	require.NoError(t, err)
	require.Equal(t, "dst", c.ListID)
	require.Equal(t, 0, c.Position)
	tx.AssertExpectations(t)
}

func TestCardService_MoveRejectsNegativePosition(t *testing.T) {
	svc := card.NewService(&mocks.CardRepository{}, nil, nil)

	_, err := svc.Move(context.Background(), "c1", card.MoveRequest{ListID: "l", Position: -3})
	require.ErrorIs(t, err, card.ErrInvalidInput)
}

func TestCardService_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.CardRepository{}
	tx := &mocks.CardTx{}

	repo.On("WithinTx", ctx).Return(tx, nil).Once()
	tx.On("FindItem", mock.Anything, "ghost").Return(ordering.Placement{}, ordering.ErrItemNotFound)

	svc := card.NewService(repo, nil, nil)
	require.ErrorIs(t, svc.Delete(ctx, "ghost"), card.ErrCardNotFound)
}
