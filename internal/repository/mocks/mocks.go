package mocks

import (
	"context"
	"time"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/stretchr/testify/mock"
)

// BoardRepository is a mock for board.Repository.
type BoardRepository struct {
	mock.Mock
}

func (m *BoardRepository) Create(ctx context.Context, b *board.Board) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BoardRepository) Get(ctx context.Context, id string) (*board.Board, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*board.Board); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardRepository) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	args := m.Called(ctx, id, title, at)
	return args.Error(0)
}

func (m *BoardRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListRepository is a mock for list.Repository and board.ListReader.
type ListRepository struct {
	mock.Mock
}

func (m *ListRepository) Get(ctx context.Context, id string) (*list.List, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*list.List); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListRepository) ListByBoard(ctx context.Context, boardID string) ([]list.List, error) {
	args := m.Called(ctx, boardID)
	if ls, ok := args.Get(0).([]list.List); ok {
		return ls, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListRepository) UpdateTitle(ctx context.Context, id, title string, at time.Time) error {
	args := m.Called(ctx, id, title, at)
	return args.Error(0)
}

// WithinTx runs fn against the list.Tx given to Return, or fails with the returned error.
func (m *ListRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx list.Tx) error) error {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(list.Tx); ok {
		return fn(ctx, tx)
	}
	return args.Error(1)
}

// CardRepository is a mock for card.Repository and the card readers.
type CardRepository struct {
	mock.Mock
}

func (m *CardRepository) Get(ctx context.Context, id string) (*card.Card, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*card.Card); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CardRepository) ListByList(ctx context.Context, listID string) ([]card.Card, error) {
	args := m.Called(ctx, listID)
	if cs, ok := args.Get(0).([]card.Card); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CardRepository) ListByBoard(ctx context.Context, boardID string) ([]card.Card, error) {
	args := m.Called(ctx, boardID)
	if cs, ok := args.Get(0).([]card.Card); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CardRepository) Update(ctx context.Context, c *card.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CardRepository) BoardIDOf(ctx context.Context, listID string) (string, error) {
	args := m.Called(ctx, listID)
	return args.String(0), args.Error(1)
}

// WithinTx runs fn against the card.Tx given to Return, or fails with the returned error.
func (m *CardRepository) WithinTx(ctx context.Context, fn func(ctx context.Context, tx card.Tx) error) error {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(card.Tx); ok {
		return fn(ctx, tx)
	}
	return args.Error(1)
}

// OrderingStore is a mock for ordering.Store.
type OrderingStore struct {
	mock.Mock
}

func (m *OrderingStore) ShiftUpFrom(ctx context.Context, containerID string, from int) (int64, error) {
	args := m.Called(ctx, containerID, from)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderingStore) CloseGapForward(ctx context.Context, containerID string, from, to int) (int64, error) {
	args := m.Called(ctx, containerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderingStore) CloseGapBackward(ctx context.Context, containerID string, from, to int) (int64, error) {
	args := m.Called(ctx, containerID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderingStore) FindItem(ctx context.Context, itemID string) (ordering.Placement, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(ordering.Placement), args.Error(1)
}

func (m *OrderingStore) ContainerExists(ctx context.Context, containerID string) (bool, error) {
	args := m.Called(ctx, containerID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderingStore) MaxPosition(ctx context.Context, containerID string) (int, bool, error) {
	args := m.Called(ctx, containerID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *OrderingStore) Place(ctx context.Context, p ordering.Placement) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *OrderingStore) Delete(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *OrderingStore) Positions(ctx context.Context, containerID string) ([]int, error) {
	args := m.Called(ctx, containerID)
	if ps, ok := args.Get(0).([]int); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListTx is a mock for list.Tx.
type ListTx struct {
	OrderingStore
}

func (m *ListTx) Create(ctx context.Context, l *list.List) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// CardTx is a mock for card.Tx.
type CardTx struct {
	OrderingStore
}

func (m *CardTx) Create(ctx context.Context, c *card.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// SnapshotStore is a mock for board.SnapshotStore.
type SnapshotStore struct {
	mock.Mock
}

func (m *SnapshotStore) Save(ctx context.Context, tree *board.Tree) (string, error) {
	args := m.Called(ctx, tree)
	return args.String(0), args.Error(1)
}

func (m *SnapshotStore) Load(ctx context.Context, boardID string) (*board.Tree, error) {
	args := m.Called(ctx, boardID)
	if t, ok := args.Get(0).(*board.Tree); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityLogger is a mock for the activity writer the domain services share.
type ActivityLogger struct {
	mock.Mock
}

func (m *ActivityLogger) LogActivity(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if entries, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}
