package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/domain/sanitize"
	"github.com/rpggio/kanbee/internal/repository"
)

// Service handles board operations.
type Service struct {
	repo       Repository
	lists      ListReader
	cards      CardReader
	snapshots  SnapshotStore
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new board service. snapshots may be nil.
func NewService(
	repo Repository,
	lists ListReader,
	cards CardReader,
	snapshots SnapshotStore,
	activities ActivityLogger,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:       repo,
		lists:      lists,
		cards:      cards,
		snapshots:  snapshots,
		activities: activities,
		logger:     logger,
	}
}

// Create creates a new, empty board.
func (s *Service) Create(ctx context.Context, rawTitle string) (*Board, error) {
	title, err := sanitize.Title(rawTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	b := &Board{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	s.logActivity(ctx, b.ID, activity.TypeBoardCreated, fmt.Sprintf("Created board %q", b.Title), "")
	return b, nil
}

// Get fetches a board by ID.
func (s *Service) Get(ctx context.Context, id string) (*Board, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("getting board: %w", err)
	}
	return b, nil
}

// GetTree fetches a board with its lists and cards in position order.
func (s *Service) GetTree(ctx context.Context, id string) (*Tree, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	lists, err := s.lists.ListByBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}
	cards, err := s.cards.ListByBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	byList := make(map[string][]card.Card, len(lists))
	for _, c := range cards {
		byList[c.ListID] = append(byList[c.ListID], c)
	}

	tree := &Tree{Board: *b, Lists: make([]list.WithCards, 0, len(lists))}
	for _, l := range lists {
		cs := byList[l.ID]
		if cs == nil {
			cs = []card.Card{}
		}
		tree.Lists = append(tree.Lists, list.WithCards{List: l, Cards: cs})
	}
	return tree, nil
}

// UpdateTitle renames a board.
func (s *Service) UpdateTitle(ctx context.Context, id, rawTitle string) (*Board, error) {
	title, err := sanitize.Title(rawTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.repo.UpdateTitle(ctx, id, title, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("renaming board: %w", err)
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, b.ID, activity.TypeBoardRenamed, fmt.Sprintf("Renamed board to %q", b.Title), "")
	return b, nil
}

// Delete removes a board together with its lists and cards.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("deleting board: %w", err)
	}
	s.logActivity(ctx, id, activity.TypeBoardDeleted, "Deleted board", "")
	return nil
}

// Export writes the board tree to the snapshot store and returns its location.
func (s *Service) Export(ctx context.Context, id string) (string, error) {
	if s.snapshots == nil {
		return "", ErrSnapshotsDisabled
	}
	tree, err := s.GetTree(ctx, id)
	if err != nil {
		return "", err
	}
	location, err := s.snapshots.Save(ctx, tree)
	if err != nil {
		return "", fmt.Errorf("exporting board: %w", err)
	}

	s.logger.Info("board exported", "board_id", id, "location", location)
	details, _ := json.Marshal(map[string]string{"location": location})
	s.logActivity(ctx, id, activity.TypeBoardExported, "Exported board snapshot", string(details))
	return location, nil
}

// Snapshot reads back the last exported tree of a board.
func (s *Service) Snapshot(ctx context.Context, id string) (*Tree, error) {
	if s.snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	tree, err := s.snapshots.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return tree, nil
}

func (s *Service) logActivity(ctx context.Context, boardID string, typ activity.ActivityType, summary, details string) {
	if s.activities == nil {
		return
	}
	err := s.activities.LogActivity(ctx, &activity.ActivityEntry{
		BoardID:      boardID,
		ActivityType: typ,
		Summary:      summary,
		Details:      details,
	})
	if err != nil {
		s.logger.Warn("recording board activity failed", "board_id", boardID, "type", typ, "error", err)
	}
}
