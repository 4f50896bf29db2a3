package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/rpggio/kanbee/internal/domain/sanitize"
	"github.com/rpggio/kanbee/internal/repository"
)

// Service handles list operations. Ordering inside each board goes through the engine.
type Service struct {
	repo       Repository
	cards      CardReader
	engine     *ordering.Engine[Tx]
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new list service.
func NewService(repo Repository, cards CardReader, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:       repo,
		cards:      cards,
		engine:     ordering.NewEngine[Tx](repo, logger.With("component", "list_ordering")),
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest defines list creation inputs. A nil Position appends.
type CreateRequest struct {
	BoardID  string
	Title    string
	Position *int
}

// MoveRequest targets a board and slot. An empty BoardID keeps the list on its board.
type MoveRequest struct {
	BoardID  string
	Position int
}

// Create inserts a list into its board at the requested position.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*List, error) {
	title, err := sanitize.Title(req.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if req.Position != nil && *req.Position < 0 {
		return nil, fmt.Errorf("%w: position must be >= 0", ErrInvalidInput)
	}

	now := time.Now().UTC()
	l := &List{
		ID:        ulid.Make().String(),
		BoardID:   req.BoardID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.engine.Insert(ctx, l.ID, req.BoardID, req.Position, func(ctx context.Context, tx Tx, pos int) error {
		l.Position = pos
		return tx.Create(ctx, l)
	})
	if err != nil {
		return nil, translate(err, "creating list")
	}

	s.logActivity(ctx, l.BoardID, l.ID, activity.TypeListCreated, fmt.Sprintf("Created list %q", l.Title), map[string]any{
		"position": l.Position,
	})
	return l, nil
}

// Get fetches a list by ID.
func (s *Service) Get(ctx context.Context, id string) (*List, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("getting list: %w", err)
	}
	return l, nil
}

// GetWithCards fetches a list and its ordered cards.
func (s *Service) GetWithCards(ctx context.Context, id string) (*WithCards, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListByList(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	if cards == nil {
		cards = []card.Card{}
	}
	return &WithCards{List: *l, Cards: cards}, nil
}

// UpdateTitle renames a list.
func (s *Service) UpdateTitle(ctx context.Context, id, rawTitle string) (*List, error) {
	title, err := sanitize.Title(rawTitle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.repo.UpdateTitle(ctx, id, title, time.Now().UTC()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("renaming list: %w", err)
	}

	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, l.BoardID, l.ID, activity.TypeListRenamed, fmt.Sprintf("Renamed list to %q", l.Title), nil)
	return l, nil
}

// Move repositions a list within its board or onto another board. Cards travel with the list.
func (s *Service) Move(ctx context.Context, id string, req MoveRequest) (*List, error) {
	if req.Position < 0 {
		return nil, fmt.Errorf("%w: position must be >= 0", ErrInvalidInput)
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	placed, err := s.engine.Move(ctx, id, req.BoardID, req.Position)
	if err != nil {
		return nil, translate(err, "moving list")
	}

	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, placed.ContainerID, id, activity.TypeListMoved, fmt.Sprintf("Moved list %q", l.Title), map[string]any{
		"from_board":    before.BoardID,
		"from_position": before.Position,
		"to_board":      placed.ContainerID,
		"to_position":   placed.Position,
	})
	return l, nil
}

// Delete removes a list with its cards and closes the gap it leaves in its board.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.engine.Remove(ctx, id)
	if err != nil {
		return translate(err, "deleting list")
	}
	s.logActivity(ctx, removed.ContainerID, id, activity.TypeListDeleted, "Deleted list", map[string]any{
		"position": removed.Position,
	})
	return nil
}

func (s *Service) logActivity(ctx context.Context, boardID, listID string, typ activity.ActivityType, summary string, details map[string]any) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		BoardID:      boardID,
		ListID:       &listID,
		ActivityType: typ,
		Summary:      summary,
	}
	if details != nil {
		raw, _ := json.Marshal(details)
		entry.Details = string(raw)
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("recording list activity failed", "list_id", listID, "type", typ, "error", err)
	}
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, ordering.ErrItemNotFound):
		return ErrListNotFound
	case errors.Is(err, ordering.ErrContainerNotFound):
		return ErrBoardNotFound
	case errors.Is(err, ordering.ErrInvalidPosition):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
