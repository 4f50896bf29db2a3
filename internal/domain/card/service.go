package card

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/ordering"
	"github.com/rpggio/kanbee/internal/repository"
)

// Service handles card operations. Ordering inside each list goes through the engine.
type Service struct {
	repo       Repository
	engine     *ordering.Engine[Tx]
	activities ActivityLogger
	logger     *slog.Logger
}

// NewService creates a new card service.
func NewService(repo Repository, activities ActivityLogger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:       repo,
		engine:     ordering.NewEngine[Tx](repo, logger.With("component", "card_ordering")),
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest defines card creation inputs. A nil Position appends.
type CreateRequest struct {
	ListID      string
	Title       string
	Description *string
	Position    *int
}

// UpdateRequest changes any non-nil field.
type UpdateRequest struct {
	Title       *string
	Description *string
}

// MoveRequest targets a list and slot. An empty ListID keeps the card in its list.
type MoveRequest struct {
	ListID   string
	Position int
}

// Create inserts a card into its list at the requested position.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Card, error) {
	title, err := cleanTitle(req.Title)
	if err != nil {
		return nil, err
	}
	desc, err := cleanDescription(req.Description)
	if err != nil {
		return nil, err
	}
	if err := checkPosition(req.Position); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &Card{
		ID:          ulid.Make().String(),
		ListID:      req.ListID,
		Title:       title,
		Description: desc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.engine.Insert(ctx, c.ID, req.ListID, req.Position, func(ctx context.Context, tx Tx, pos int) error {
		c.Position = pos
		return tx.Create(ctx, c)
	})
	if err != nil {
		return nil, translate(err, "creating card")
	}

	s.logActivity(ctx, c.ListID, c.ID, activity.TypeCardCreated, fmt.Sprintf("Created card %q", c.Title), map[string]any{
		"position": c.Position,
	})
	return c, nil
}

// Get fetches a card by ID.
func (s *Service) Get(ctx context.Context, id string) (*Card, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("getting card: %w", err)
	}
	return c, nil
}

// ListByList returns a list's cards ordered by position.
func (s *Service) ListByList(ctx context.Context, listID string) ([]Card, error) {
	cards, err := s.repo.ListByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	return cards, nil
}

// Update changes a card's title and/or description. Position is untouched.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Card, error) {
	if req.Title == nil && req.Description == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrNoChanges)
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		if c.Title, err = cleanTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		if c.Description, err = cleanDescription(req.Description); err != nil {
			return nil, err
		}
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("updating card: %w", err)
	}

	s.logActivity(ctx, c.ListID, c.ID, activity.TypeCardUpdated, fmt.Sprintf("Updated card %q", c.Title), nil)
	return c, nil
}

// Move repositions a card within its list or into another list.
func (s *Service) Move(ctx context.Context, id string, req MoveRequest) (*Card, error) {
	if err := checkPosition(&req.Position); err != nil {
		return nil, err
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	placed, err := s.engine.Move(ctx, id, req.ListID, req.Position)
	if err != nil {
		return nil, translate(err, "moving card")
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, placed.ContainerID, id, activity.TypeCardMoved, fmt.Sprintf("Moved card %q", c.Title), map[string]any{
		"from_list":     before.ListID,
		"from_position": before.Position,
		"to_list":       placed.ContainerID,
		"to_position":   placed.Position,
	})
	return c, nil
}

// Delete removes a card and closes the gap it leaves in its list.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.engine.Remove(ctx, id)
	if err != nil {
		return translate(err, "deleting card")
	}
	s.logActivity(ctx, removed.ContainerID, id, activity.TypeCardDeleted, "Deleted card", map[string]any{
		"position": removed.Position,
	})
	return nil
}

func (s *Service) logActivity(ctx context.Context, listID, cardID string, typ activity.ActivityType, summary string, details map[string]any) {
	if s.activities == nil {
		return
	}
	boardID, err := s.repo.BoardIDOf(ctx, listID)
	if err != nil {
		s.logger.Warn("skipping card activity", "card_id", cardID, "error", err)
		return
	}
	entry := &activity.ActivityEntry{
		BoardID:      boardID,
		ListID:       &listID,
		CardID:       &cardID,
		ActivityType: typ,
		Summary:      summary,
	}
	if details != nil {
		raw, _ := json.Marshal(details)
		entry.Details = string(raw)
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("recording card activity failed", "card_id", cardID, "type", typ, "error", err)
	}
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, ordering.ErrItemNotFound):
		return ErrCardNotFound
	case errors.Is(err, ordering.ErrContainerNotFound):
		return ErrListNotFound
	case errors.Is(err, ordering.ErrInvalidPosition):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
