package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// APIError represents an MCP tool error payload.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for
// errors that have no client-facing meaning.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, board.ErrBoardNotFound), errors.Is(err, list.ErrBoardNotFound):
		return &APIError{Code: "BOARD_NOT_FOUND", Message: "board not found", RecoveryHint: "Check the board ID"}
	case errors.Is(err, list.ErrListNotFound), errors.Is(err, card.ErrListNotFound):
		return &APIError{Code: "LIST_NOT_FOUND", Message: "list not found", RecoveryHint: "Fetch the board with include_children to find list IDs"}
	case errors.Is(err, card.ErrCardNotFound):
		return &APIError{Code: "CARD_NOT_FOUND", Message: "card not found", RecoveryHint: "Fetch the list with include_cards to find card IDs"}
	case errors.Is(err, board.ErrSnapshotNotFound):
		return &APIError{Code: "SNAPSHOT_NOT_FOUND", Message: "no snapshot exported for board", RecoveryHint: "Call export_board first"}
	case errors.Is(err, board.ErrSnapshotsDisabled):
		return &APIError{Code: "SNAPSHOTS_DISABLED", Message: "snapshot storage is not configured"}
	case errors.Is(err, ordering.ErrConcurrentModification):
		return &APIError{Code: "CONFLICT", Message: "item moved concurrently", RecoveryHint: "Retry the operation"}
	case errors.Is(err, board.ErrInvalidInput),
		errors.Is(err, list.ErrInvalidInput),
		errors.Is(err, card.ErrInvalidInput),
		errors.Is(err, ordering.ErrInvalidPosition):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Titles must be non-blank and positions non-negative"}
	case ordering.IsNotFound(err):
		return &APIError{Code: "NOT_FOUND", Message: "item not found"}
	default:
		return nil
	}
}
