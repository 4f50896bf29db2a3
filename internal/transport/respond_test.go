package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/ordering"
)

func TestFail_StatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "not found keeps message",
			err:     card.ErrCardNotFound,
			status:  http.StatusNotFound,
			message: card.ErrCardNotFound.Error(),
		},
		{
			name:    "invalid position is a client error",
			err:     fmt.Errorf("%w: %w", card.ErrInvalidInput, ordering.ErrInvalidPosition),
			status:  http.StatusBadRequest,
			message: fmt.Errorf("%w: %w", card.ErrInvalidInput, ordering.ErrInvalidPosition).Error(),
		},
		{
			name:    "ledger range error is hidden",
			err:     fmt.Errorf("moving card: shifting siblings: %w: forward range (1, 3]", ordering.ErrInvalidRange),
			status:  http.StatusInternalServerError,
			message: "operation failed",
		},
		{
			name:    "snapshots disabled",
			err:     board.ErrSnapshotsDisabled,
			status:  http.StatusServiceUnavailable,
			message: board.ErrSnapshotsDisabled.Error(),
		},
		{
			name:    "unknown error is hidden",
			err:     errors.New("database is locked"),
			status:  http.StatusInternalServerError,
			message: "operation failed",
		},
	}

	a := &api{logger: slog.New(slog.DiscardHandler)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/api/cards/c1/move", nil)

			a.fail(rec, req, tt.err)

			require.Equal(t, tt.status, rec.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.status, body.Status)
			require.Equal(t, tt.message, body.Message)
			require.Equal(t, "/api/cards/c1/move", body.Path)
		})
	}
}
