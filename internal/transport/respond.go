package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/domain/ordering"
)

// maxBodyBytes caps request bodies; the largest field is a 2000 rune description.
const maxBodyBytes = 64 << 10

// ErrorBody is the JSON payload of every non-2xx response.
type ErrorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		a.badRequest(w, r, "malformed JSON body")
		return false
	}
	return true
}

func (a *api) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, message)
}

// fail maps a service error to its HTTP status. Unclassified errors are
// logged and reported without detail.
func (a *api) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "operation failed"
	}
	writeError(w, r, status, message)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrBoardNotFound),
		errors.Is(err, board.ErrSnapshotNotFound),
		errors.Is(err, list.ErrListNotFound),
		errors.Is(err, list.ErrBoardNotFound),
		errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, card.ErrListNotFound),
		ordering.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, board.ErrInvalidInput),
		errors.Is(err, list.ErrInvalidInput),
		errors.Is(err, card.ErrInvalidInput),
		errors.Is(err, card.ErrNoChanges),
		errors.Is(err, ordering.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, ordering.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, board.ErrSnapshotsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
