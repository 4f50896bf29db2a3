package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
)

// Pinger reports database reachability for /health/db.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles the domain services exposed over HTTP.
type Services struct {
	Boards   *board.Service
	Lists    *list.Service
	Cards    *card.Service
	Activity *activity.Service
}

type api struct {
	svc    Services
	db     Pinger
	logger *slog.Logger
}

// NewServer creates a chi router serving the REST API and health checks.
// Callers may mount further handlers (such as /mcp) on the returned mux.
func NewServer(svc Services, db Pinger, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &api{svc: svc, db: db, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/health", a.health)
	r.Get("/health/db", a.healthDB)

	r.Route("/api", func(r chi.Router) {
		r.Route("/boards", func(r chi.Router) {
			r.Post("/", a.createBoard)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.getBoard)
				r.Delete("/", a.deleteBoard)
				r.Patch("/title", a.renameBoard)
				r.Post("/snapshot", a.exportBoard)
				r.Get("/snapshot", a.getSnapshot)
				r.Get("/activity", a.boardActivity)
				r.Post("/lists", a.createList)
			})
		})
		r.Route("/lists/{id}", func(r chi.Router) {
			r.Get("/", a.getList)
			r.Delete("/", a.deleteList)
			r.Patch("/title", a.renameList)
			r.Patch("/move", a.moveList)
			r.Post("/cards", a.createCard)
		})
		r.Route("/cards/{id}", func(r chi.Router) {
			r.Get("/", a.getCard)
			r.Patch("/", a.updateCard)
			r.Delete("/", a.deleteCard)
			r.Patch("/move", a.moveCard)
		})
	})

	return r
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (a *api) healthDB(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	if err := a.db.PingContext(r.Context()); err != nil {
		a.logger.Error("database ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
