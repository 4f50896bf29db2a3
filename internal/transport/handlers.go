package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
)

type titleRequest struct {
	Title string `json:"title"`
}

type createListRequest struct {
	Title    string `json:"title"`
	Position *int   `json:"position,omitempty"`
}

type moveListRequest struct {
	BoardID  string `json:"board_id"`
	Position *int   `json:"position"`
}

type createCardRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty"`
}

type updateCardRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type moveCardRequest struct {
	ListID   string `json:"list_id"`
	Position *int   `json:"position"`
}

type exportResponse struct {
	Location string `json:"location"`
}

func (a *api) createBoard(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !a.decode(w, r, &req) {
		return
	}
	b, err := a.svc.Boards.Create(r.Context(), req.Title)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (a *api) getBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if flag(r, "children") {
		tree, err := a.svc.Boards.GetTree(r.Context(), id)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tree)
		return
	}
	b, err := a.svc.Boards.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *api) renameBoard(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !a.decode(w, r, &req) {
		return
	}
	b, err := a.svc.Boards.UpdateTitle(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (a *api) deleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Boards.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) exportBoard(w http.ResponseWriter, r *http.Request) {
	location, err := a.svc.Boards.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, exportResponse{Location: location})
}

func (a *api) getSnapshot(w http.ResponseWriter, r *http.Request) {
	tree, err := a.svc.Boards.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (a *api) boardActivity(w http.ResponseWriter, r *http.Request) {
	opts := activity.ListActivityOptions{BoardID: chi.URLParam(r, "id")}
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			a.badRequest(w, r, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			a.badRequest(w, r, "offset must be a non-negative integer")
			return
		}
		opts.Offset = n
	}
	if v := q.Get("type"); v != "" {
		t := activity.ActivityType(v)
		opts.ActivityType = &t
	}
	if v := q.Get("list_id"); v != "" {
		opts.ListID = &v
	}
	if v := q.Get("card_id"); v != "" {
		opts.CardID = &v
	}

	entries, err := a.svc.Activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *api) createList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if !a.decode(w, r, &req) {
		return
	}
	l, err := a.svc.Lists.Create(r.Context(), list.CreateRequest{
		BoardID:  chi.URLParam(r, "id"),
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (a *api) getList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if flag(r, "cards") {
		l, err := a.svc.Lists.GetWithCards(r.Context(), id)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, l)
		return
	}
	l, err := a.svc.Lists.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (a *api) renameList(w http.ResponseWriter, r *http.Request) {
	var req titleRequest
	if !a.decode(w, r, &req) {
		return
	}
	l, err := a.svc.Lists.UpdateTitle(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (a *api) moveList(w http.ResponseWriter, r *http.Request) {
	var req moveListRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.BoardID == "" || req.Position == nil {
		a.badRequest(w, r, "board_id and position are required")
		return
	}
	l, err := a.svc.Lists.Move(r.Context(), chi.URLParam(r, "id"), list.MoveRequest{
		BoardID:  req.BoardID,
		Position: *req.Position,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (a *api) deleteList(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Lists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) createCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if !a.decode(w, r, &req) {
		return
	}
	c, err := a.svc.Cards.Create(r.Context(), card.CreateRequest{
		ListID:      chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *api) getCard(w http.ResponseWriter, r *http.Request) {
	c, err := a.svc.Cards.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *api) updateCard(w http.ResponseWriter, r *http.Request) {
	var req updateCardRequest
	if !a.decode(w, r, &req) {
		return
	}
	c, err := a.svc.Cards.Update(r.Context(), chi.URLParam(r, "id"), card.UpdateRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *api) moveCard(w http.ResponseWriter, r *http.Request) {
	var req moveCardRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.ListID == "" || req.Position == nil {
		a.badRequest(w, r, "list_id and position are required")
		return
	}
	c, err := a.svc.Cards.Move(r.Context(), chi.URLParam(r, "id"), card.MoveRequest{
		ListID:   req.ListID,
		Position: *req.Position,
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *api) deleteCard(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Cards.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func flag(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
