package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
	"github.com/preston-bernstein/f2p-catalog-service/internal/sessions"
)

type filterRequest struct {
	Category string `json:"category"`
}

type searchRequest struct {
	Term string `json:"term"`
}

// CreateSession opens a browse session on the current catalog.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if !h.requireCatalog(w, r) {
		return
	}
	view, err := h.sessions.Create()
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+view.ID)
	writeJSON(w, http.StatusCreated, view, h.logger)
}

// GetSession returns the session's current page.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r)(h.sessions.Get(r.PathValue("id")))
}

// DeleteSession closes a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.PathValue("id")); err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFilter switches the session's category: {"category": "shooter"}.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var body filterRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	category, err := catalog.ParseCategory(body.Category)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	h.respondView(w, r)(h.sessions.Do(r.PathValue("id"), func(s *catalog.Store) {
		s.SetFilter(category)
		h.metrics.RecordCatalogQuery(string(category), strings.TrimSpace(s.SearchTerm()) != "", s.Total())
	}))
}

// SetSearch switches the session's search term: {"term": "pirate"}.
func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	h.respondView(w, r)(h.sessions.Do(r.PathValue("id"), func(s *catalog.Store) {
		s.SetSearchTerm(body.Term)
		h.metrics.RecordCatalogQuery(string(s.Filter()), strings.TrimSpace(s.SearchTerm()) != "", s.Total())
	}))
}

// ClearSearch removes the session's search term.
func (h *Handler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r)(h.sessions.Do(r.PathValue("id"), func(s *catalog.Store) {
		s.ClearSearch()
	}))
}

// LoadMore reveals the next page.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r)(h.sessions.Do(r.PathValue("id"), func(s *catalog.Store) {
		s.LoadMore()
	}))
}

// Reload swaps the session onto the current shared catalog.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r)(h.sessions.Reload(r.PathValue("id")))
}

// SessionGame looks a game up in the session's catalog regardless of its filter.
func (h *Handler) SessionGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFromPath(w, r, "gameId", h.logger)
	if !ok {
		return
	}
	var (
		found bool
		game  any
	)
	_, err := h.sessions.Do(r.PathValue("id"), func(s *catalog.Store) {
		game, found = s.FindByID(id)
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

func (h *Handler) respondView(w http.ResponseWriter, r *http.Request) func(sessions.View, error) {
	return func(view sessions.View, err error) {
		if err != nil {
			h.writeSessionError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view, h.logger)
	}
}

func (h *Handler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, "session not found", h.logger)
	case errors.Is(err, sessions.ErrSessionLimit):
		logging.Warn(loggerFromContext(r, h.logger), "session limit reached")
		writeError(w, r, http.StatusTooManyRequests, "too many sessions", h.logger)
	default:
		logging.Error(loggerFromContext(r, h.logger), "session request failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal error", h.logger)
	}
}
