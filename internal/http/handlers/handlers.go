package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/app/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
	"github.com/preston-bernstein/f2p-catalog-service/internal/poller"
	"github.com/preston-bernstein/f2p-catalog-service/internal/sessions"
)

const (
	maxPages         = 1000
	maxFeaturedCount = 50
)

// Handler wires HTTP routes to the catalog service and browse sessions.
type Handler struct {
	svc      *games.Service
	sessions *sessions.Registry
	logger   *slog.Logger
	metrics  *metrics.Recorder
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. sessions and statusFn may be nil.
func NewHandler(svc *games.Service, registry *sessions.Registry, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		sessions: registry,
		logger:   logger,
		metrics:  recorder,
		statusFn: statusFn,
	}
}

// Register adds the handler's routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /categories", h.Categories)
	mux.HandleFunc("GET /games", h.ListGames)
	mux.HandleFunc("GET /games/featured", h.Featured)
	mux.HandleFunc("GET /games/{id}", h.GameByID)

	if h.sessions != nil {
		mux.HandleFunc("POST /sessions", h.CreateSession)
		mux.HandleFunc("GET /sessions/{id}", h.GetSession)
		mux.HandleFunc("DELETE /sessions/{id}", h.DeleteSession)
		mux.HandleFunc("PUT /sessions/{id}/filter", h.SetFilter)
		mux.HandleFunc("PUT /sessions/{id}/search", h.SetSearch)
		mux.HandleFunc("DELETE /sessions/{id}/search", h.ClearSearch)
		mux.HandleFunc("POST /sessions/{id}/more", h.LoadMore)
		mux.HandleFunc("POST /sessions/{id}/reload", h.Reload)
		mux.HandleFunc("GET /sessions/{id}/games/{gameId}", h.SessionGame)
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: a catalog must be loaded, either from
// the provider or from a disk snapshot.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.svc.Ready() {
		payload := map[string]any{
			"status":          "ready",
			"catalog_version": h.svc.Version(),
			"loaded_at":       h.svc.LoadedAt(),
		}
		if h.statusFn != nil {
			// Upstream can be failing while a seeded catalog is still served.
			payload["upstream_healthy"] = h.statusFn().IsReady()
		}
		writeJSON(w, http.StatusOK, payload, h.logger)
		return
	}
	msg := msgCatalogNotLoaded
	if h.statusFn != nil {
		if lastErr := h.statusFn().LastError; lastErr != "" {
			msg = lastErr
		}
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Categories lists the filter categories in display order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Describe(), h.logger)
}

// ListGames serves a stateless view: ?category=&search=&pages=.
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, err := catalog.ParseCategory(q.Get("category"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	pages, err := parseBoundedInt(q.Get("pages"), 1, maxPages)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid pages: "+err.Error(), h.logger)
		return
	}
	search := q.Get("search")
	if !h.requireCatalog(w, r) {
		return
	}

	etag := viewETag(h.svc.Version(), string(category), strings.TrimSpace(search), strconv.Itoa(pages))
	if notModified(w, r, etag) {
		return
	}

	resp := h.svc.Query(games.Query{Category: category, Search: search, Pages: pages})
	h.metrics.RecordCatalogQuery(string(category), resp.Search != "", resp.Total)
	logging.Debug(loggerFromContext(r, h.logger), "served catalog page",
		logging.FieldCategory, category,
		logging.FieldSearch, resp.Search,
		logging.FieldCount, len(resp.Games),
	)
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Featured returns a random carousel selection: ?count=.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	count, err := parseBoundedInt(r.URL.Query().Get("count"), catalog.DefaultFeaturedCount, maxFeaturedCount)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid count: "+err.Error(), h.logger)
		return
	}
	if !h.requireCatalog(w, r) {
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.svc.Featured(count), h.logger)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDFromPath(w, r, "id", h.logger)
	if !ok || !h.requireCatalog(w, r) {
		return
	}
	game, found := h.svc.GameByID(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}
	if notModified(w, r, viewETag(h.svc.Version(), "game", strconv.Itoa(id))) {
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

// requireCatalog writes 503 and returns false until the first catalog load.
func (h *Handler) requireCatalog(w http.ResponseWriter, r *http.Request) bool {
	if h.svc.Ready() {
		return true
	}
	writeError(w, r, http.StatusServiceUnavailable, msgCatalogNotLoaded, h.logger)
	return false
}

func gameIDFromPath(w http.ResponseWriter, r *http.Request, name string, logger *slog.Logger) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 0 {
		writeError(w, r, http.StatusBadRequest, "invalid game id", logger)
		return 0, false
	}
	return id, true
}

var errOutOfRange = errors.New("out of range")

const msgCatalogNotLoaded = "catalog not loaded"

// parseBoundedInt parses raw as a positive integer no larger than max.
// Empty input yields def.
func parseBoundedInt(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if n < 1 || n > max {
		return 0, errOutOfRange
	}
	return n, nil
}
