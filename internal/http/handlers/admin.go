package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/f2p-catalog-service/internal/http/requestutil"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
	"github.com/preston-bernstein/f2p-catalog-service/internal/poller"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
)

// Refresher runs one catalog refresh cycle on demand.
type Refresher interface {
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// AdminHandler exposes admin-only endpoints (e.g., catalog refresh).
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Register adds the admin routes to mux.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /admin/catalog/refresh", h.RefreshCatalog)
	mux.HandleFunc("GET /admin/catalog/status", h.CatalogStatus)
}

// RefreshCatalog fetches the upstream catalog now, swaps it in and writes a snapshot.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin catalog refresh failed", slog.Any("err", err))
		status := http.StatusBadGateway
		if errors.Is(err, providers.ErrProviderUnavailable) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, r, status, "failed to refresh catalog", logger)
		return
	}

	st := h.refresher.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"count":           st.CatalogSize,
		"catalog_version": st.CatalogVersion,
	}, logger)
	logging.Info(logger, "admin catalog refreshed",
		slog.Int(logging.FieldCount, st.CatalogSize),
		slog.String(logging.FieldCatalogVersion, st.CatalogVersion),
	)
}

// CatalogStatus reports the poller's last refresh outcome.
func (h *AdminHandler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.refresher.Status(), h.logger)
}

func (h *AdminHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if requestutil.TokenMatches(h.token, requestutil.BearerToken(r)) {
		return true
	}
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
	return false
}
