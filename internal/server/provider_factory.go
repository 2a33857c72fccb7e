package server

import (
	"log/slog"

	"github.com/preston-bernstein/f2p-catalog-service/internal/config"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.CatalogProvider {
	base := selectProvider(cfg, f.logger)
	// Admin refreshes and the poller share one limiter so a burst of manual
	// refreshes cannot exceed the upstream quota.
	limited := providers.NewRateLimitedProvider(base, upstreamMinInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}
