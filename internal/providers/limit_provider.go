package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// rateLimitedProvider wraps a CatalogProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     CatalogProvider
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns a CatalogProvider that spaces calls at least interval apart.
// The first call proceeds immediately; later calls block until the interval elapses.
func NewRateLimitedProvider(next CatalogProvider, interval time.Duration, logger *slog.Logger) CatalogProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context) ([]games.Game, error) {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return nil, ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.last.IsZero() {
		if wait := p.interval - p.now().Sub(p.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled")
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	p.last = p.now()
	logWithProvider(ctx, p.logger, slog.LevelDebug, "rate-limited", "rate-limited provider fetch")
	return p.next.FetchGames(ctx)
}
