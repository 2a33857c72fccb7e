package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 30 * time.Second
)

// retryingProvider wraps a CatalogProvider with exponential backoff, honoring
// Retry-After hints from rate-limited responses.
type retryingProvider struct {
	inner       CatalogProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner CatalogProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) CatalogProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchGames(ctx context.Context) ([]games.Game, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	hinted := &retryAfterBackOff{BackOff: r.newBackOff()}
	policy := backoff.WithContext(backoff.WithMaxRetries(hinted, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	list, err := backoff.RetryWithData(func() ([]games.Game, error) {
		attempt++
		start := time.Now()
		list, err := r.inner.FetchGames(ctx)
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return list, nil
		}

		if _, invalid := catalog.AsValidationError(err); invalid {
			return nil, backoff.Permanent(err)
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			hinted.hint = rl.RetryAfter
		}
		if attempt < r.maxAttempts {
			logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
				"attempt", attempt, "max_attempts", r.maxAttempts, "error", err)
		}
		return nil, err
	}, policy)
	if err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
			"attempts", attempt, "error", err)
		return nil, err
	}
	return list, nil
}

// retryAfterBackOff stretches the next delay to an upstream Retry-After hint.
type retryAfterBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.hint > next {
		next = b.hint
	}
	b.hint = 0
	return next
}
