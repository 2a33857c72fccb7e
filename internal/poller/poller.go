package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
	"github.com/preston-bernstein/f2p-catalog-service/internal/timeutil"
)

const defaultInterval = 30 * time.Minute

// SnapshotWriter persists catalog snapshots to disk.
type SnapshotWriter interface {
	WriteCatalogSnapshot(date string, snapshot domaingames.CatalogSnapshot) error
}

// CatalogSink receives each freshly fetched catalog.
type CatalogSink interface {
	ReplaceGames(games []domaingames.Game)
	Version() string
}

// Poller fetches the catalog on an interval, swaps it into the sink and
// writes the day's snapshot to disk.
type Poller struct {
	provider providers.CatalogProvider
	sink     CatalogSink
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	refreshMu sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
	LastAttempt         time.Time `json:"last_attempt"`
	LastSuccess         time.Time `json:"last_success"`
	CatalogSize         int       `json:"catalog_size"`
	CatalogVersion      string    `json:"catalog_version,omitempty"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(provider providers.CatalogProvider, sink CatalogSink, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		provider: provider,
		sink:     sink,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		_ = p.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				_ = p.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// Refresh runs one fetch cycle and returns the provider error, if any.
// Concurrent calls are serialised.
func (p *Poller) Refresh(ctx context.Context) error {
	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	start := time.Now()
	p.recordAttempt(start)

	if p.provider == nil {
		p.recordFailure(providers.ErrProviderUnavailable, start)
		return providers.ErrProviderUnavailable
	}

	games, err := p.provider.FetchGames(ctx)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		p.logError("poller fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return err
	}

	version := ""
	if p.sink != nil {
		p.sink.ReplaceGames(games)
		version = p.sink.Version()
	}

	if p.writer != nil {
		now := p.now().UTC()
		today := timeutil.FormatDate(now)
		snap := domaingames.NewCatalogSnapshot(today, now, games)
		if writeErr := p.writer.WriteCatalogSnapshot(today, snap); writeErr != nil {
			p.logError("poller snapshot write failed", writeErr)
		}
	}

	p.recordSuccess(start, len(games), version)
	p.logInfo("poller refreshed catalog",
		logging.FieldCount, len(games),
		logging.FieldCatalogVersion, version,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	logging.Error(p.logger, msg, err, attrs...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, size int, version string) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.CatalogSize = size
	p.status.CatalogVersion = version
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
