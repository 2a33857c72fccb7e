package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
	"github.com/preston-bernstein/f2p-catalog-service/internal/teststubs"
)

type stubSink struct {
	mu       sync.Mutex
	replaced [][]domaingames.Game
}

func (s *stubSink) ReplaceGames(games []domaingames.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, games)
}

func (s *stubSink) Version() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replaced) == 0 {
		return ""
	}
	return "v1"
}

func (s *stubSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replaced)
}

func TestPollerFetchesAndWritesSnapshot(t *testing.T) {
	g := domaingames.Game{ID: 540, Title: "Overwatch 2", Genre: "Shooter"}

	provider := &teststubs.StubProvider{
		Games:  []domaingames.Game{g},
		Notify: make(chan struct{}),
	}
	sink := &stubSink{}
	writer := &teststubs.StubSnapshotWriter{}

	p := New(provider, sink, writer, nil, nil, 10*time.Millisecond)
	// Fix the time for deterministic date.
	p.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	time.Sleep(30 * time.Millisecond) // allow at least one ticker fire

	cancel()
	_ = p.Stop(context.Background())

	snap, ok := writer.Snapshot("2024-01-15")
	if !ok {
		t.Fatalf("expected snapshot written for 2024-01-15")
	}
	if len(snap.Games) != 1 || snap.Games[0].ID != 540 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Date != "2024-01-15" || snap.FetchedAt.IsZero() {
		t.Fatalf("unexpected snapshot metadata: %+v", snap)
	}
	if sink.count() < 1 {
		t.Fatalf("expected catalog pushed to sink")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	provider := &teststubs.StubProvider{
		Games:  []domaingames.Game{},
		Notify: make(chan struct{}),
	}

	p := New(provider, &stubSink{}, &teststubs.StubSnapshotWriter{}, nil, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)

	select {
	case <-provider.Notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial fetch")
	}

	cancel()
	_ = p.Stop(context.Background())
	time.Sleep(10 * time.Millisecond) // let an in-flight cycle finish

	callsAfterStop := provider.Calls.Load()
	time.Sleep(20 * time.Millisecond)
	if provider.Calls.Load() != callsAfterStop {
		t.Fatalf("expected no additional fetches after stop; before=%d after=%d", callsAfterStop, provider.Calls.Load())
	}
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubProvider{}, nil, nil, nil, nil, time.Hour)

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("first stop returned error: %v", err)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("second stop returned error: %v", err)
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	p := New(&teststubs.StubProvider{}, nil, nil, nil, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p.Start(ctx)
	p.Start(ctx) // should no-op

	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("stop returned error: %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	p := New(&teststubs.StubProvider{}, nil, &teststubs.StubSnapshotWriter{}, nil, nil, 0)
	if p.interval != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, p.interval)
	}
}

func TestPollerStartReturnsWhenAlreadyStarted(t *testing.T) {
	p := New(&teststubs.StubProvider{}, nil, &teststubs.StubSnapshotWriter{}, nil, nil, time.Hour)
	p.started = true
	p.Start(context.Background())
	if p.ticker != nil {
		t.Fatalf("expected ticker not to be created when already started")
	}
}

func TestPollerStatusTracksFailuresAndSuccess(t *testing.T) {
	provider := &teststubs.StubProvider{
		Games: []domaingames.Game{{ID: 1}, {ID: 2}},
		Err:   errors.New("boom"),
	}
	rec := metrics.NewRecorder()

	p := New(provider, &stubSink{}, &teststubs.StubSnapshotWriter{}, nil, rec, time.Millisecond)
	ctx := context.Background()

	if err := p.Refresh(ctx); err == nil {
		t.Fatalf("expected refresh error")
	}
	status := p.Status()
	if status.ConsecutiveFailures != 1 {
		t.Fatalf("expected 1 failure, got %d", status.ConsecutiveFailures)
	}
	if status.LastError == "" {
		t.Fatalf("expected last error recorded")
	}
	if !status.LastSuccess.IsZero() {
		t.Fatalf("expected no success recorded yet")
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}

	provider.Err = nil
	if err := p.Refresh(ctx); err != nil {
		t.Fatalf("expected refresh success, got %v", err)
	}
	status = p.Status()
	if status.ConsecutiveFailures != 0 {
		t.Fatalf("expected failures reset, got %d", status.ConsecutiveFailures)
	}
	if status.LastSuccess.IsZero() {
		t.Fatalf("expected success timestamp")
	}
	if status.CatalogSize != 2 || status.CatalogVersion != "v1" {
		t.Fatalf("expected catalog details in status, got %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestPollerNotReadyAfterRepeatedFailures(t *testing.T) {
	provider := &teststubs.StubProvider{}
	p := New(provider, nil, nil, nil, nil, time.Minute)
	_ = p.Refresh(context.Background())

	provider.Err = errors.New("down")
	for i := 0; i < 3; i++ {
		_ = p.Refresh(context.Background())
	}
	if p.Status().IsReady() {
		t.Fatalf("expected not ready after three consecutive failures")
	}
}

func TestPollerLogsOnErrorAndSuccess(t *testing.T) {
	provider := &teststubs.StubProvider{
		Err: errors.New("fail"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	p := New(provider, &stubSink{}, &teststubs.StubSnapshotWriter{}, logger, nil, time.Second)
	_ = p.Refresh(context.Background()) // should log error

	provider.Err = nil
	provider.Games = []domaingames.Game{{ID: 1}}
	_ = p.Refresh(context.Background()) // should log info
}

func TestPollerNilProvider(t *testing.T) {
	p := New(nil, nil, nil, nil, nil, time.Minute)
	if err := p.Refresh(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestPollerNilWriterDoesNotPanic(t *testing.T) {
	provider := &teststubs.StubProvider{Games: []domaingames.Game{{ID: 1}}}
	p := New(provider, &stubSink{}, nil, nil, nil, time.Minute)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPollerWriteErrorLogsButContinues(t *testing.T) {
	provider := &teststubs.StubProvider{Games: []domaingames.Game{{ID: 1}}}
	writer := &teststubs.StubSnapshotWriter{Err: errors.New("write failed")}
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	sink := &stubSink{}

	p := New(provider, sink, writer, logger, nil, time.Minute)
	_ = p.Refresh(context.Background())

	// Should still record success even if write fails.
	if p.Status().ConsecutiveFailures != 0 {
		t.Fatalf("expected success despite write error")
	}
	if sink.count() != 1 {
		t.Fatalf("expected catalog still replaced")
	}
}

func BenchmarkPollerRefresh(b *testing.B) {
	provider := &teststubs.StubProvider{
		Games: []domaingames.Game{{ID: 540, Title: "Overwatch 2", Genre: "Shooter"}},
	}
	p := New(provider, &stubSink{}, &teststubs.StubSnapshotWriter{}, nil, nil, time.Second)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = p.Refresh(ctx)
	}
}
