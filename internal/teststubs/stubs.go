package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// StubProvider is a test double for providers.CatalogProvider.
type StubProvider struct {
	Games  []domaingames.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Catalogs map[string]domaingames.CatalogSnapshot // keyed by date
	LoadErr  error
}

// LoadCatalog returns the snapshot for the given date if present.
func (s *StubSnapshotStore) LoadCatalog(date string) (domaingames.CatalogSnapshot, error) {
	if s.LoadErr != nil {
		return domaingames.CatalogSnapshot{}, s.LoadErr
	}
	snap, ok := s.Catalogs[date]
	if !ok {
		return domaingames.CatalogSnapshot{}, errors.New("snapshot not found")
	}
	return snap, nil
}

// LoadLatest returns the snapshot with the lexically greatest date key.
func (s *StubSnapshotStore) LoadLatest() (domaingames.CatalogSnapshot, error) {
	if s.LoadErr != nil {
		return domaingames.CatalogSnapshot{}, s.LoadErr
	}
	latest := ""
	for date := range s.Catalogs {
		if date > latest {
			latest = date
		}
	}
	if latest == "" {
		return domaingames.CatalogSnapshot{}, errors.New("snapshot not found")
	}
	return s.Catalogs[latest], nil
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]domaingames.CatalogSnapshot // keyed by date
	Err     error
}

// WriteCatalogSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteCatalogSnapshot(date string, snapshot domaingames.CatalogSnapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.Written == nil {
		w.Written = make(map[string]domaingames.CatalogSnapshot)
	}
	w.Written[date] = snapshot
	return nil
}

// Count returns the number of distinct dates written.
func (w *StubSnapshotWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}

// Snapshot returns the snapshot written for date.
func (w *StubSnapshotWriter) Snapshot(date string) (domaingames.CatalogSnapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap, ok := w.Written[date]
	return snap, ok
}
