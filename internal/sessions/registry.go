package sessions

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/logging"
	"github.com/preston-bernstein/f2p-catalog-service/internal/metrics"
)

const (
	defaultTTL         = 30 * time.Minute
	defaultMaxSessions = 1000
)

var (
	// ErrSessionNotFound is returned for unknown, deleted or expired sessions.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionLimit is returned by Create when the registry is full.
	ErrSessionLimit = errors.New("session limit reached")
)

// Source supplies the shared catalog that sessions browse.
type Source interface {
	Version() string
	Catalog() ([]domaingames.Game, string)
	Browse() (*catalog.Store, string)
}

// View describes a session and its current page.
type View struct {
	ID             string    `json:"id"`
	CatalogVersion string    `json:"catalog_version"`
	Stale          bool      `json:"stale"`
	ExpiresAt      time.Time `json:"expires_at"`
	domaingames.PageResponse
}

type session struct {
	id string

	mu       sync.Mutex
	store    *catalog.Store
	version  string
	lastSeen time.Time
	closed   bool
}

// Registry owns browse sessions. Each session wraps one catalog.Store and
// serialises every call to it.
type Registry struct {
	source  Source
	ttl     time.Duration
	max     int
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	newID   func() string

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewRegistry constructs a Registry. Non-positive ttl or max use defaults.
func NewRegistry(source Source, ttl time.Duration, max int, logger *slog.Logger, recorder *metrics.Recorder) *Registry {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if max <= 0 {
		max = defaultMaxSessions
	}
	return &Registry{
		source:   source,
		ttl:      ttl,
		max:      max,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		sessions: make(map[string]*session),
	}
}

// Create opens a session on the current catalog.
func (r *Registry) Create() (View, error) {
	r.mu.RLock()
	full := len(r.sessions) >= r.max
	r.mu.RUnlock()
	if full {
		r.Sweep()
	}

	browser, version := r.source.Browse()
	s := &session{
		id:       r.newID(),
		store:    browser,
		version:  version,
		lastSeen: r.now(),
	}

	r.mu.Lock()
	if len(r.sessions) >= r.max {
		r.mu.Unlock()
		return View{}, ErrSessionLimit
	}
	r.sessions[s.id] = s
	r.mu.Unlock()

	r.metrics.RecordSessionDelta(1)
	logging.Info(r.logger, "session created",
		logging.FieldSession, s.id,
		logging.FieldCatalogVersion, s.version,
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	return r.view(s), nil
}

// Get returns the session's current view and refreshes its expiry.
func (r *Registry) Get(id string) (View, error) {
	return r.Do(id, nil)
}

// Do runs fn against the session's store while holding the session lock and
// returns the resulting view. A nil fn only refreshes the expiry.
func (r *Registry) Do(id string, fn func(*catalog.Store)) (View, error) {
	return r.do(id, func(s *session) {
		if fn != nil {
			fn(s.store)
		}
	})
}

// Reload replaces the session's catalog with the current shared catalog,
// keeping its filter and search term.
func (r *Registry) Reload(id string) (View, error) {
	return r.do(id, func(s *session) {
		games, version := r.source.Catalog()
		s.store.Load(games)
		s.version = version
	})
}

// Delete closes a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	r.metrics.RecordSessionDelta(-1)
	logging.Info(r.logger, "session deleted", logging.FieldSession, id)
	return nil
}

// Len reports the number of open sessions, including expired ones not yet swept.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes expired sessions and returns how many were removed. Sessions
// in use are skipped.
func (r *Registry) Sweep() int {
	now := r.now()

	r.mu.Lock()
	removed := 0
	for id, s := range r.sessions {
		if !s.mu.TryLock() {
			continue
		}
		if r.expired(s, now) {
			s.closed = true
			delete(r.sessions, id)
			removed++
		}
		s.mu.Unlock()
	}
	r.mu.Unlock()

	if removed > 0 {
		r.metrics.RecordSessionDelta(-removed)
		logging.Info(r.logger, "sessions swept", logging.FieldCount, removed)
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) do(id string, fn func(*session)) (View, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return View{}, ErrSessionNotFound
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return View{}, ErrSessionNotFound
	}
	now := r.now()
	if r.expired(s, now) {
		s.closed = true
		s.mu.Unlock()
		r.remove(s)
		return View{}, ErrSessionNotFound
	}
	fn(s)
	s.lastSeen = now
	v := r.view(s)
	s.mu.Unlock()
	return v, nil
}

// remove drops s from the map if it is still the registered session for its id.
func (r *Registry) remove(s *session) {
	r.mu.Lock()
	current, ok := r.sessions[s.id]
	if ok && current == s {
		delete(r.sessions, s.id)
	}
	r.mu.Unlock()
	if ok && current == s {
		r.metrics.RecordSessionDelta(-1)
		logging.Info(r.logger, "session expired", logging.FieldSession, s.id)
	}
}

func (r *Registry) expired(s *session, now time.Time) bool {
	return now.Sub(s.lastSeen) > r.ttl
}

// view must be called with s.mu held.
func (r *Registry) view(s *session) View {
	current := r.source.Version()
	return View{
		ID:             s.id,
		CatalogVersion: s.version,
		Stale:          current != "" && current != s.version,
		ExpiresAt:      s.lastSeen.Add(r.ttl).UTC(),
		PageResponse:   s.store.Snapshot(),
	}
}
