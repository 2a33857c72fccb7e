package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// MemoryStore keeps a thread-safe, ordered snapshot of the catalog in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	games    []domaingames.Game
	byID     map[int]int
	version  string
	loadedAt time.Time
	now      func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[int]int),
		now:  time.Now,
	}
}

// ListGames returns a copy of the current catalog in load order.
func (s *MemoryStore) ListGames() []domaingames.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.Game, len(s.games))
	copy(result, s.games)
	return result
}

// Snapshot returns a copy of the catalog together with its fingerprint, read
// under one lock so the two always describe the same load.
func (s *MemoryStore) Snapshot() ([]domaingames.Game, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.Game, len(s.games))
	copy(result, s.games)
	return result, s.version
}

// GetGame retrieves a game by ID. Duplicate IDs resolve to the first occurrence.
func (s *MemoryStore) GetGame(id int) (domaingames.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return domaingames.Game{}, false
	}
	return s.games[idx], true
}

// SetGames replaces the existing catalog with a new snapshot.
func (s *MemoryStore) SetGames(games []domaingames.Game) {
	next := make([]domaingames.Game, len(games))
	copy(next, games)

	byID := make(map[int]int, len(next))
	for i, g := range next {
		if _, dup := byID[g.ID]; !dup {
			byID[g.ID] = i
		}
	}
	version := Fingerprint(next)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = next
	s.byID = byID
	s.version = version
	s.loadedAt = s.now().UTC()
}

// Len reports the number of games held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// Version returns the fingerprint of the current snapshot, or "" before the first load.
func (s *MemoryStore) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// LoadedAt returns when the current snapshot was stored.
func (s *MemoryStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Fingerprint hashes the catalog contents in order. Equal catalogs produce
// equal fingerprints.
func Fingerprint(games []domaingames.Game) string {
	d := xxhash.New()
	var buf []byte
	for _, g := range games {
		buf = strconv.AppendInt(buf[:0], int64(g.ID), 10)
		_, _ = d.Write(buf)
		for _, v := range []string{
			g.Title, g.Thumbnail, g.ShortDescription, g.Description, g.GameURL,
			g.Genre, g.Platform, g.Publisher, g.Developer, g.ReleaseDate.String(),
		} {
			_, _ = d.Write([]byte{0})
			_, _ = d.WriteString(v)
		}
		_, _ = d.Write([]byte{0x1e})
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
