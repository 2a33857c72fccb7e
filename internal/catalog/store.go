package catalog

import (
	"math/rand/v2"
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

const (
	// DefaultPageSize is the page size after every load, filter or search change.
	DefaultPageSize = 9
	// PageIncrement is added to the page size by LoadMore.
	PageIncrement = 9
	// DefaultFeaturedCount is the carousel size used when callers do not ask for one.
	DefaultFeaturedCount = 5
)

// Option configures a Store.
type Option func(*Store)

// WithRand sets the random source used by PickFeatured.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		s.rng = r
	}
}

// Store holds a loaded catalog plus the current filter, search term and page
// size, and derives the visible subset from them.
type Store struct {
	all      []games.Game
	byID     map[int]int
	filtered []games.Game
	filter   Category
	search   string
	pageSize int
	rng      *rand.Rand
}

// NewStore returns an empty Store with the "all" filter and no search term.
func NewStore(opts ...Option) *Store {
	s := &Store{
		byID:     map[int]int{},
		filter:   CategoryAll,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the whole catalog, keeping the current filter and search term.
func (s *Store) Load(records []games.Game) {
	all := make([]games.Game, len(records))
	copy(all, records)

	byID := make(map[int]int, len(all))
	for i, g := range all {
		if _, dup := byID[g.ID]; !dup {
			byID[g.ID] = i
		}
	}

	s.all = all
	s.byID = byID
	s.recompute()
}

// SetFilter switches the active category and resets the page size.
func (s *Store) SetFilter(category Category) {
	s.filter = category
	s.recompute()
}

// SetSearchTerm switches the search term and resets the page size. A blank
// term clears the search.
func (s *Store) SetSearchTerm(term string) {
	s.search = term
	s.recompute()
}

// ClearSearch is SetSearchTerm("").
func (s *Store) ClearSearch() {
	s.SetSearchTerm("")
}

// LoadMore grows the page size by PageIncrement and returns the new visible page.
func (s *Store) LoadMore() []games.Game {
	s.pageSize += PageIncrement
	return s.VisiblePage()
}

// VisiblePage returns the first PageSize records of the filtered view.
func (s *Store) VisiblePage() []games.Game {
	n := min(s.pageSize, len(s.filtered))
	page := make([]games.Game, n)
	copy(page, s.filtered[:n])
	return page
}

// HasMore reports whether records exist beyond the visible page.
func (s *Store) HasMore() bool {
	return s.pageSize < len(s.filtered)
}

// FindByID looks a game up in the full catalog, ignoring filters.
func (s *Store) FindByID(id int) (games.Game, bool) {
	i, ok := s.byID[id]
	if !ok {
		return games.Game{}, false
	}
	return s.all[i], true
}

// Filter returns the active category.
func (s *Store) Filter() Category { return s.filter }

// SearchTerm returns the search term as it was set.
func (s *Store) SearchTerm() string { return s.search }

// PageSize returns the number of records currently exposed.
func (s *Store) PageSize() int { return s.pageSize }

// Len returns the size of the full catalog.
func (s *Store) Len() int { return len(s.all) }

// Total returns the size of the filtered view.
func (s *Store) Total() int { return len(s.filtered) }

// Filtered returns a copy of the whole filtered view.
func (s *Store) Filtered() []games.Game {
	out := make([]games.Game, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Snapshot describes the current view.
func (s *Store) Snapshot() games.PageResponse {
	return games.PageResponse{
		Filter:   string(s.filter),
		Search:   strings.TrimSpace(s.search),
		PageSize: s.pageSize,
		Total:    len(s.filtered),
		HasMore:  s.HasMore(),
		Games:    s.VisiblePage(),
	}
}

// recompute is the only place filtering happens: category AND search, in
// catalog order.
func (s *Store) recompute() {
	term := normalizeTerm(s.search)
	filtered := make([]games.Game, 0, len(s.all))
	for _, g := range s.all {
		if !Matches(s.filter, g) {
			continue
		}
		if term != "" && !queryMatchesFolded(term, g) {
			continue
		}
		filtered = append(filtered, g)
	}
	s.filtered = filtered
	s.pageSize = DefaultPageSize
}
