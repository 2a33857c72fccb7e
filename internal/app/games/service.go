package games

import (
	"time"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// Store defines the contract for persisting and retrieving the catalog.
type Store interface {
	ListGames() []domaingames.Game
	Snapshot() ([]domaingames.Game, string)
	GetGame(id int) (domaingames.Game, bool)
	SetGames(games []domaingames.Game)
	Len() int
	Version() string
	LoadedAt() time.Time
}

// Query describes a stateless catalog view: a filter, a search term and how
// many pages have been revealed.
type Query struct {
	Category catalog.Category
	Search   string
	Pages    int
}

// Service coordinates catalog operations using a Store.
type Service struct {
	store       Store
	browserOpts []catalog.Option
}

// NewService constructs a Service with the provided Store. Options are applied
// to every catalog.Store the service hands out.
func NewService(store Store, opts ...catalog.Option) *Service {
	return &Service{store: store, browserOpts: opts}
}

// Games returns the current catalog in upstream order.
func (s *Service) Games() []domaingames.Game {
	return s.store.ListGames()
}

// GameByID returns a single game if present.
func (s *Service) GameByID(id int) (domaingames.Game, bool) {
	return s.store.GetGame(id)
}

// ReplaceGames swaps the in-memory catalog with a new snapshot.
func (s *Service) ReplaceGames(games []domaingames.Game) {
	s.store.SetGames(games)
}

// Version fingerprints the current catalog; "" until the first load.
func (s *Service) Version() string {
	return s.store.Version()
}

// LoadedAt reports when the current catalog was stored.
func (s *Service) LoadedAt() time.Time {
	return s.store.LoadedAt()
}

// Ready reports whether a catalog has been loaded.
func (s *Service) Ready() bool {
	return s.store.Version() != ""
}

// Catalog returns the current games and the version that describes them.
func (s *Service) Catalog() ([]domaingames.Game, string) {
	return s.store.Snapshot()
}

// Browse returns a fresh catalog.Store loaded with the current catalog and the
// version of the data it was loaded from.
func (s *Service) Browse() (*catalog.Store, string) {
	games, version := s.store.Snapshot()
	b := catalog.NewStore(s.browserOpts...)
	b.Load(games)
	return b, version
}

// NewBrowser returns a fresh catalog.Store loaded with the current catalog.
func (s *Service) NewBrowser() *catalog.Store {
	b, _ := s.Browse()
	return b
}

// Query applies q to a throwaway browser and describes the resulting view.
func (s *Service) Query(q Query) domaingames.PageResponse {
	b := s.NewBrowser()
	if q.Category != "" {
		b.SetFilter(q.Category)
	}
	if q.Search != "" {
		b.SetSearchTerm(q.Search)
	}
	for page := 1; page < q.Pages && b.HasMore(); page++ {
		b.LoadMore()
	}
	return b.Snapshot()
}

// Featured picks count random games, preferring ones with thumbnails.
func (s *Service) Featured(count int) domaingames.FeaturedResponse {
	if count <= 0 {
		count = catalog.DefaultFeaturedCount
	}
	return domaingames.FeaturedResponse{Games: s.NewBrowser().PickFeatured(count, true)}
}
