package testutil

import (
	"github.com/preston-bernstein/f2p-catalog-service/internal/app/games"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/store"
)

// NewServiceWithGames builds a catalog service backed by an in-memory store
// preloaded with games. A nil slice leaves the catalog unloaded.
func NewServiceWithGames(g []domaingames.Game) *games.Service {
	ms := store.NewMemoryStore()
	if g != nil {
		ms.SetGames(g)
	}
	return games.NewService(ms)
}
