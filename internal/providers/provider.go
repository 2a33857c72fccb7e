package providers

import (
	"context"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// CatalogProvider fetches the full upstream catalog, normalized to domain
// games and kept in upstream order.
type CatalogProvider interface {
	FetchGames(ctx context.Context) ([]games.Game, error)
}
