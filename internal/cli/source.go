package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/catalog"
	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/fixture"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/freetogame"
	"github.com/preston-bernstein/f2p-catalog-service/internal/snapshots"
)

// loadGames reads the catalog from --snapshot when given, otherwise from the
// configured provider.
func (a *app) loadGames(ctx context.Context) ([]domaingames.Game, error) {
	if a.snapshotPath != "" {
		snap, err := snapshots.LoadFile(a.snapshotPath)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		return snap.Games, nil
	}

	provider, name, err := a.provider()
	if err != nil {
		return nil, err
	}
	games, err := providers.NewRetryingProvider(provider, a.logger, nil, name, 0, 0).FetchGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog from %s: %w", name, err)
	}
	return games, nil
}

func (a *app) provider() (providers.CatalogProvider, string, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, "", err
	}
	name := strings.ToLower(strings.TrimSpace(a.providerName))
	if name == "" {
		name = strings.ToLower(cfg.Provider)
	}
	switch name {
	case "", "fixture":
		return fixture.New(), "fixture", nil
	case "freetogame":
		return freetogame.NewClient(freetogame.Config{
			BaseURL:  cfg.FreeToGame.BaseURL,
			APIKey:   cfg.FreeToGame.APIKey,
			APIHost:  cfg.FreeToGame.APIHost,
			Platform: cfg.FreeToGame.Platform,
		}), name, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q (fixture, freetogame)", name)
	}
}

// browser loads the catalog into a fresh Store.
func (a *app) browser(ctx context.Context, opts ...catalog.Option) (*catalog.Store, error) {
	games, err := a.loadGames(ctx)
	if err != nil {
		return nil, err
	}
	s := catalog.NewStore(opts...)
	s.Load(games)
	return s, nil
}
