package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/config"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/fixture"
	"github.com/preston-bernstein/f2p-catalog-service/internal/providers/freetogame"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.CatalogProvider {
	switch strings.ToLower(cfg.Provider) {
	case "fixture", "":
		return fixture.New()
	case "freetogame":
		return freetogame.NewClient(freetogame.Config{
			BaseURL:  cfg.FreeToGame.BaseURL,
			APIKey:   cfg.FreeToGame.APIKey,
			APIHost:  cfg.FreeToGame.APIHost,
			Platform: cfg.FreeToGame.Platform,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
