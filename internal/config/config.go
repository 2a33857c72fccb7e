package config

import "fmt"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	AdminToken   string
	FreeToGame   FreeToGameConfig
	Metrics      MetricsConfig
	Snapshots    SnapshotConfig
	Sessions     SessionConfig
	Log          LogConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment (plus optional .env and
// CONFIG_FILE) with sensible defaults.
func Load() (Config, error) {
	src, err := newSource()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return Config{
		Port:         src.stringOrDefault(envPort, defaultPort),
		PollInterval: src.durationOrDefault(envPollInterval, defaultPollInterval),
		Provider:     src.stringOrDefault(envProvider, defaultProvider),
		AdminToken:   src.stringOrDefault(envAdminToken, ""),
		FreeToGame:   loadFreeToGame(src),
		Metrics:      loadMetrics(src),
		Snapshots:    loadSnapshots(src),
		Sessions:     loadSessions(src),
		Log: LogConfig{
			Level:  src.stringOrDefault(envLogLevel, defaultLogLevel),
			Format: src.stringOrDefault(envLogFormat, defaultLogFormat),
		},
	}, nil
}
