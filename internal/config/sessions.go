package config

// SessionConfig bounds the browse-session registry.
type SessionConfig struct {
	TTL         Duration
	MaxSessions int
}

func loadSessions(src source) SessionConfig {
	return SessionConfig{
		TTL:         src.durationOrDefault(envSessionTTL, defaultSessionTTL),
		MaxSessions: src.intOrDefault(envSessionMax, defaultSessionMax),
	}
}
