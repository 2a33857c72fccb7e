package config

const (
	envF2PBaseURL  = "FREETOGAME_BASE_URL"
	envF2PAPIKey   = "FREETOGAME_API_KEY"
	envF2PAPIHost  = "FREETOGAME_API_HOST"
	envF2PPlatform = "FREETOGAME_PLATFORM"

	defaultF2PBaseURL = "https://www.freetogame.com/api"
)

// FreeToGameConfig controls how we talk to the free-to-play games API. When
// APIKey is set the client sends RapidAPI headers.
type FreeToGameConfig struct {
	BaseURL  string
	APIKey   string
	APIHost  string
	Platform string
}

func loadFreeToGame(src source) FreeToGameConfig {
	return FreeToGameConfig{
		BaseURL:  src.stringOrDefault(envF2PBaseURL, defaultF2PBaseURL),
		APIKey:   src.stringOrDefault(envF2PAPIKey, ""),
		APIHost:  src.stringOrDefault(envF2PAPIHost, ""),
		Platform: src.stringOrDefault(envF2PPlatform, ""),
	}
}
