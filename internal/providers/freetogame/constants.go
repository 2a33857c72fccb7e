package freetogame

import "time"

const (
	providerName = "freetogame"

	defaultBaseURL     = "https://www.freetogame.com/api"
	defaultRapidHost   = "free-to-play-games-database.p.rapidapi.com"
	defaultHTTPTimeout = 10 * time.Second

	headerRapidKey  = "x-rapidapi-key"
	headerRapidHost = "x-rapidapi-host"

	maxErrorBody = 512
)
