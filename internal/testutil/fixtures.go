package testutil

import (
	"fmt"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// SampleGame returns a minimal game fixture with the provided id.
func SampleGame(id int) domaingames.Game {
	return domaingames.Game{
		ID:               id,
		Title:            fmt.Sprintf("Game %d", id),
		Thumbnail:        fmt.Sprintf("https://example.test/g/%d/thumbnail.jpg", id),
		ShortDescription: "A free-to-play test game.",
		GameURL:          fmt.Sprintf("https://example.test/open/%d", id),
		Genre:            "Strategy",
		Platform:         "PC (Windows)",
		Publisher:        "Test Publisher",
		Developer:        "Test Studio",
		ReleaseDate:      domaingames.NewDate(2020, 1, 2),
	}
}

// SampleGames returns n sample games with ids 1..n.
func SampleGames(n int) []domaingames.Game {
	out := make([]domaingames.Game, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, SampleGame(i))
	}
	return out
}

// SampleSnapshot builds a CatalogSnapshot holding the given games.
func SampleSnapshot(date string, games ...domaingames.Game) domaingames.CatalogSnapshot {
	return domaingames.CatalogSnapshot{
		Date:  date,
		Games: games,
	}
}
