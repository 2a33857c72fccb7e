package freetogame

import (
	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

func mapGame(g gameResponse) games.Game {
	return games.Game{
		ID:               g.ID,
		Title:            g.Title.trimmed(),
		Thumbnail:        g.Thumbnail.trimmed(),
		ShortDescription: g.ShortDescription.trimmed(),
		Description:      g.Description.trimmed(),
		GameURL:          g.GameURL.trimmed(),
		Genre:            g.Genre.trimmed(),
		Platform:         g.Platform.trimmed(),
		Publisher:        g.Publisher.trimmed(),
		Developer:        g.Developer.trimmed(),
		ReleaseDate:      games.ParseDate(string(g.ReleaseDate)),
	}
}

func mapGames(list []gameResponse) []games.Game {
	out := make([]games.Game, 0, len(list))
	for _, g := range list {
		out = append(out, mapGame(g))
	}
	return out
}
