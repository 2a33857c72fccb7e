package fixture

import (
	"context"
	"fmt"
	"time"

	domaingames "github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

const (
	platformPC      = "PC (Windows)"
	platformBrowser = "Web Browser"
)

// Provider returns a static catalog useful for local testing and bootstrapping.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

// FetchGames returns a deterministic catalog in a fixed order. Each call
// returns a fresh slice.
func (p *Provider) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Games(), nil
}

// Games returns the fixture catalog. It covers every category and includes a
// record without a thumbnail.
func Games() []domaingames.Game {
	return []domaingames.Game{
		game(540, "Overwatch 2", "Shooter", platformPC, "Activision Blizzard", "Blizzard Entertainment",
			"A hero-focused first-person team shooter from Blizzard Entertainment.",
			date(2022, time.October, 4)),
		game(517, "Lost Ark", "MMORPG", platformPC, "Amazon Games", "Smilegate RPG",
			"Smilegate's free-to-play multiplayer ARPG is a massive adventure filled with lands waiting to be explored.",
			date(2022, time.February, 11)),
		game(9, "World of Warships", "Shooter", platformPC, "Wargaming", "Wargaming",
			"A 3D free-to-play naval action-themed MMO from Wargaming.",
			date(2015, time.September, 17)),
		game(11, "Pirate101", "MMORPG", platformPC, "KingsIsle Entertainment", "KingsIsle Entertainment",
			"A free-to-play pirate-themed MMORPG full of cannons, crews and sky islands.",
			date(2012, time.October, 23)),
		game(1113, "Marvel Rivals", "Shooter", platformPC, "NetEase Games", "NetEase Games",
			"A super hero team-based PVP shooter set in the Marvel universe.",
			date(2024, time.December, 6)),
		game(58, "DC Universe Online", "MMORPG", platformPC, "Daybreak Game Company", "Dimensional Ink Games",
			"A free-to-play 3D action MMORPG set in the DC Comics universe.",
			date(2011, time.January, 11)),
		game(6, "Path of Exile", "ARPG", platformPC, "Grinding Gear Games", "Grinding Gear Games",
			"A free-to-play online action RPG with hardcore leagues and deep character builds.",
			date(2013, time.October, 23)),
		game(282, "Realm of the Mad God Exalt", "Shooter", platformPC, "DECA Games", "DECA Games",
			"A pixel art bullet-hell MMO where every character has permadeath.",
			date(2020, time.July, 20)),
		game(212, "Brawlhalla", "Fighting", platformPC, "Ubisoft", "Blue Mammoth Games",
			"A 2D platform fighter with retro-style brawls for up to eight players.",
			date(2017, time.October, 17)),
		game(345, "Tribal Wars", "Strategy", platformBrowser, "InnoGames", "InnoGames",
			"A browser-based strategy game where you build a village and forge tribes.",
			date(2003, time.August, 1)),
		game(442, "Krunker", "Shooter", platformBrowser, "FRVR", "Yendis Entertainment",
			"A fast-paced pixelated first-person shooter that runs in the browser.",
			date(2018, time.August, 1)),
		func() domaingames.Game {
			g := game(13, "Neverwinter", "MMORPG", platformPC, "Arc Games", "Cryptic Studios",
				"A free-to-play action MMORPG based on the Dungeons & Dragons universe.",
				date(2013, time.June, 20))
			g.Thumbnail = ""
			return g
		}(),
		game(21, "Genshin Impact", "Action RPG", "PC (Windows), Web Browser", "miHoYo", "miHoYo",
			"An open-world action RPG with a gacha twist and elemental combat.",
			date(2020, time.September, 28)),
		game(466, "Spellbreak", "Battle Royale", platformPC, "Proletariat", "Proletariat",
			"A magic-fueled battle royale where you cast spells instead of firing guns.",
			domaingames.Date{}),
	}
}

func game(id int, title, genre, platform, publisher, developer, short string, released domaingames.Date) domaingames.Game {
	return domaingames.Game{
		ID:               id,
		Title:            title,
		Thumbnail:        fmt.Sprintf("https://www.freetogame.com/g/%d/thumbnail.jpg", id),
		ShortDescription: short,
		GameURL:          fmt.Sprintf("https://www.freetogame.com/open/%d", id),
		Genre:            genre,
		Platform:         platform,
		Publisher:        publisher,
		Developer:        developer,
		ReleaseDate:      released,
	}
}

func date(year int, month time.Month, day int) domaingames.Date {
	return domaingames.NewDate(year, month, day)
}
