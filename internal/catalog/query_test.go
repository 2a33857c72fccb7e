package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

func TestQueryMatchesSearchableFields(t *testing.T) {
	g := games.Game{
		Title:            "World of Warships",
		Genre:            "Shooter",
		ShortDescription: "A naval action MMO.",
		Description:      "Hidden lore about krakens.",
		Developer:        "Wargaming",
	}

	assert.True(t, QueryMatches("warships", g))
	assert.True(t, QueryMatches("SHOOT", g))
	assert.True(t, QueryMatches("naval action", g))
	assert.True(t, QueryMatches("  wargaming  ", g))
	assert.False(t, QueryMatches("kraken", g), "full description is not searchable")
	assert.False(t, QueryMatches("racing", g))
}

func TestQueryMatchesBlankTermMatchesNothing(t *testing.T) {
	g := games.Game{Title: "Anything"}
	assert.False(t, QueryMatches("", g))
	assert.False(t, QueryMatches("   ", g))
}

func TestQueryMatchesAbsentFields(t *testing.T) {
	assert.False(t, QueryMatches("a", games.Game{}))
}

func TestQueryMatchesFoldsUnicode(t *testing.T) {
	g := games.Game{Title: "STRASSE Racer"}
	assert.True(t, QueryMatches("straße", g))
}
