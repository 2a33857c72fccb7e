package catalog

import (
	"strings"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

var searchFields = []field{title, genre, shortDescription, developer}

// QueryMatches reports whether the trimmed, case-folded term is a substring of
// the game's title, genre, short description or developer. An empty term
// matches nothing; callers treat an empty search as "no search".
func QueryMatches(term string, g games.Game) bool {
	return queryMatchesFolded(normalizeTerm(term), g)
}

func normalizeTerm(term string) string {
	return fold(strings.TrimSpace(term))
}

func queryMatchesFolded(term string, g games.Game) bool {
	if term == "" {
		return false
	}
	for _, f := range searchFields {
		if containsFolded(f(g), term) {
			return true
		}
	}
	return false
}
