package catalog

import (
	"math/rand/v2"

	"github.com/preston-bernstein/f2p-catalog-service/internal/domain/games"
)

// PickFeatured returns up to count games drawn uniformly at random without
// replacement. With preferThumbnails, the draw is restricted to games that
// have a thumbnail as long as at least count of them exist. Order is random.
func (s *Store) PickFeatured(count int, preferThumbnails bool) []games.Game {
	if count <= 0 || len(s.all) == 0 {
		return []games.Game{}
	}

	pool := s.all
	if preferThumbnails {
		withThumbs := make([]games.Game, 0, len(s.all))
		for _, g := range s.all {
			if g.HasThumbnail() {
				withThumbs = append(withThumbs, g)
			}
		}
		if len(withThumbs) >= count {
			pool = withThumbs
		}
	}

	return sample(pool, count, s.intN)
}

func (s *Store) intN(n int) int {
	if s.rng != nil {
		return s.rng.IntN(n)
	}
	return rand.IntN(n)
}

// sample runs a partial Fisher-Yates shuffle over a copy of pool.
func sample(pool []games.Game, count int, intN func(int) int) []games.Game {
	shuffled := make([]games.Game, len(pool))
	copy(shuffled, pool)

	n := min(count, len(shuffled))
	for i := 0; i < n; i++ {
		j := i + intN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:n]
}
