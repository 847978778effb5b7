package pricing

import (
	"sort"

	"github.com/headlinebreaks/breakmeter/internal/profile"
)

// assignTiers labels entities by rank over adjusted score. Bands consume
// their fraction of the ranked universe in order; the last band takes every
// remaining rank, so the fractions never have to sum to one. Ties keep input
// order, matching the allocator's stability rule.
func assignTiers(entities []EntityResult, bands []profile.TierBand) {
	if len(bands) == 0 || len(entities) == 0 {
		return
	}

	order := make([]int, len(entities))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entities[order[a]].AdjustedScore > entities[order[b]].AdjustedScore
	})

	n := len(entities)
	rank := 0
	for bi, band := range bands {
		count := int(float64(n)*band.Fraction + 0.5)
		if count < 1 {
			count = 1
		}
		if bi == len(bands)-1 || rank+count > n {
			count = n - rank
		}
		for i := 0; i < count; i++ {
			entities[order[rank]].Tier = band.Label
			rank++
		}
		if rank >= n {
			break
		}
	}
}
