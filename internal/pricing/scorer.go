package pricing

import (
	"fmt"
	"sort"

	"github.com/headlinebreaks/breakmeter/internal/profile"
)

type comboRule struct {
	members []int
	weight  float64
}

// Scorer converts a signal vector into a scalar demand score: the profile's
// base presence weight plus the weight of every true category, with combo
// rules evaluated first. A matched combo's weight supersedes its member
// weights rather than adding to them.
type Scorer struct {
	base    float64
	weights []float64
	combos  []comboRule
}

// NewScorer resolves the profile's weight table and combo rules against the
// fixed category order.
func NewScorer(p *profile.Profile) (*Scorer, error) {
	index := make(map[string]int, len(p.Categories))
	s := &Scorer{
		base:    p.BaseWeight,
		weights: make([]float64, len(p.Categories)),
	}
	for i, cat := range p.Categories {
		index[cat.Name] = i
		s.weights[i] = cat.Weight
	}
	for _, c := range p.Combos {
		rule := comboRule{weight: c.Weight}
		for _, name := range c.Categories {
			i, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("combo references unknown category %q", name)
			}
			rule.members = append(rule.members, i)
		}
		s.combos = append(s.combos, rule)
	}
	// Larger combos first so rookie+auto+patch wins over rookie+auto.
	sort.SliceStable(s.combos, func(i, j int) bool {
		return len(s.combos[i].members) > len(s.combos[j].members)
	})
	return s, nil
}

// RowScore scores one row's signal vector.
func (s *Scorer) RowScore(v SignalVector) float64 {
	consumed := make([]bool, len(v))
	score := s.base

	for _, combo := range s.combos {
		matched := true
		for _, i := range combo.members {
			if !v[i] || consumed[i] {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		score += combo.weight
		for _, i := range combo.members {
			consumed[i] = true
		}
	}

	for i, set := range v {
		if set && !consumed[i] {
			score += s.weights[i]
		}
	}
	return score
}
