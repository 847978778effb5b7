package pricing

import (
	"strings"

	"github.com/headlinebreaks/breakmeter/internal/profile"
)

// Momentum and velocity categories map to fixed multipliers. Unknown or
// empty values are neutral, so absent adjustment state never changes a score.
var (
	momentumFactors = map[string]float64{
		"hot":     1.15,
		"neutral": 1.0,
		"cold":    0.85,
	}
	velocityFactors = map[string]float64{
		"fast":   1.10,
		"normal": 1.0,
		"slow":   0.90,
	}
)

// MomentumValues lists the accepted momentum categories.
func MomentumValues() []string { return []string{"hot", "neutral", "cold"} }

// VelocityValues lists the accepted velocity categories.
func VelocityValues() []string { return []string{"fast", "normal", "slow"} }

// ValidAdjustment reports whether both fields name known categories.
// Empty fields are valid and mean neutral.
func ValidAdjustment(a Adjustment) bool {
	if a.Momentum != "" {
		if _, ok := momentumFactors[strings.ToLower(a.Momentum)]; !ok {
			return false
		}
	}
	if a.Velocity != "" {
		if _, ok := velocityFactors[strings.ToLower(a.Velocity)]; !ok {
			return false
		}
	}
	return true
}

func factorOf(table map[string]float64, key string) float64 {
	if f, ok := table[strings.ToLower(key)]; ok {
		return f
	}
	return 1.0
}

// AdjustScore applies the multiplicative revision for one entity:
// base score x market factor x momentum factor x velocity factor.
func AdjustScore(p *profile.Profile, entity string, base float64, state AdjustmentState) float64 {
	adjusted := base
	if f, ok := p.MarketFactors[entity]; ok {
		adjusted *= f
	}
	if adj, ok := state[entity]; ok {
		adjusted *= factorOf(momentumFactors, adj.Momentum)
		adjusted *= factorOf(velocityFactors, adj.Velocity)
	}
	return adjusted
}
