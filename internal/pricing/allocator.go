package pricing

import "errors"

// Caller input errors. All are fatal to the run; there is no partial output
// and nothing transient to retry.
var (
	ErrEmptyUniverse      = errors.New("no priceable entities")
	ErrInvalidTarget      = errors.New("target total must be positive")
	ErrInvalidFloor       = errors.New("floor price cannot be negative")
	ErrInvalidGranularity = errors.New("rounding granularity must be positive")
	ErrInfeasibleFloor    = errors.New("floor price infeasible for target total")
	ErrZeroTotalScore     = errors.New("total score is zero and the zero-score policy is fail")
	ErrNegativeScore      = errors.New("entity scores cannot be negative")
)

// AllocationInput is one entity's adjusted score, in stable input order.
type AllocationInput struct {
	Name  string
	Score float64
}

// Allocate distributes targetCents across entities proportionally to score,
// floor-first:
//
//	pool    = target - floor*n          (fails when negative)
//	weight  = score / sum(scores)       (equal split or fail at zero total)
//	raw     = floor + weight*pool
//
// Each raw price is rounded to the nearest multiple of granularityCents,
// bumped up to the floor where nearest-rounding dipped below it, and the
// whole rounding difference lands on the single highest-priced entity so the
// final sum reconciles exactly to the target. That one entity may sit within
// a rounding unit of the floor on either side; everything else is >= floor.
func Allocate(entities []AllocationInput, targetCents, floorCents, granularityCents int64, policy ZeroScorePolicy) ([]int64, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyUniverse
	}
	if targetCents <= 0 {
		return nil, ErrInvalidTarget
	}
	if floorCents < 0 {
		return nil, ErrInvalidFloor
	}
	if granularityCents <= 0 {
		return nil, ErrInvalidGranularity
	}

	n := int64(len(entities))
	pool := targetCents - floorCents*n
	if pool < 0 {
		return nil, ErrInfeasibleFloor
	}

	total := 0.0
	for _, e := range entities {
		if e.Score < 0 {
			return nil, ErrNegativeScore
		}
		total += e.Score
	}

	weights := make([]float64, len(entities))
	if total == 0 {
		if policy == ZeroScoreFail {
			return nil, ErrZeroTotalScore
		}
		for i := range weights {
			weights[i] = 1.0 / float64(n)
		}
	} else {
		for i, e := range entities {
			weights[i] = e.Score / total
		}
	}

	prices := make([]int64, len(entities))
	var sum int64
	for i := range entities {
		raw := float64(floorCents) + weights[i]*float64(pool)
		p := roundToMultiple(raw, granularityCents)
		if p < floorCents {
			p = ceilToMultiple(floorCents, granularityCents)
		}
		prices[i] = p
		sum += p
	}

	// Reconcile: the entire rounding diff goes to the highest-priced entity,
	// first occurrence on ties so equal scores stay stable.
	if diff := targetCents - sum; diff != 0 {
		top := 0
		for i, p := range prices {
			if p > prices[top] {
				top = i
			}
		}
		prices[top] += diff
	}

	return prices, nil
}

func roundToMultiple(v float64, unit int64) int64 {
	u := float64(unit)
	steps := int64(v/u + 0.5)
	return steps * unit
}

func ceilToMultiple(v, unit int64) int64 {
	if v%unit == 0 {
		return v
	}
	return (v/unit + 1) * unit
}
