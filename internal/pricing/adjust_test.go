package pricing

import (
	"testing"

	"github.com/headlinebreaks/breakmeter/internal/profile"
	"github.com/stretchr/testify/assert"
)

func TestAdjustScore(t *testing.T) {
	p := &profile.Profile{
		Key:  "test",
		Mode: profile.ModeTeam,
		MarketFactors: map[string]float64{
			"New York Yankees": 1.15,
			"Miami Marlins":    0.85,
		},
	}

	tests := []struct {
		name     string
		entity   string
		base     float64
		state    AdjustmentState
		expected float64
	}{
		{
			name:     "no state and no market entry is neutral",
			entity:   "Texas Rangers",
			base:     10,
			expected: 10,
		},
		{
			name:     "large market bias applies without state",
			entity:   "New York Yankees",
			base:     10,
			expected: 11.5,
		},
		{
			name:   "momentum and velocity multiply",
			entity: "Texas Rangers",
			base:   10,
			state: AdjustmentState{
				"Texas Rangers": {Momentum: "hot", Velocity: "fast"},
			},
			expected: 10 * 1.15 * 1.10,
		},
		{
			name:   "momentum values are case-insensitive",
			entity: "Texas Rangers",
			base:   10,
			state: AdjustmentState{
				"Texas Rangers": {Momentum: "Cold"},
			},
			expected: 8.5,
		},
		{
			name:   "all three factors stack",
			entity: "Miami Marlins",
			base:   10,
			state: AdjustmentState{
				"Miami Marlins": {Momentum: "hot", Velocity: "slow"},
			},
			expected: 10 * 0.85 * 1.15 * 0.90,
		},
		{
			name:   "state for other entities is ignored",
			entity: "Texas Rangers",
			base:   10,
			state: AdjustmentState{
				"New York Yankees": {Momentum: "hot"},
			},
			expected: 10,
		},
		{
			name:   "unknown category falls back to neutral",
			entity: "Texas Rangers",
			base:   10,
			state: AdjustmentState{
				"Texas Rangers": {Momentum: "volcanic"},
			},
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AdjustScore(p, tt.entity, tt.base, tt.state), 1e-9)
		})
	}
}

func TestValidAdjustment(t *testing.T) {
	assert.True(t, ValidAdjustment(Adjustment{}))
	assert.True(t, ValidAdjustment(Adjustment{Momentum: "hot"}))
	assert.True(t, ValidAdjustment(Adjustment{Momentum: "Hot", Velocity: "SLOW"}))
	assert.False(t, ValidAdjustment(Adjustment{Momentum: "lava"}))
	assert.False(t, ValidAdjustment(Adjustment{Velocity: "warp"}))
}
