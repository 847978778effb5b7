package pricing

import (
	"testing"

	"github.com/headlinebreaks/breakmeter/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTeamProfile() *profile.Profile {
	return &profile.Profile{
		Key:            "two-team",
		Mode:           profile.ModeTeam,
		ClosedUniverse: true,
		BaseWeight:     1.0,
		Categories: []profile.SignalCategory{
			{Name: "rookie", Patterns: []string{`\brookie\b`}, Weight: 3.0},
		},
		Aliases: map[string]string{
			"team x classic": "Team X",
		},
		Universe: []string{"Team X", "Team Y"},
	}
}

func newTestEngine(t *testing.T, p *profile.Profile) *Engine {
	t.Helper()
	e, err := NewEngine(p)
	require.NoError(t, err)
	return e
}

func TestRunScenario(t *testing.T) {
	// Three base rows for Team X (score 3) and one rookie row for Team Y
	// (score 4); $1000 target with a $100 floor prices them 440/560.
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Base"},
		{Player: "Player B", Entity: "Team X", Card: "Base"},
		{Player: "Player C", Entity: "Team X", Card: "Base"},
		{Player: "Player D", Entity: "Team Y", Card: "Rookie Card"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000, FloorCents: 10_000}, nil)
	require.NoError(t, err)

	require.Len(t, res.Entities, 2)
	x, y := res.Entities[0], res.Entities[1]

	assert.Equal(t, "Team X", x.Entity)
	assert.InDelta(t, 3.0, x.RawScore, 1e-9)
	assert.Equal(t, 3, x.Rows)
	assert.Equal(t, int64(44_000), x.PriceCents)

	assert.Equal(t, "Team Y", y.Entity)
	assert.InDelta(t, 4.0, y.RawScore, 1e-9)
	assert.Equal(t, 1, y.Rows)
	assert.Equal(t, int64(56_000), y.PriceCents)

	assert.Equal(t, int64(100_000), res.Summary.TargetCents)
	assert.Equal(t, int64(100_000), res.Summary.PricedCents)
	assert.Equal(t, 4, res.Summary.RowCount)
	assert.Equal(t, 0, res.Summary.DroppedRows)
	assert.Equal(t, 2, res.Summary.EntityCount)
}

func TestRunAliasAggregation(t *testing.T) {
	// Rows under a legacy spelling land in the same bucket as canonical rows.
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Base"},
		{Player: "Player B", Entity: "Team X Classic", Card: "Base"},
		{Player: "Player C", Entity: "Team Y", Card: "Base"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Team X", res.Entities[0].Entity)
	assert.InDelta(t, 2.0, res.Entities[0].RawScore, 1e-9)
	assert.Equal(t, 2, res.Entities[0].Rows)
}

func TestRunClosedUniverseIncludesZeroScoreEntities(t *testing.T) {
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Base"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000, FloorCents: 10_000}, nil)
	require.NoError(t, err)

	require.Len(t, res.Entities, 2)
	assert.Equal(t, "Team Y", res.Entities[1].Entity)
	assert.Zero(t, res.Entities[1].RawScore)
	assert.Zero(t, res.Entities[1].Rows)
	assert.GreaterOrEqual(t, res.Entities[1].PriceCents, int64(10_000))
	assert.Equal(t, int64(100_000), res.Summary.PricedCents)
}

func TestRunDropsUnresolvableRows(t *testing.T) {
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Base"},
		{Player: "Player B", Entity: "Team Z", Card: "Base"},
		{Player: "Player C", Entity: "N/A", Card: "Base"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Summary.DroppedRows)
	assert.InDelta(t, 1.0, res.Entities[0].RawScore, 1e-9)
}

func TestRunOpenUniverseByPlayer(t *testing.T) {
	p := twoTeamProfile()
	p.Mode = profile.ModePlayer
	p.ClosedUniverse = false
	p.Universe = nil
	p.Aliases = nil
	e := newTestEngine(t, p)

	rows := []Row{
		{Player: "Mike Trout", Entity: "ignored", Card: "Base"},
		{Player: "Mike Trout", Entity: "ignored", Card: "Base"},
		{Player: "Juan Soto", Entity: "ignored", Card: "Base"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000}, nil)
	require.NoError(t, err)

	require.Len(t, res.Entities, 2)
	assert.Equal(t, "Mike Trout", res.Entities[0].Entity)
	assert.Equal(t, 2, res.Entities[0].Rows)
	assert.Equal(t, "Juan Soto", res.Entities[1].Entity)
}

func TestRunAdjustmentChangesAllocation(t *testing.T) {
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Base"},
		{Player: "Player B", Entity: "Team Y", Card: "Base"},
	}
	state := AdjustmentState{
		"Team Y": {Momentum: "hot", Velocity: "fast"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000}, state)
	require.NoError(t, err)

	x, y := res.Entities[0], res.Entities[1]
	assert.InDelta(t, 1.0, x.AdjustedScore, 1e-9)
	assert.InDelta(t, 1.0*1.15*1.10, y.AdjustedScore, 1e-9)
	assert.Greater(t, y.PriceCents, x.PriceCents)
	assert.Equal(t, int64(100_000), res.Summary.PricedCents)
}

func TestRunIdempotent(t *testing.T) {
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Rookie Auto Patch"},
		{Player: "Player B", Entity: "Team Y", Card: "Base"},
	}
	cfg := RunConfig{TargetCents: 250_000, FloorCents: 5000, Tiering: true}

	first, err := e.Run(rows, cfg, nil)
	require.NoError(t, err)
	second, err := e.Run(rows, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunTiering(t *testing.T) {
	p := twoTeamProfile()
	p.TierBands = []profile.TierBand{
		{Label: "Anchor", Fraction: 0.5},
		{Label: "Weak", Fraction: 0.5},
	}
	e := newTestEngine(t, p)
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Rookie Card"},
		{Player: "Player B", Entity: "Team Y", Card: "Base"},
	}

	res, err := e.Run(rows, RunConfig{TargetCents: 100_000, Tiering: true}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Anchor", res.Entities[0].Tier)
	assert.Equal(t, "Weak", res.Entities[1].Tier)
}

func TestRunDerivesTargetFromCost(t *testing.T) {
	e := newTestEngine(t, twoTeamProfile())
	rows := []Row{
		{Player: "Player A", Entity: "Team X", Card: "Base"},
		{Player: "Player B", Entity: "Team Y", Card: "Base"},
	}
	// cost $500, 20% margin, 10% fees: target = 50000*1.2/0.9 = 66667.
	cfg := RunConfig{CostCents: 50_000, MarginPercent: 20, FeePercent: 10}

	res, err := e.Run(rows, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(66_667), res.Summary.TargetCents)
	assert.Equal(t, res.Summary.TargetCents, res.Summary.PricedCents)
	assert.Equal(t, int64(6667), res.Summary.FeeCents)
	assert.Equal(t, int64(66_667-6667-50_000), res.Summary.NetCents)
}

func TestRunInputErrors(t *testing.T) {
	e := newTestEngine(t, twoTeamProfile())
	valid := []Row{{Player: "Player A", Entity: "Team X", Card: "Base"}}

	tests := []struct {
		name     string
		rows     []Row
		cfg      RunConfig
		expected error
	}{
		{
			name:     "no rows",
			rows:     nil,
			cfg:      RunConfig{TargetCents: 100_000},
			expected: ErrNoRows,
		},
		{
			name:     "no target and no cost",
			rows:     valid,
			cfg:      RunConfig{},
			expected: ErrInvalidTarget,
		},
		{
			name:     "fee percent out of range",
			rows:     valid,
			cfg:      RunConfig{CostCents: 1000, FeePercent: 100},
			expected: ErrInvalidFee,
		},
		{
			name:     "negative margin",
			rows:     valid,
			cfg:      RunConfig{CostCents: 1000, MarginPercent: -5},
			expected: ErrInvalidMargin,
		},
		{
			name:     "infeasible floor",
			rows:     valid,
			cfg:      RunConfig{TargetCents: 1000, FloorCents: 10_000},
			expected: ErrInfeasibleFloor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Run(tt.rows, tt.cfg, nil)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRunOpenUniverseAllRowsUnresolvable(t *testing.T) {
	p := twoTeamProfile()
	p.ClosedUniverse = false
	p.Universe = nil
	e := newTestEngine(t, p)

	rows := []Row{
		{Player: "Player A", Entity: "N/A", Card: "Base"},
		{Player: "Player B", Entity: "  ", Card: "Base"},
	}
	_, err := e.Run(rows, RunConfig{TargetCents: 100_000}, nil)
	assert.ErrorIs(t, err, ErrEmptyUniverse)
}
