package pricing

import (
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/headlinebreaks/breakmeter/internal/profile"
)

var (
	ErrNoRows        = errors.New("checklist produced no rows")
	ErrInvalidFee    = errors.New("fee percent must be at least 0 and below 100")
	ErrInvalidMargin = errors.New("margin percent cannot be negative")
)

// DefaultGranularityCents is hobby rounding: nearest $10.
const DefaultGranularityCents int64 = 1000

// Engine runs the full pricing pipeline for one profile. It is stateless
// across runs; every run is a single deterministic pass over the input.
type Engine struct {
	profile *profile.Profile
	norm    *Normalizer
	tagger  *Tagger
	scorer  *Scorer
}

// NewEngine compiles the profile's vocabulary and weight tables.
func NewEngine(p *profile.Profile) (*Engine, error) {
	tagger, err := NewTagger(p)
	if err != nil {
		return nil, err
	}
	scorer, err := NewScorer(p)
	if err != nil {
		return nil, err
	}
	return &Engine{
		profile: p,
		norm:    NewNormalizer(p),
		tagger:  tagger,
		scorer:  scorer,
	}, nil
}

// Profile returns the engine's active profile.
func (e *Engine) Profile() *profile.Profile { return e.profile }

type entityAgg struct {
	name  string
	score float64
	rows  int
}

// Run executes normalize -> tag -> score -> adjust -> allocate -> tier and
// returns the per-entity results plus summary metrics. state may be nil,
// which prices with all adjustment multipliers at 1.0.
func (e *Engine) Run(rows []Row, cfg RunConfig, state AdjustmentState) (*Result, error) {
	started := time.Now()

	target, err := resolveTarget(cfg)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	granularity := cfg.GranularityCents
	if granularity == 0 {
		granularity = DefaultGranularityCents
	}

	// Per-entity aggregation, preserving stable order: universe order for
	// closed profiles, first appearance for open ones.
	index := make(map[string]*entityAgg)
	var order []*entityAgg
	if e.profile.ClosedUniverse {
		for _, name := range e.profile.Universe {
			agg := &entityAgg{name: name}
			index[name] = agg
			order = append(order, agg)
		}
	}

	dropped := 0
	for _, row := range rows {
		label := row.Entity
		if e.profile.Mode == profile.ModePlayer {
			label = row.Player
		}
		canonical, ok := e.norm.Normalize(label)
		if !ok {
			dropped++
			continue
		}
		agg, ok := index[canonical]
		if !ok {
			agg = &entityAgg{name: canonical}
			index[canonical] = agg
			order = append(order, agg)
		}
		agg.score += e.scorer.RowScore(e.tagger.Tag(RowText(row)))
		agg.rows++
	}

	if len(order) == 0 {
		return nil, ErrEmptyUniverse
	}

	entities := make([]EntityResult, len(order))
	inputs := make([]AllocationInput, len(order))
	for i, agg := range order {
		adjusted := AdjustScore(e.profile, agg.name, agg.score, state)
		entities[i] = EntityResult{
			Entity:        agg.name,
			RawScore:      agg.score,
			AdjustedScore: adjusted,
			Rows:          agg.rows,
		}
		inputs[i] = AllocationInput{Name: agg.name, Score: adjusted}
	}

	prices, err := Allocate(inputs, target, cfg.FloorCents, granularity, cfg.ZeroScore)
	if err != nil {
		return nil, err
	}
	var priced int64
	for i, p := range prices {
		entities[i].PriceCents = p
		priced += p
	}

	if cfg.Tiering {
		assignTiers(entities, e.profile.TierBands)
	}

	fee := int64(math.Round(float64(target) * cfg.FeePercent / 100))
	result := &Result{
		Profile:  e.profile.Key,
		Entities: entities,
		Summary: Summary{
			TargetCents: target,
			PricedCents: priced,
			FeeCents:    fee,
			NetCents:    target - fee - cfg.CostCents,
			RowCount:    len(rows),
			DroppedRows: dropped,
			EntityCount: len(entities),
		},
	}

	slog.Debug("pricing run complete",
		"profile", e.profile.Key,
		"rows", len(rows),
		"dropped", dropped,
		"entities", len(entities),
		"target_cents", target,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return result, nil
}

// resolveTarget returns the explicit target when set, otherwise derives it
// from cost basis, fee percent and margin percent:
//
//	target = cost * (1 + margin/100) / (1 - fee/100)
//
// so selling at target covers the cost, the desired margin, and the fees
// taken off the gross.
func resolveTarget(cfg RunConfig) (int64, error) {
	if cfg.FeePercent < 0 || cfg.FeePercent >= 100 {
		return 0, ErrInvalidFee
	}
	if cfg.MarginPercent < 0 {
		return 0, ErrInvalidMargin
	}
	if cfg.TargetCents > 0 {
		return cfg.TargetCents, nil
	}
	if cfg.TargetCents < 0 || cfg.CostCents <= 0 {
		return 0, ErrInvalidTarget
	}
	gross := float64(cfg.CostCents) * (1 + cfg.MarginPercent/100) / (1 - cfg.FeePercent/100)
	return int64(math.Round(gross)), nil
}
