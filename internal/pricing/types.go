package pricing

// Row is one checklist line as delivered by the ingestion collaborator.
// It is immutable once ingested; the engine never mutates row fields.
type Row struct {
	Player string `json:"player"`
	Entity string `json:"team"`
	Card   string `json:"card"`
}

// SignalVector is the per-row boolean keyword flags, in the fixed order of
// the active profile's categories.
type SignalVector []bool

// Adjustment is the user-chosen per-entity state for one pricing session.
// Empty values mean neutral.
type Adjustment struct {
	Momentum string `json:"momentum"`
	Velocity string `json:"velocity"`
}

// AdjustmentState maps canonical entity name to its session adjustment.
// Owned by the calling session and passed by value on each run.
type AdjustmentState map[string]Adjustment

// EntityResult is the per-entity output record handed to presentation.
type EntityResult struct {
	Entity        string  `json:"entity"`
	RawScore      float64 `json:"raw_score"`
	AdjustedScore float64 `json:"adjusted_score"`
	Rows          int     `json:"rows"`
	PriceCents    int64   `json:"price_cents"`
	Tier          string  `json:"tier,omitempty"`
}

// Summary carries the run-level reconciliation metrics. PricedCents always
// equals TargetCents on a successful run.
type Summary struct {
	TargetCents int64 `json:"target_cents"`
	PricedCents int64 `json:"priced_cents"`
	FeeCents    int64 `json:"fee_cents"`
	NetCents    int64 `json:"net_cents"`
	RowCount    int   `json:"row_count"`
	DroppedRows int   `json:"dropped_rows"`
	EntityCount int   `json:"entity_count"`
}

// ZeroScorePolicy decides what happens when no row produced any score.
type ZeroScorePolicy int

const (
	// ZeroScoreEqualSplit distributes the pool evenly across the universe.
	ZeroScoreEqualSplit ZeroScorePolicy = iota
	// ZeroScoreFail aborts the run instead.
	ZeroScoreFail
)

// RunConfig is the caller-supplied pricing configuration for one run.
// TargetCents wins when positive; otherwise the target is derived from
// CostCents, FeePercent and MarginPercent.
type RunConfig struct {
	TargetCents      int64           `json:"target_cents"`
	CostCents        int64           `json:"cost_cents"`
	FeePercent       float64         `json:"fee_percent"`
	MarginPercent    float64         `json:"margin_percent"`
	FloorCents       int64           `json:"floor_cents"`
	GranularityCents int64           `json:"granularity_cents"`
	ZeroScore        ZeroScorePolicy `json:"-"`
	Tiering          bool            `json:"tiering"`
}

// Result is the full output of one pricing run.
type Result struct {
	Profile  string         `json:"profile"`
	Entities []EntityResult `json:"entities"`
	Summary  Summary        `json:"summary"`
}
