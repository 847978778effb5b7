package database

import (
	"time"

	"github.com/google/uuid"
)

// PricingRun is a persisted pricing result. The full Result is stored as
// JSON; the scalar columns exist for listing and filtering.
type PricingRun struct {
	ID          string    `json:"id" db:"id"`
	ProfileKey  string    `json:"profile_key" db:"profile_key"`
	SessionID   string    `json:"session_id,omitempty" db:"session_id"`
	TargetCents int64     `json:"target_cents" db:"target_cents"`
	FloorCents  int64     `json:"floor_cents" db:"floor_cents"`
	RowCount    int       `json:"row_count" db:"row_count"`
	EntityCount int       `json:"entity_count" db:"entity_count"`
	Result      string    `json:"-" db:"result"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Session is one pricing session; adjustment toggles live for its lifetime.
type Session struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SessionAdjustment is one entity's momentum/velocity state in a session.
type SessionAdjustment struct {
	SessionID string    `json:"-" db:"session_id"`
	Entity    string    `json:"entity" db:"entity"`
	Momentum  string    `json:"momentum" db:"momentum"`
	Velocity  string    `json:"velocity" db:"velocity"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewPricingRun creates a run record with a generated ID.
func NewPricingRun(profileKey, sessionID, resultJSON string, targetCents, floorCents int64, rowCount, entityCount int) *PricingRun {
	return &PricingRun{
		ID:          uuid.New().String(),
		ProfileKey:  profileKey,
		SessionID:   sessionID,
		TargetCents: targetCents,
		FloorCents:  floorCents,
		RowCount:    rowCount,
		EntityCount: entityCount,
		Result:      resultJSON,
		CreatedAt:   time.Now(),
	}
}

// NewSession creates a session with a generated ID.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
