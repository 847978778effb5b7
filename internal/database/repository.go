package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/headlinebreaks/breakmeter/internal/pricing"
)

// ErrNotFound is returned when a run or session does not exist.
var ErrNotFound = errors.New("not found")

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// SaveRun persists a pricing run.
func (r *Repository) SaveRun(run *PricingRun) error {
	stmt, err := r.db.GetPreparedStatement("insert_run")
	if err != nil {
		return err
	}
	_, err = stmt.Exec(run.ID, run.ProfileKey, run.SessionID, run.TargetCents,
		run.FloorCents, run.RowCount, run.EntityCount, run.Result, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save pricing run: %w", err)
	}
	return nil
}

// GetRun fetches a persisted pricing run by ID.
func (r *Repository) GetRun(id string) (*PricingRun, error) {
	stmt, err := r.db.GetPreparedStatement("get_run")
	if err != nil {
		return nil, err
	}

	var run PricingRun
	err = stmt.QueryRow(id).Scan(
		&run.ID, &run.ProfileKey, &run.SessionID, &run.TargetCents,
		&run.FloorCents, &run.RowCount, &run.EntityCount, &run.Result, &run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing run: %w", err)
	}
	return &run, nil
}

// CreateSession inserts a new session record.
func (r *Repository) CreateSession(s *Session) error {
	stmt, err := r.db.GetPreparedStatement("insert_session")
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(s.ID, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession fetches a session by ID.
func (r *Repository) GetSession(id string) (*Session, error) {
	stmt, err := r.db.GetPreparedStatement("get_session")
	if err != nil {
		return nil, err
	}

	var s Session
	err = stmt.QueryRow(id).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// UpsertAdjustment writes one entity's momentum/velocity state and bumps
// the session's updated_at.
func (r *Repository) UpsertAdjustment(sessionID, entity string, adj pricing.Adjustment) error {
	now := time.Now()

	stmt, err := r.db.GetPreparedStatement("upsert_adjustment")
	if err != nil {
		return err
	}
	if _, err := stmt.Exec(sessionID, entity, adj.Momentum, adj.Velocity, now); err != nil {
		return fmt.Errorf("failed to upsert adjustment: %w", err)
	}

	touch, err := r.db.GetPreparedStatement("touch_session")
	if err != nil {
		return err
	}
	if _, err := touch.Exec(now, sessionID); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// GetAdjustments loads a session's full adjustment state.
func (r *Repository) GetAdjustments(sessionID string) (pricing.AdjustmentState, error) {
	stmt, err := r.db.GetPreparedStatement("get_adjustments")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adjustments: %w", err)
	}
	defer rows.Close()

	state := pricing.AdjustmentState{}
	for rows.Next() {
		var entity string
		var adj pricing.Adjustment
		if err := rows.Scan(&entity, &adj.Momentum, &adj.Velocity); err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		state[entity] = adj
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read adjustments: %w", err)
	}
	return state, nil
}
