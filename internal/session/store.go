// Package session owns per-session adjustment state: the momentum/velocity
// toggles a breaker flips while iterating on a price sheet. The core engine
// never stores this; it receives a snapshot by value on every run.
package session

import (
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/headlinebreaks/breakmeter/internal/database"
	"github.com/headlinebreaks/breakmeter/internal/pricing"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// ErrInvalidAdjustment is returned for momentum/velocity values outside the
// accepted categories.
var ErrInvalidAdjustment = errors.New("invalid adjustment value")

// Store fronts the sqlite session tables with a TTL cache. The cache holds
// the hot state for active sessions; sqlite keeps it across restarts.
type Store struct {
	repo  *database.Repository
	cache *gocache.Cache
}

// NewStore creates a session store. Sessions idle past ttl fall out of the
// cache and reload from sqlite on next use.
func NewStore(repo *database.Repository, ttl time.Duration) *Store {
	return &Store{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Create starts a new session and returns its ID.
func (s *Store) Create() (string, error) {
	sess := database.NewSession()
	if err := s.repo.CreateSession(sess); err != nil {
		return "", err
	}
	s.cache.SetDefault(sess.ID, pricing.AdjustmentState{})
	return sess.ID, nil
}

// Adjustments returns a copy of the session's adjustment state. Entities
// never touched by the user are simply absent, which the engine treats as
// neutral.
func (s *Store) Adjustments(id string) (pricing.AdjustmentState, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cloneState(cached.(pricing.AdjustmentState)), nil
	}

	if _, err := s.repo.GetSession(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	state, err := s.repo.GetAdjustments(id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(id, state)
	return cloneState(state), nil
}

// SetAdjustment records one entity's momentum/velocity choice, write-through
// to sqlite so the state survives a restart.
func (s *Store) SetAdjustment(id, entity string, adj pricing.Adjustment) error {
	if entity == "" {
		return fmt.Errorf("%w: entity is required", ErrInvalidAdjustment)
	}
	if !pricing.ValidAdjustment(adj) {
		return fmt.Errorf("%w: momentum must be one of %v, velocity one of %v",
			ErrInvalidAdjustment, pricing.MomentumValues(), pricing.VelocityValues())
	}

	state, err := s.Adjustments(id)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertAdjustment(id, entity, adj); err != nil {
		return err
	}

	state[entity] = adj
	s.cache.SetDefault(id, state)
	return nil
}

func cloneState(state pricing.AdjustmentState) pricing.AdjustmentState {
	out := make(pricing.AdjustmentState, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}
