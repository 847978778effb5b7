package session

import (
	"testing"
	"time"

	"github.com/headlinebreaks/breakmeter/internal/database"
	"github.com/headlinebreaks/breakmeter/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(database.NewRepository(db), time.Minute)
}

func TestStoreLifecycle(t *testing.T) {
	store := newTestStore(t)

	id, err := store.Create()
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// Fresh sessions have no adjustments; everything prices neutral.
	state, err := store.Adjustments(id)
	require.NoError(t, err)
	assert.Empty(t, state)

	err = store.SetAdjustment(id, "New York Yankees", pricing.Adjustment{Momentum: "hot", Velocity: "fast"})
	require.NoError(t, err)
	err = store.SetAdjustment(id, "Miami Marlins", pricing.Adjustment{Momentum: "cold"})
	require.NoError(t, err)

	state, err = store.Adjustments(id)
	require.NoError(t, err)
	assert.Equal(t, pricing.AdjustmentState{
		"New York Yankees": {Momentum: "hot", Velocity: "fast"},
		"Miami Marlins":    {Momentum: "cold"},
	}, state)

	// Updates overwrite, not append.
	err = store.SetAdjustment(id, "New York Yankees", pricing.Adjustment{Momentum: "neutral"})
	require.NoError(t, err)
	state, err = store.Adjustments(id)
	require.NoError(t, err)
	assert.Equal(t, pricing.Adjustment{Momentum: "neutral"}, state["New York Yankees"])
}

func TestStoreSurvivesCacheEviction(t *testing.T) {
	db, err := database.NewDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := database.NewRepository(db)

	store := NewStore(repo, time.Minute)
	id, err := store.Create()
	require.NoError(t, err)
	require.NoError(t, store.SetAdjustment(id, "Team X", pricing.Adjustment{Momentum: "hot"}))

	// A fresh store over the same database reloads the state from sqlite.
	reloaded := NewStore(repo, time.Minute)
	state, err := reloaded.Adjustments(id)
	require.NoError(t, err)
	assert.Equal(t, pricing.Adjustment{Momentum: "hot"}, state["Team X"])
}

func TestStoreUnknownSession(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Adjustments("no-such-session")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.SetAdjustment("no-such-session", "Team X", pricing.Adjustment{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRejectsInvalidAdjustments(t *testing.T) {
	store := newTestStore(t)
	id, err := store.Create()
	require.NoError(t, err)

	err = store.SetAdjustment(id, "Team X", pricing.Adjustment{Momentum: "volcanic"})
	assert.ErrorIs(t, err, ErrInvalidAdjustment)

	err = store.SetAdjustment(id, "", pricing.Adjustment{Momentum: "hot"})
	assert.ErrorIs(t, err, ErrInvalidAdjustment)
}

func TestStoreReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	id, err := store.Create()
	require.NoError(t, err)
	require.NoError(t, store.SetAdjustment(id, "Team X", pricing.Adjustment{Momentum: "hot"}))

	state, err := store.Adjustments(id)
	require.NoError(t, err)
	state["Team X"] = pricing.Adjustment{Momentum: "cold"}

	fresh, err := store.Adjustments(id)
	require.NoError(t, err)
	assert.Equal(t, pricing.Adjustment{Momentum: "hot"}, fresh["Team X"])
}
