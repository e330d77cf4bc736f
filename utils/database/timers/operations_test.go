package timers

import (
	"database/sql"
	"testing"
	"time"

	"moderation-bot/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store, err := New(db)
	require.NoError(t, err)
	return store
}

func expiring(at time.Time) sql.NullInt64 {
	return sql.NullInt64{Int64: at.Unix(), Valid: true}
}

func TestUpsertSupersedes(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "u1", Kind: model.TimerKindMute,
		ExpiresAt: expiring(now.Add(time.Hour)), Reason: "first",
	}))
	first, err := store.Get("g1", "u1", model.TimerKindMute)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.False(t, first.IsUpdate)

	// simulate failed dispatch attempts on the first timer
	require.NoError(t, store.Bump(first.ID))

	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "u1", Kind: model.TimerKindMute,
		ExpiresAt: expiring(now.Add(2 * time.Hour)), Reason: "second",
	}))

	second, err := store.Get("g1", "u1", model.TimerKindMute)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID) // same row, superseded in place
	assert.True(t, second.IsUpdate)
	assert.Equal(t, "second", second.Reason)
	assert.Zero(t, second.Attempts) // attempt counter starts over
	assert.Equal(t, now.Add(2*time.Hour).Unix(), second.ExpiresAt.Int64)
}

func TestGetMissingTimer(t *testing.T) {
	store := newTestStore(t)
	timer, err := store.Get("g1", "nobody", model.TimerKindMute)
	require.NoError(t, err)
	assert.Nil(t, timer)
}

func TestDeleteMissingTimerIsNotAnError(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete("g1", "nobody", model.TimerKindMute))
}

func TestDueExcludesIndefiniteAndFuture(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "past2", Kind: model.TimerKindMute,
		ExpiresAt: expiring(now.Add(-time.Minute)),
	}))
	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "past1", Kind: model.TimerKindMute,
		ExpiresAt: expiring(now.Add(-time.Hour)),
	}))
	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "future", Kind: model.TimerKindMute,
		ExpiresAt: expiring(now.Add(time.Hour)),
	}))
	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "indefinite", Kind: model.TimerKindMute,
	}))

	due, err := store.Due(now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	// oldest expiry first
	assert.Equal(t, "past1", due[0].SubjectID)
	assert.Equal(t, "past2", due[1].SubjectID)
}

func TestBumpIncrementsAttempts(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "u1", Kind: model.TimerKindMute,
		ExpiresAt: expiring(time.Now()),
	}))
	timer, err := store.Get("g1", "u1", model.TimerKindMute)
	require.NoError(t, err)

	require.NoError(t, store.Bump(timer.ID))
	require.NoError(t, store.Bump(timer.ID))
	timer, err = store.Get("g1", "u1", model.TimerKindMute)
	require.NoError(t, err)
	assert.Equal(t, 2, timer.Attempts)
}

func TestDeleteByID(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Upsert(model.Timer{
		GuildID: "g1", SubjectID: "u1", Kind: model.TimerKindMute,
	}))
	timer, err := store.Get("g1", "u1", model.TimerKindMute)
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(timer.ID))
	timer, err = store.Get("g1", "u1", model.TimerKindMute)
	require.NoError(t, err)
	assert.Nil(t, timer)
}
