package cases

import (
	"database/sql"
	"sync"
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

func testCase(guildID, offenderID, actionType string) model.Case {
	return model.Case{
		GuildID:       guildID,
		ActionType:    actionType,
		OffenderID:    offenderID,
		OffenderName:  "Some User",
		ResponsibleID: "mod",
		Reason:        "testing",
	}
}

func TestRecordAssignsSequentialNumbersPerGuild(t *testing.T) {
	store := newTestStore(t)

	for i := 1; i <= 3; i++ {
		id, err := store.Record(testCase("g1", "u1", "warn"))
		require.NoError(t, err)
		assert.Equal(t, int64(i), id)
	}

	// another guild starts from 1 again
	id, err := store.Record(testCase("g2", "u1", "warn"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestRecordConcurrentNumbersAreUnique(t *testing.T) {
	store := newTestStore(t)

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Record(testCase("g1", "u1", "warn"))
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "case number %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, seen[i], "case number %d missing", i)
	}
}

func TestAttachReason(t *testing.T) {
	store := newTestStore(t)
	id, err := store.Record(testCase("g1", "u1", "ban"))
	require.NoError(t, err)

	require.NoError(t, store.AttachReason("g1", id, "added later"))
	c, err := store.Get("g1", id)
	require.NoError(t, err)
	assert.Equal(t, "added later", c.Reason)
	assert.Equal(t, id, c.CaseIDOnGuild)
}

func TestAttachReasonMissingCase(t *testing.T) {
	store := newTestStore(t)
	err := store.AttachReason("g1", 42, "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMarkLogged(t *testing.T) {
	store := newTestStore(t)
	id, err := store.Record(testCase("g1", "u1", "mute"))
	require.NoError(t, err)

	require.NoError(t, store.MarkLogged("g1", id, "channel-9"))
	c, err := store.Get("g1", id)
	require.NoError(t, err)
	assert.True(t, c.LoggedAt.Valid)
	assert.Equal(t, "channel-9", c.LoggedChannelID)
}

func TestQueryFiltersAndOrder(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Record(testCase("g1", "u1", "warn"))
	require.NoError(t, err)
	_, err = store.Record(testCase("g1", "u2", "ban"))
	require.NoError(t, err)
	_, err = store.Record(testCase("g1", "u1", "mute"))
	require.NoError(t, err)

	recent, err := store.Query("g1", Filter{}, 10, 0, false)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, int64(3), recent[0].CaseIDOnGuild)

	oldest, err := store.Query("g1", Filter{}, 10, 0, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), oldest[0].CaseIDOnGuild)

	byOffender, err := store.Query("g1", Filter{OffenderID: "u1"}, 10, 0, false)
	require.NoError(t, err)
	assert.Len(t, byOffender, 2)

	byType, err := store.Query("g1", Filter{ActionType: "ban"}, 10, 0, false)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "u2", byType[0].OffenderID)

	future, err := store.Query("g1", Filter{After: time.Now().Add(time.Hour)}, 10, 0, false)
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestCountWarnings(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Record(testCase("g1", "u1", "warn"))
	require.NoError(t, err)
	_, err = store.Record(testCase("g1", "u1", "mute"))
	require.NoError(t, err)
	_, err = store.Record(testCase("g1", "u2", "warn"))
	require.NoError(t, err)

	n, err := store.CountWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCountAll(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Record(testCase("g1", "u1", "warn"))
	require.NoError(t, err)
	_, err = store.Record(testCase("g2", "u1", "ban"))
	require.NoError(t, err)

	n, err := store.CountAll()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
