package blacklist

import (
	"testing"

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

func TestInsertManyAndContains(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.InsertMany("g1", []string{"a", "b"}))

	for _, id := range []string{"a", "b"} {
		ok, err := store.Contains("g1", id)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Contains("g1", "c")
	require.NoError(t, err)
	assert.False(t, ok)

	// blacklists are per guild
	ok, err = store.Contains("g2", "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInsertManySkipsExisting(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.InsertMany("g1", []string{"a"}))
	require.NoError(t, store.InsertMany("g1", []string{"a", "b"}))

	ok, err := store.Contains("g1", "b")
	require.NoError(t, err)
	assert.True(t, ok)
}
