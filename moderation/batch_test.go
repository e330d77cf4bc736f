package moderation

import (
	"testing"

	"moderation-bot/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchSizeBounds(t *testing.T) {
	engine, dir, _, ledger, _, _, _ := newTestEngine()

	_, err := engine.ApplyBatch(model.SanctionBan, "g1", "mod", []string{"only-one"}, Options{})
	assert.ErrorIs(t, err, ErrInvalidRange)

	many := make([]string, 51)
	for i := range many {
		many[i] = string(rune('a' + i%26))
	}
	_, err = engine.ApplyBatch(model.SanctionBan, "g1", "mod", many, Options{})
	assert.ErrorIs(t, err, ErrInvalidRange)

	// rejected before any work happened
	assert.Empty(t, dir.calls)
	assert.Empty(t, ledger.records)
}

func TestBatchRejectsNonRemovalKinds(t *testing.T) {
	engine, _, _, _, _, _, _ := newTestEngine()
	_, err := engine.ApplyBatch(model.SanctionMute, "g1", "mod", []string{"a", "b"}, Options{})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBatchPurgeDaysBounds(t *testing.T) {
	engine, _, _, _, _, _, _ := newTestEngine()
	_, err := engine.ApplyBatch(model.SanctionBan, "g1", "mod", []string{"a", "b"}, Options{PurgeDays: 8})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestBatchPartialFailure(t *testing.T) {
	engine, dir, _, ledger, _, _, _ := newTestEngine()
	dir.put("g1", &Member{ID: "mod", TopRoleRank: 10})
	dir.put("g1", &Member{ID: "ok1"})
	dir.put("g1", &Member{ID: "ok2"})
	// "gone" has no member entry: F1
	dir.put("g1", &Member{ID: "senior", TopRoleRank: 20}) // outranks mod: F2

	result, err := engine.ApplyBatch(model.SanctionBan, "g1", "mod",
		[]string{"ok1", "gone", "senior", "ok2"}, Options{PurgeDays: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"ok1", "ok2"}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, BatchFailure{SubjectID: "gone", Code: FailureNotFound}, result.Failed[0])
	assert.Equal(t, BatchFailure{SubjectID: "senior", Code: FailureForbidden}, result.Failed[1])

	// exactly one informational case for the whole batch
	require.Len(t, ledger.records, 1)
	assert.Equal(t, "massban", ledger.records[0].ActionType)
	assert.Equal(t, "banned 2 of 4 targets", ledger.records[0].Reason)
	assert.Equal(t, result.CaseID, ledger.records[0].CaseIDOnGuild)
}

func TestBatchSuppressesPerTargetSideEffects(t *testing.T) {
	engine, dir, _, ledger, _, _, sink := newTestEngine()
	dir.put("g1", &Member{ID: "mod", TopRoleRank: 10})
	dir.put("g1", &Member{ID: "a"})
	dir.put("g1", &Member{ID: "b"})

	_, err := engine.ApplyBatch(model.SanctionBan, "g1", "mod", []string{"a", "b"}, Options{})
	require.NoError(t, err)

	assert.Zero(t, dir.callCount("notify:"))
	assert.Len(t, ledger.records, 1) // no per-target cases
	assert.Len(t, sink.sent, 1)      // one batch summary
}

func TestBatchDeduplicatesTargets(t *testing.T) {
	engine, dir, _, _, _, _, _ := newTestEngine()
	dir.put("g1", &Member{ID: "mod", TopRoleRank: 10})
	dir.put("g1", &Member{ID: "a"})

	result, err := engine.ApplyBatch(model.SanctionBan, "g1", "mod", []string{"a", "a", "a"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Succeeded)
	assert.Equal(t, 1, dir.callCount("ban:a:0"))
}

func TestBatchGuildLockRejectsConcurrent(t *testing.T) {
	engine, dir, _, _, _, _, _ := newTestEngine()
	dir.put("g1", &Member{ID: "mod", TopRoleRank: 10})
	dir.put("g1", &Member{ID: "a"})
	dir.put("g1", &Member{ID: "b"})

	require.True(t, engine.locks.TryAcquire("g1"))
	_, err := engine.ApplyBatch(model.SanctionBan, "g1", "mod", []string{"a", "b"}, Options{})
	assert.ErrorIs(t, err, ErrBusy)
	engine.locks.Release("g1")

	// other guilds are unaffected, and the lock is released afterwards
	dir.put("g2", &Member{ID: "mod", TopRoleRank: 10})
	dir.put("g2", &Member{ID: "a"})
	dir.put("g2", &Member{ID: "b"})
	_, err = engine.ApplyBatch(model.SanctionBan, "g2", "mod", []string{"a", "b"}, Options{})
	require.NoError(t, err)
	_, err = engine.ApplyBatch(model.SanctionBan, "g1", "mod", []string{"a", "b"}, Options{})
	require.NoError(t, err)
}

func TestGroupLocks(t *testing.T) {
	locks := NewGroupLocks()
	assert.True(t, locks.TryAcquire("g1"))
	assert.False(t, locks.TryAcquire("g1"))
	assert.True(t, locks.TryAcquire("g2"))
	locks.Release("g1")
	assert.True(t, locks.TryAcquire("g1"))
}
