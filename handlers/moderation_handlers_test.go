package handlers

import (
	"testing"
	"time"

	"moderation-bot/moderation"

	"github.com/stretchr/testify/assert"
)

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "3"}, splitIDs("1 2,3"))
	assert.Equal(t, []string{"42"}, splitIDs("<@42>"))
	assert.Equal(t, []string{"42"}, splitIDs("<@!42>"))
	assert.Equal(t, []string{"1", "2"}, splitIDs("1,\n2"))
	assert.Empty(t, splitIDs("  , "))
}

func TestWithCaseNote(t *testing.T) {
	ok := &moderation.SanctionResult{CaseID: 7}
	assert.Equal(t, "Done. Case #7.", withCaseNote("Done.", ok))

	degraded := &moderation.SanctionResult{LedgerDegraded: true}
	assert.Contains(t, withCaseNote("Done.", degraded), "no case number")

	none := &moderation.SanctionResult{}
	assert.Equal(t, "Done.", withCaseNote("Done.", none))
}

func TestFailureText(t *testing.T) {
	assert.Contains(t, failureText(moderation.FailureNotFound), "F1")
	assert.Contains(t, failureText(moderation.FailureForbidden), "F2")
}

func TestSpamTrackerDetectsRepeats(t *testing.T) {
	tr := newSpamTracker()
	window := 15 * time.Second

	assert.False(t, tr.isRepeat("g1", "u1", "buy now", window))
	assert.True(t, tr.isRepeat("g1", "u1", "buy now", window))

	// different content resets the chain
	assert.False(t, tr.isRepeat("g1", "u1", "something else", window))

	// users and guilds are independent
	assert.False(t, tr.isRepeat("g1", "u2", "buy now", window))
	assert.False(t, tr.isRepeat("g2", "u1", "buy now", window))

	// empty messages never count
	assert.False(t, tr.isRepeat("g1", "u3", "", window))
	assert.False(t, tr.isRepeat("g1", "u3", "", window))
}
