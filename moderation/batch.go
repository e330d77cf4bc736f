package moderation

import (
	"errors"
	"fmt"
	"sync"

	"moderation-bot/model"
)

// GroupLocks allows at most one batch sanction operation per guild at a
// time. Contention is rejected, not queued.
type GroupLocks struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewGroupLocks() *GroupLocks {
	return &GroupLocks{held: make(map[string]bool)}
}

// TryAcquire takes the guild lock, reporting false if it is already held.
func (g *GroupLocks) TryAcquire(guildID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held[guildID] {
		return false
	}
	g.held[guildID] = true
	return true
}

func (g *GroupLocks) Release(guildID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, guildID)
}

// BatchFailure is one failed target of a batch operation.
type BatchFailure struct {
	SubjectID string
	Code      FailureCode
}

// BatchResult aggregates a partial-failure batch outcome.
type BatchResult struct {
	Succeeded []string
	Failed    []BatchFailure
	CaseID    int64 // the single batch-level ledger entry
}

// ApplyBatch applies a removal sanction to many targets. Targets are
// processed sequentially to keep rate-limit exposure predictable and
// case numbering simple. Exactly one informational massban case is
// recorded for the batch; per-subject ledger entries are suppressed.
func (e *Engine) ApplyBatch(kind model.SanctionKind, guildID, responsibleID string, targets []string, opts Options) (*BatchResult, error) {
	if !kind.RemovesFromGuild() {
		return nil, fmt.Errorf("batch operations only support removal sanctions: %w", ErrInvalidRange)
	}
	if len(targets) < 2 {
		return nil, fmt.Errorf("a batch of %d targets is nonsensical: %w", len(targets), ErrInvalidRange)
	}
	if len(targets) > e.batchCeiling {
		return nil, fmt.Errorf("can batch at most %d targets at once: %w", e.batchCeiling, ErrInvalidRange)
	}
	if opts.PurgeDays < 0 || opts.PurgeDays > 7 {
		return nil, fmt.Errorf("message purge window must be 0-7 days: %w", ErrInvalidRange)
	}

	if !e.locks.TryAcquire(guildID) {
		return nil, ErrBusy
	}
	defer e.locks.Release(guildID)

	targets = dedupe(targets)
	perTarget := opts
	perTarget.NoDM = true
	perTarget.batch = true

	result := &BatchResult{}
	for _, subjectID := range targets {
		_, err := e.removeFromGuild(kind, guildID, subjectID, responsibleID, "massban", perTarget)
		switch {
		case err == nil:
			result.Succeeded = append(result.Succeeded, subjectID)
		case errors.Is(err, ErrNotFound):
			result.Failed = append(result.Failed, BatchFailure{SubjectID: subjectID, Code: FailureNotFound})
		case errors.Is(err, ErrForbidden):
			result.Failed = append(result.Failed, BatchFailure{SubjectID: subjectID, Code: FailureForbidden})
		default:
			return result, err
		}
	}

	res := &SanctionResult{
		Kind:    model.SanctionMassban,
		GuildID: guildID,
		Reason:  fmt.Sprintf("banned %d of %d targets", len(result.Succeeded), len(targets)),
	}
	res.CaseID, res.LedgerDegraded = e.record(
		e.newCase(model.SanctionMassban, guildID, "", "(batch)", responsibleID, res.Reason, true))
	result.CaseID = res.CaseID
	e.audit.PublishCase(model.SanctionMassban, res, responsibleID, "")
	return result, nil
}
