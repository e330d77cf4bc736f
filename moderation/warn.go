package moderation

import (
	"fmt"
	"strings"

	"moderation-bot/model"
)

// warn has no platform-level effect; it succeeds iff the ledger write
// succeeds, so the ledger is not degradable here.
func (e *Engine) warn(guildID, subjectID, responsibleID, reason string, opts Options) (*SanctionResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("a warn requires a reason: %w", ErrInvalidRange)
	}
	subject, err := e.dir.Member(guildID, subjectID)
	if err != nil {
		return nil, err
	}

	caseID, err := e.ledger.Record(
		e.newCase(model.SanctionWarn, guildID, subjectID, subject.DisplayName, responsibleID, reason, opts.NoDM))
	if err != nil {
		caseID, err = e.ledger.Record(
			e.newCase(model.SanctionWarn, guildID, subjectID, subject.DisplayName, responsibleID, reason, opts.NoDM))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}

	// running count includes the warning just written
	warnCount, err := e.ledger.CountWarnings(guildID, subjectID)
	if err != nil {
		warnCount = 1
	}

	if !opts.NoDM {
		e.notify(subjectID, "You have been warned."+reasonPhrase(reason))
	}

	res := &SanctionResult{
		Kind:        model.SanctionWarn,
		GuildID:     guildID,
		SubjectID:   subjectID,
		SubjectName: subject.DisplayName,
		Reason:      reason,
		CaseID:      caseID,
		WarnCount:   warnCount,
	}
	e.audit.PublishCase(model.SanctionWarn, res, responsibleID, warnDetail(warnCount))
	return res, nil
}

func warnDetail(n int) string {
	if n > 1 {
		return fmt.Sprintf("(%d times already)", n)
	}
	return "(1 time)"
}

// Blacklist inserts up to 90 distinct subject ids; duplicates within the
// input are collapsed before insertion.
func (e *Engine) Blacklist(guildID, responsibleID string, subjectIDs []string) (*SanctionResult, error) {
	ids := dedupe(subjectIDs)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no subjects given: %w", ErrInvalidRange)
	}
	if len(ids) > e.blacklistLimit {
		return nil, fmt.Errorf("can only blacklist up to %d at once: %w", e.blacklistLimit, ErrInvalidRange)
	}

	if err := e.blacklist.InsertMany(guildID, ids); err != nil {
		if err = e.blacklist.InsertMany(guildID, ids); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	res := &SanctionResult{
		Kind:    model.SanctionBlacklist,
		GuildID: guildID,
		Reason:  strings.Join(ids, ", "),
	}
	res.CaseID, res.LedgerDegraded = e.record(
		e.newCase(model.SanctionBlacklist, guildID, "", "", responsibleID, res.Reason, true))
	e.audit.PublishCase(model.SanctionBlacklist, res, responsibleID, "")
	return res, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
