package moderation

import (
	"fmt"

	"moderation-bot/model"
)

// outranks implements the relative seniority check: the guild owner
// outranks everyone, otherwise the highest-ranked roles are compared.
// Equal rank is never sufficient.
func outranks(responsible, subject *Member) bool {
	if responsible.IsOwner {
		return true
	}
	if subject.IsOwner {
		return false
	}
	return responsible.TopRoleRank > subject.TopRoleRank
}

// removeFromGuild covers the ban family and kick.
func (e *Engine) removeFromGuild(kind model.SanctionKind, guildID, subjectID, responsibleID, reason string, opts Options) (*SanctionResult, error) {
	if opts.PurgeDays < 0 || opts.PurgeDays > 7 {
		return nil, fmt.Errorf("message purge window must be 0-7 days: %w", ErrInvalidRange)
	}

	subject, err := e.dir.Member(guildID, subjectID)
	if err != nil {
		return nil, err
	}
	responsible, err := e.dir.Member(guildID, responsibleID)
	if err != nil {
		return nil, err
	}
	if !outranks(responsible, subject) {
		return nil, fmt.Errorf("responsible does not outrank subject: %w", ErrForbidden)
	}

	switch kind {
	case model.SanctionKick:
		err = e.dir.Kick(guildID, subjectID, reason)
	default:
		err = e.dir.Ban(guildID, subjectID, opts.PurgeDays, reason)
	}
	if err != nil {
		// Forbidden and NotFound are terminal and reported verbatim;
		// callers render them differently.
		return nil, err
	}
	if kind.IsSoft() {
		if err := e.dir.Unban(guildID, subjectID, "Softbanned"); err != nil {
			return nil, err
		}
	}

	res := &SanctionResult{
		Kind:        kind,
		GuildID:     guildID,
		SubjectID:   subjectID,
		SubjectName: subject.DisplayName,
		Reason:      reason,
	}
	if opts.batch {
		return res, nil
	}

	if !opts.NoDM {
		verb := "banned from"
		if kind.IsSoft() {
			verb = "soft-banned from"
		} else if kind == model.SanctionKick {
			verb = "kicked from"
		}
		e.notify(subjectID, fmt.Sprintf("You have been %s the server.%s", verb, reasonPhrase(reason)))
	}

	res.CaseID, res.LedgerDegraded = e.record(
		e.newCase(kind, guildID, subjectID, subject.DisplayName, responsibleID, reason, opts.NoDM))
	e.audit.PublishCase(kind, res, responsibleID, "")
	return res, nil
}
