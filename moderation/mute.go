package moderation

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"moderation-bot/model"
)

func (e *Engine) mute(guildID, subjectID, responsibleID, reason string, opts Options) (*SanctionResult, error) {
	muteRole, err := e.guilds.MuteRole(guildID)
	if err != nil {
		return nil, err
	}
	subject, err := e.dir.Member(guildID, subjectID)
	if err != nil {
		return nil, err
	}
	if subject.HasRole(muteRole) && !opts.Force {
		return nil, ErrAlreadySanctioned
	}

	if err := e.dir.GrantRole(guildID, subjectID, muteRole, reason); err != nil {
		// nothing happened yet: no ledger entry, no timer
		return nil, err
	}

	t := model.Timer{
		GuildID:       guildID,
		SubjectID:     subjectID,
		Kind:          model.TimerKindMute,
		Reason:        reason,
		CreatedBy:     responsibleID,
		NotifySubject: !opts.NoDM,
	}
	if opts.Duration > 0 {
		t.ExpiresAt = sql.NullInt64{Int64: time.Now().Add(opts.Duration).Unix(), Valid: true}
	}
	if err := e.upsertTimer(t); err != nil {
		// mute stands; expiry is lost until the operator re-mutes
		log.Printf("Timer write degraded for mute of %s in guild %s: %v", subjectID, guildID, err)
	}

	if !opts.NoDM {
		e.notify(subjectID, fmt.Sprintf("You have been muted%s.%s",
			lengthPhrase(opts.Duration), reasonPhrase(reason)))
	}

	res := &SanctionResult{
		Kind:        model.SanctionMute,
		GuildID:     guildID,
		SubjectID:   subjectID,
		SubjectName: subject.DisplayName,
		Reason:      reason,
	}
	res.CaseID, res.LedgerDegraded = e.record(
		e.newCase(model.SanctionMute, guildID, subjectID, subject.DisplayName, responsibleID, reason, opts.NoDM))
	e.audit.PublishCase(model.SanctionMute, res, responsibleID, durationDetail(opts.Duration))
	return res, nil
}

func (e *Engine) unmute(guildID, subjectID, responsibleID, reason string, opts Options) (*SanctionResult, error) {
	muteRole, err := e.guilds.MuteRole(guildID)
	if err != nil {
		return nil, err
	}
	subject, err := e.dir.Member(guildID, subjectID)
	if err != nil {
		return nil, err
	}
	if !subject.HasRole(muteRole) {
		return nil, ErrNotSanctioned
	}

	if err := e.dir.RevokeRole(guildID, subjectID, muteRole, reason); err != nil {
		return nil, err
	}
	if err := e.timers.Delete(guildID, subjectID, model.TimerKindMute); err != nil {
		log.Printf("Failed to cancel mute timer for %s in guild %s: %v", subjectID, guildID, err)
	}

	if !opts.NoDM {
		e.notify(subjectID, "You have been unmuted."+reasonPhrase(reason))
	}

	res := &SanctionResult{
		Kind:        model.SanctionUnmute,
		GuildID:     guildID,
		SubjectID:   subjectID,
		SubjectName: subject.DisplayName,
		Reason:      reason,
	}
	res.CaseID, res.LedgerDegraded = e.record(
		e.newCase(model.SanctionUnmute, guildID, subjectID, subject.DisplayName, responsibleID, reason, opts.NoDM))
	e.audit.PublishCase(model.SanctionUnmute, res, responsibleID, "")
	return res, nil
}

// AutoUnmute reverses an expired mute timer. Unlike a manual unmute it
// writes no ledger case, only a lighter audit note; an expiry is not a
// moderation decision. The no-op paths (subject gone, already unmuted)
// succeed so the dispatcher deletes the timer.
func (e *Engine) AutoUnmute(t model.Timer) error {
	muteRole, err := e.guilds.MuteRole(t.GuildID)
	if err != nil {
		// mute role was unconfigured since; nothing left to revoke
		return nil
	}
	subject, err := e.dir.Member(t.GuildID, t.SubjectID)
	if errorsIsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !subject.HasRole(muteRole) {
		return nil
	}

	if err := e.dir.RevokeRole(t.GuildID, t.SubjectID, muteRole, "Mute expired"); err != nil {
		return err
	}
	if t.NotifySubject {
		e.notify(t.SubjectID, "Your mute has expired."+reasonPhrase(t.Reason))
	}
	e.audit.PublishNote(t.GuildID, "Mute expired",
		fmt.Sprintf("Mute of <@%s> expired and was lifted.%s", t.SubjectID, reasonPhrase(t.Reason)),
		model.SanctionUnmute.AuditColor())
	return nil
}

// upsertTimer retries once on a transient store error.
func (e *Engine) upsertTimer(t model.Timer) error {
	if err := e.timers.Upsert(t); err != nil {
		return e.timers.Upsert(t)
	}
	return nil
}

// notify is the best-effort direct notification; the subject may have
// DMs disabled, which is not the caller's problem.
func (e *Engine) notify(subjectID, text string) {
	if err := e.dir.Notify(subjectID, text); err != nil {
		log.Printf("Could not notify user %s: %v", subjectID, err)
	}
}

func lengthPhrase(d time.Duration) string {
	if d <= 0 {
		return " indefinitely"
	}
	return " for " + d.String()
}

func reasonPhrase(reason string) string {
	if reason == "" {
		return ""
	}
	return " Reason: " + reason
}

func durationDetail(d time.Duration) string {
	if d <= 0 {
		return "indefinitely"
	}
	return "for " + d.String()
}
