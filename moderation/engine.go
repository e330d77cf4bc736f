package moderation

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"moderation-bot/model"
)

// Options tune a single sanction application.
type Options struct {
	Duration  time.Duration // mute length; 0 means indefinite
	PurgeDays int           // ban message purge window, 0-7 days
	Force     bool          // re-apply even if already sanctioned
	NoDM      bool          // skip the best-effort direct notification

	// batch suppresses the per-subject ledger entry, audit post and DM;
	// the batch coordinator records one informational entry for the
	// whole operation instead.
	batch bool
}

// SanctionResult reports what a sanction application did. The
// presentation layer renders it; the engine never formats user-facing
// text beyond plain reason and notification strings.
type SanctionResult struct {
	Kind           model.SanctionKind
	GuildID        string
	SubjectID      string
	SubjectName    string
	Reason         string
	CaseID         int64 // 0 when the ledger write degraded
	WarnCount      int   // warns only, includes the one just recorded
	LedgerDegraded bool
}

// Engine is the sanction executor: the single choke point that mutates a
// member's punitive state and triggers ledger and audit side effects.
type Engine struct {
	dir       Directory
	guilds    GuildSettings
	ledger    Ledger
	timers    TimerStore
	blacklist BlacklistStore
	audit     *Audit
	locks     *GroupLocks

	batchCeiling   int
	blacklistLimit int
}

// NewEngine wires the executor with its collaborators.
func NewEngine(dir Directory, guilds GuildSettings, ledger Ledger, timers TimerStore, bl BlacklistStore, audit *Audit) *Engine {
	return &Engine{
		dir:            dir,
		guilds:         guilds,
		ledger:         ledger,
		timers:         timers,
		blacklist:      bl,
		audit:          audit,
		locks:          NewGroupLocks(),
		batchCeiling:   50,
		blacklistLimit: 90,
	}
}

// Apply funnels every single-target sanction through one entry point.
func (e *Engine) Apply(kind model.SanctionKind, guildID, subjectID, responsibleID, reason string, opts Options) (*SanctionResult, error) {
	switch kind {
	case model.SanctionMute:
		return e.mute(guildID, subjectID, responsibleID, reason, opts)
	case model.SanctionUnmute:
		return e.unmute(guildID, subjectID, responsibleID, reason, opts)
	case model.SanctionBan, model.SanctionBanish, model.SanctionSoftban, model.SanctionSoftbanish:
		return e.removeFromGuild(kind, guildID, subjectID, responsibleID, reason, opts)
	case model.SanctionKick:
		return e.removeFromGuild(kind, guildID, subjectID, responsibleID, reason, opts)
	case model.SanctionWarn:
		return e.warn(guildID, subjectID, responsibleID, reason, opts)
	case model.SanctionBlacklist:
		return e.Blacklist(guildID, responsibleID, []string{subjectID})
	}
	return nil, fmt.Errorf("unsupported sanction kind %q: %w", kind.LedgerType(), ErrInvalidRange)
}

// AttachReason amends a recorded case's reason.
func (e *Engine) AttachReason(guildID string, caseID int64, reason string) error {
	err := e.ledger.AttachReason(guildID, caseID, reason)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLedgerUnavailable, err)
	}
	return nil
}

// record writes a ledger case with one automatic retry for transient
// store errors. Ledger failure never blocks the sanction; the caller gets
// caseID 0 and a degraded flag instead.
func (e *Engine) record(c model.Case) (int64, bool) {
	caseID, err := e.ledger.Record(c)
	if err != nil {
		caseID, err = e.ledger.Record(c)
	}
	if err != nil {
		log.Printf("Ledger write degraded for guild %s (%s on %s): %v", c.GuildID, c.ActionType, c.OffenderID, err)
		return 0, true
	}
	return caseID, false
}

func (e *Engine) newCase(kind model.SanctionKind, guildID, offenderID, offenderName, responsibleID, reason string, noDM bool) model.Case {
	return model.Case{
		GuildID:       guildID,
		ActionType:    kind.LedgerType(),
		OffenderID:    offenderID,
		OffenderName:  offenderName,
		ResponsibleID: responsibleID,
		Reason:        reason,
		NoDM:          noDM,
		CreatedAt:     time.Now().Unix(),
	}
}
