package model

import "database/sql"

// TimerKindMute is the only timer kind currently dispatched.
const TimerKindMute = "mute"

// Timer is a persisted future reversal event. At most one active timer
// exists per (guild, subject, kind); creating a new one for the same key
// supersedes the old one. A NULL ExpiresAt means "indefinite" and never
// fires.
type Timer struct {
	ID            int64         `db:"timer_id"` // Primary Key, Auto-increment
	GuildID       string        `db:"guild_id"`
	SubjectID     string        `db:"subject_id"`
	Kind          string        `db:"kind"`
	ExpiresAt     sql.NullInt64 `db:"expires_at"`
	Reason        string        `db:"reason"`
	CreatedBy     string        `db:"created_by"`
	NotifySubject bool          `db:"notify_subject"`
	IsUpdate      bool          `db:"is_update"` // replaced a prior timer for the same subject+kind
	Attempts      int           `db:"attempts"`  // failed dispatch attempts so far
}
