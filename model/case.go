package model

import "database/sql"

// Case represents a single immutable entry in the moderation case ledger.
// The database table is named 'cases'. CaseIDOnGuild is assigned
// sequentially per guild starting at 1 and is never reused; only the
// reason may be amended after creation.
type Case struct {
	ID              int64         `db:"id"` // Primary Key, Auto-increment
	GuildID         string        `db:"guild_id"`
	CaseIDOnGuild   int64         `db:"case_id_on_guild"`
	ActionType      string        `db:"action_type"`
	OffenderID      string        `db:"offender_id"`
	OffenderName    string        `db:"offender_name"` // display name snapshot, offender may leave later
	ResponsibleID   string        `db:"responsible_id"`
	Reason          string        `db:"reason"`
	NoDM            bool          `db:"no_dm"`
	CreatedAt       int64         `db:"created_at"`
	LoggedAt        sql.NullInt64 `db:"logged_at"` // set once the audit message was posted
	LoggedChannelID string        `db:"logged_channel_id"`
}
