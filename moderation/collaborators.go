package moderation

import (
	"time"

	"moderation-bot/model"

	"github.com/bwmarrin/discordgo"
)

// Member is a directory snapshot of a guild member.
type Member struct {
	ID          string
	DisplayName string
	Roles       []string
	TopRoleRank int  // position of the member's highest role
	IsOwner     bool // guild owner outranks everyone
}

// HasRole reports whether the member carries the given role.
func (m *Member) HasRole(roleID string) bool {
	for _, r := range m.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// Directory is the member-directory collaborator. Implementations map
// platform rejections onto ErrForbidden / ErrNotFound so the engine can
// tell them apart; Notify failures are always non-fatal to callers.
type Directory interface {
	Member(guildID, userID string) (*Member, error)
	GrantRole(guildID, userID, roleID, reason string) error
	RevokeRole(guildID, userID, roleID, reason string) error
	Ban(guildID, userID string, purgeDays int, reason string) error
	Unban(guildID, userID, reason string) error
	Kick(guildID, userID, reason string) error
	Notify(userID, text string) error
}

// LogDestination is a guild's configured audit log target.
type LogDestination struct {
	ChannelID    string
	WebhookID    string
	WebhookToken string
}

// GuildSettings resolves per-guild moderation configuration.
type GuildSettings interface {
	// MuteRole returns the guild's punitive role, or ErrNotConfigured.
	MuteRole(guildID string) (string, error)
	// LogDestination returns the guild's modlog target, or ErrNotConfigured.
	LogDestination(guildID string) (*LogDestination, error)
	// RaidLevel returns the guild's abuse-response level.
	RaidLevel(guildID string) int
}

// Ledger is the case ledger store.
type Ledger interface {
	Record(c model.Case) (int64, error)
	AttachReason(guildID string, caseID int64, reason string) error
	MarkLogged(guildID string, caseID int64, channelID string) error
	CountWarnings(guildID, offenderID string) (int, error)
}

// TimerStore persists pending timed reversals.
type TimerStore interface {
	Upsert(t model.Timer) error
	Delete(guildID, subjectID, kind string) error
	DeleteByID(id int64) error
	Bump(id int64) error
	Due(now time.Time) ([]model.Timer, error)
}

// BlacklistStore is the insert-only guild blacklist.
type BlacklistStore interface {
	InsertMany(guildID string, userIDs []string) error
}

// AuditSink delivers audit messages. Implementations never format text;
// they only move embeds.
type AuditSink interface {
	ExecuteWebhook(webhookID, token, content string, embed *discordgo.MessageEmbed) error
	WebhookChannel(webhookID string) (string, error)
	SendChannel(channelID, content string, embed *discordgo.MessageEmbed) error
}
