package moderation

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"moderation-bot/model"

	"github.com/bwmarrin/discordgo"
)

// Status reports how an audit delivery went. Audit failures never block a
// sanction; the sanction has already been applied by the time this runs.
type Status int

const (
	StatusOk Status = iota
	// StatusSkipped: the guild has no log destination configured. Audit
	// logging is opt-in, so this is a silent no-op.
	StatusSkipped
	// StatusDegraded: delivery failed; logged, not propagated.
	StatusDegraded
)

const hookMismatchWarning = "⚠ **Logging webhook and channel id mismatch, please fix!** " +
	"The webhook's target channel has to match the configured modlog channel."

// Audit is the best-effort dispatcher of case summaries to a guild's
// configured log destination.
type Audit struct {
	guilds GuildSettings
	sink   AuditSink
	ledger Ledger

	mu     sync.Mutex
	warned map[string]bool // guilds already warned about a hook mismatch
}

// NewAudit creates the audit dispatcher.
func NewAudit(guilds GuildSettings, sink AuditSink, ledger Ledger) *Audit {
	return &Audit{guilds: guilds, sink: sink, ledger: ledger, warned: make(map[string]bool)}
}

// PublishCase renders and delivers the audit summary of one recorded
// sanction. On success the case is marked logged.
func (a *Audit) PublishCase(kind model.SanctionKind, res *SanctionResult, responsibleID, detail string) Status {
	title := kind.AuditTitle()
	if detail != "" {
		title += " " + detail
	}

	em := &discordgo.MessageEmbed{
		Color: kind.AuditColor(),
		Title: title,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Responsible", Value: fmt.Sprintf("<@%s>", responsibleID), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | Case id: %d", time.Now().UTC().Format(time.RFC1123), res.CaseID),
		},
	}
	if res.SubjectID != "" {
		em.Fields = append(em.Fields, &discordgo.MessageEmbedField{
			Name:   "Offender",
			Value:  fmt.Sprintf("<@%s>\n%s\n%s", res.SubjectID, res.SubjectName, res.SubjectID),
			Inline: true,
		})
	}
	reason := res.Reason
	if reason == "" {
		reason = fmt.Sprintf("*No reason provided. Can still be attached to case %d.*", res.CaseID)
	}
	em.Fields = append(em.Fields, &discordgo.MessageEmbedField{Name: "Reason", Value: reason})

	return a.publish(res.GuildID, res.CaseID, em)
}

// PublishNote delivers a lighter-weight event that is not a ledger case
// (auto-expiry notes, dropped-timer warnings).
func (a *Audit) PublishNote(guildID, title, text string, color int) Status {
	em := &discordgo.MessageEmbed{
		Title:       title,
		Description: text,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: time.Now().UTC().Format(time.RFC1123)},
	}
	return a.publish(guildID, 0, em)
}

func (a *Audit) publish(guildID string, caseID int64, em *discordgo.MessageEmbed) Status {
	dest, err := a.guilds.LogDestination(guildID)
	if errors.Is(err, ErrNotConfigured) {
		return StatusSkipped
	}
	if err != nil {
		log.Printf("Audit destination lookup failed for guild %s: %v", guildID, err)
		return StatusDegraded
	}

	content := ""
	useHook := dest.WebhookID != ""
	if useHook {
		hookChannel, err := a.sink.WebhookChannel(dest.WebhookID)
		if err != nil || hookChannel != dest.ChannelID {
			// warn once per guild, then always fall back to the pinned
			// channel instead of silently dropping the message
			useHook = false
			a.mu.Lock()
			if !a.warned[guildID] {
				a.warned[guildID] = true
				content = hookMismatchWarning
			}
			a.mu.Unlock()
		}
	}

	if useHook {
		if err := a.sink.ExecuteWebhook(dest.WebhookID, dest.WebhookToken, content, em); err == nil {
			a.markLogged(guildID, caseID, dest.ChannelID)
			return StatusOk
		}
	}
	if err := a.sink.SendChannel(dest.ChannelID, content, em); err != nil {
		log.Printf("Audit delivery failed for guild %s: %v", guildID, err)
		return StatusDegraded
	}
	a.markLogged(guildID, caseID, dest.ChannelID)
	return StatusOk
}

func (a *Audit) markLogged(guildID string, caseID int64, channelID string) {
	if caseID == 0 {
		return
	}
	if err := a.ledger.MarkLogged(guildID, caseID, channelID); err != nil {
		log.Printf("Failed to mark case %d logged for guild %s: %v", caseID, guildID, err)
	}
}
