package handlers

import (
	"fmt"
	"log"
	"sync"
	"time"

	"moderation-bot/bot"
	"moderation-bot/moderation"

	"github.com/bwmarrin/discordgo"
)

// spamTracker remembers each member's previous message so a repeat
// within the anti-spam window can be flagged. One entry per guild
// member; stale entries are overwritten on the next message.
type spamTracker struct {
	mu   sync.Mutex
	last map[string]lastMessage
}

type lastMessage struct {
	content string
	at      time.Time
}

func newSpamTracker() *spamTracker {
	return &spamTracker{last: make(map[string]lastMessage)}
}

// isRepeat reports whether this message repeats the author's previous
// one inside the window.
func (t *spamTracker) isRepeat(guildID, userID, content string, window time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := guildID + ":" + userID
	prev, ok := t.last[key]
	now := time.Now()
	t.last[key] = lastMessage{content: content, at: now}
	return ok && content != "" && prev.content == content && now.Sub(prev.at) <= window
}

var tracker = newSpamTracker()

func HandleAutomodMessage(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return
	}
	gc, ok := b.GetConfig().GuildConfigs[m.GuildID]
	if !ok || !gc.Enable {
		return
	}

	settings := b.GetConfig().Settings
	if len(m.Mentions) >= settings.MassMentionLimit && settings.MassMentionLimit > 0 {
		react(s, m, b, moderation.TriggerMassMention)
		return
	}
	if tracker.isRepeat(m.GuildID, m.Author.ID, m.Content, settings.AntiSpamWindow) {
		react(s, m, b, moderation.TriggerSpam)
	}
}

func react(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot, kind moderation.TriggerKind) {
	outcome, err := b.Policy.Trigger(m.GuildID, m.Author.ID, b.SelfID(), kind)
	if err != nil {
		log.Printf("Escalation for %s in guild %s failed: %v", m.Author.ID, m.GuildID, err)
	}
	if outcome == moderation.OutcomeWarned {
		msg := fmt.Sprintf("<@%s>, stop that (%s). Next time is a sanction.", m.Author.ID, kind)
		if _, err := s.ChannelMessageSend(m.ChannelID, msg); err != nil {
			log.Printf("Error sending automod warning in channel %s: %v", m.ChannelID, err)
		}
	}
}
