package utils

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// AwaitConfirmation waits for the given user to reply "yes" or "no" in
// the channel. Anything other than an explicit "yes" before the timeout
// counts as a refusal.
func AwaitConfirmation(s *discordgo.Session, channelID, userID string, timeout time.Duration) bool {
	answer := make(chan bool, 1)

	remove := s.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.ChannelID != channelID || m.Author == nil || m.Author.ID != userID {
			return
		}
		switch strings.ToLower(strings.TrimSpace(m.Content)) {
		case "yes", "y":
			select {
			case answer <- true:
			default:
			}
		case "no", "n":
			select {
			case answer <- false:
			default:
			}
		}
	})
	defer remove()

	select {
	case ok := <-answer:
		return ok
	case <-time.After(timeout):
		return false
	}
}
