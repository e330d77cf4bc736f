package handlers

import (
	"fmt"
	"log"
	"time"

	"moderation-bot/bot"
	"moderation-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const purgeConfirmThreshold = 100

func HandlePurge(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	count := intOption(opts, "count", 0)
	if count < 1 {
		utils.SendErrorResponse(s, i, "Nothing to delete.")
		return
	}

	if count > purgeConfirmThreshold {
		utils.SendPublicResponse(s, i,
			fmt.Sprintf("About to delete %d messages. Reply `yes` within %s to confirm.",
				count, b.GetConfig().Settings.ConfirmTimeout))
		confirmed := utils.AwaitConfirmation(s, i.ChannelID, invokerID(i), b.GetConfig().Settings.ConfirmTimeout)
		if !confirmed {
			if _, err := s.ChannelMessageSend(i.ChannelID, "Purge cancelled."); err != nil {
				log.Printf("Error sending purge cancellation: %v", err)
			}
			return
		}
		deleted := purgeMessages(s, i.ChannelID, count)
		if _, err := s.ChannelMessageSend(i.ChannelID, fmt.Sprintf("Deleted %d messages.", deleted)); err != nil {
			log.Printf("Error sending purge summary: %v", err)
		}
		return
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring purge response: %v", err)
		return
	}
	deleted := purgeMessages(s, i.ChannelID, count)
	utils.SendFollowUp(s, i.Interaction, fmt.Sprintf("Deleted %d messages.", deleted))
}

// purgeMessages deletes up to count recent messages in bulk batches of
// 100. Messages older than the bulk-delete horizon are skipped; the
// platform rejects them anyway.
func purgeMessages(s *discordgo.Session, channelID string, count int) int {
	deleted := 0
	horizon := time.Now().Add(-14 * 24 * time.Hour)
	for count > 0 {
		batch := count
		if batch > 100 {
			batch = 100
		}
		msgs, err := s.ChannelMessages(channelID, batch, "", "", "")
		if err != nil {
			log.Printf("Error fetching messages to purge in channel %s: %v", channelID, err)
			return deleted
		}
		if len(msgs) == 0 {
			return deleted
		}

		ids := make([]string, 0, len(msgs))
		for _, m := range msgs {
			if m.Timestamp.Before(horizon) {
				continue
			}
			ids = append(ids, m.ID)
		}
		if len(ids) == 0 {
			return deleted
		}
		if err := s.ChannelMessagesBulkDelete(channelID, ids); err != nil {
			log.Printf("Error bulk deleting in channel %s: %v", channelID, err)
			return deleted
		}
		deleted += len(ids)
		count -= len(ids)
	}
	return deleted
}
