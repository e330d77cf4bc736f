package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Sink delivers audit embeds over the session.
type Sink struct {
	s *discordgo.Session
}

func NewSink(s *discordgo.Session) *Sink {
	return &Sink{s: s}
}

func (k *Sink) ExecuteWebhook(webhookID, token, content string, embed *discordgo.MessageEmbed) error {
	_, err := k.s.WebhookExecute(webhookID, token, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	return err
}

func (k *Sink) WebhookChannel(webhookID string) (string, error) {
	hook, err := k.s.Webhook(webhookID)
	if err != nil {
		return "", err
	}
	return hook.ChannelID, nil
}

func (k *Sink) SendChannel(channelID, content string, embed *discordgo.MessageEmbed) error {
	_, err := k.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{embed},
	})
	return err
}
