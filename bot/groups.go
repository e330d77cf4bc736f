package bot

import (
	"moderation-bot/model"
	"moderation-bot/moderation"
)

// GuildSettings resolves per-guild moderation configuration from the
// live config snapshot.
type GuildSettings struct {
	cfg func() *model.Config
}

func NewGuildSettings(cfg func() *model.Config) *GuildSettings {
	return &GuildSettings{cfg: cfg}
}

func (g *GuildSettings) guild(guildID string) (model.GuildConfig, bool) {
	gc, ok := g.cfg().GuildConfigs[guildID]
	return gc, ok
}

func (g *GuildSettings) MuteRole(guildID string) (string, error) {
	gc, ok := g.guild(guildID)
	if !ok || gc.MuteRoleID == "" {
		return "", moderation.ErrNotConfigured
	}
	return gc.MuteRoleID, nil
}

func (g *GuildSettings) LogDestination(guildID string) (*moderation.LogDestination, error) {
	gc, ok := g.guild(guildID)
	if !ok || gc.ModLogChannelID == "" {
		return nil, moderation.ErrNotConfigured
	}
	return &moderation.LogDestination{
		ChannelID:    gc.ModLogChannelID,
		WebhookID:    gc.ModLogWebhookID,
		WebhookToken: gc.ModLogWebhookToken,
	}, nil
}

func (g *GuildSettings) RaidLevel(guildID string) int {
	gc, ok := g.guild(guildID)
	if !ok || gc.RaidLevel == 0 {
		return 2
	}
	return gc.RaidLevel
}
