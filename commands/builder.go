package commands

import (
	"moderation-bot/commands/defs"
	"moderation-bot/model"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands assembles the command set for one guild. Mute
// commands are only offered where a mute role is configured; the rest of
// the set is unconditional.
func GenerateCommands(guildCfg *model.GuildConfig) []*discordgo.ApplicationCommand {
	cmds := []*discordgo.ApplicationCommand{
		defs.Ban,
		defs.Banish,
		defs.Softban,
		defs.Softbanish,
		defs.Kick,
		defs.Warn,
		defs.Massban,
		defs.Blacklist,
		defs.Case,
		defs.ListCases,
		defs.Warnlist,
		defs.Purge,
		defs.Status,
	}
	if guildCfg.MuteRoleID != "" {
		cmds = append(cmds, defs.Mute, defs.Unmute)
	}
	return cmds
}
