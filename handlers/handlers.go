package handlers

import (
	"log"

	"moderation-bot/bot"
	"moderation-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"mute": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleMute(s, i, b)
		},
		"unmute": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnmute(s, i, b)
		},
		"ban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoval(s, i, b, "ban")
		},
		"banish": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoval(s, i, b, "banish")
		},
		"softban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoval(s, i, b, "softban")
		},
		"softbanish": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoval(s, i, b, "softbanish")
		},
		"kick": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemoval(s, i, b, "kick")
		},
		"warn": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarn(s, i, b)
		},
		"massban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleMassban(s, i, b)
		},
		"blacklist": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBlacklist(s, i, b)
		},
		"case": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleCaseReason(s, i, b)
		},
		"listcases": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleListCases(s, i, b)
		},
		"warnlist": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarnlist(s, i, b)
		},
		"purge": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandlePurge(s, i, b)
		},
		"status": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStatus(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.SetSelfID(r.User.ID)
		log.Printf("Logged in as: %v#%v", r.User.Username, r.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.GuildID == "" || i.Member == nil {
			utils.SendErrorResponse(s, i, "This command only works inside a server.")
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		HandleAutomodMessage(s, m, b)
	})
}
