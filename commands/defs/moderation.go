package defs

import "github.com/bwmarrin/discordgo"

func userOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: "The target user",
		Required:    required,
	}
}

func reasonOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "Why this action is taken",
		Required:    required,
	}
}

func silentOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "silent",
		Description: "Skip the direct message to the user",
		Required:    false,
	}
}

func purgeDaysOption() *discordgo.ApplicationCommandOption {
	var minDays float64 = 0
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "purge_days",
		Description: "Days of the user's messages to delete (0-7)",
		Required:    false,
		MinValue:    &minDays,
		MaxValue:    7,
	}
}

var Mute = &discordgo.ApplicationCommand{
	Name:        "mute",
	Description: "Mute a user, optionally for a limited time",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "length",
			Description: "Mute length such as 30m, 12h or 3d; omit for indefinite",
			Required:    false,
		},
		reasonOption(false),
		silentOption(),
	},
}

var Unmute = &discordgo.ApplicationCommand{
	Name:        "unmute",
	Description: "Lift a user's mute",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(false),
		silentOption(),
	},
}

var Ban = &discordgo.ApplicationCommand{
	Name:        "ban",
	Description: "Ban a user from the server",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(false),
		purgeDaysOption(),
		silentOption(),
	},
}

var Banish = &discordgo.ApplicationCommand{
	Name:        "banish",
	Description: "Ban a user and delete their recent messages",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(false),
		purgeDaysOption(),
		silentOption(),
	},
}

var Softban = &discordgo.ApplicationCommand{
	Name:        "softban",
	Description: "Ban and immediately unban a user to clear their messages",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(false),
		purgeDaysOption(),
		silentOption(),
	},
}

var Softbanish = &discordgo.ApplicationCommand{
	Name:        "softbanish",
	Description: "Softban a user with a wider message purge",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(false),
		purgeDaysOption(),
		silentOption(),
	},
}

var Kick = &discordgo.ApplicationCommand{
	Name:        "kick",
	Description: "Kick a user from the server",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(false),
		silentOption(),
	},
}

var Warn = &discordgo.ApplicationCommand{
	Name:        "warn",
	Description: "Record a warning against a user",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
		reasonOption(true),
	},
}

var Massban = &discordgo.ApplicationCommand{
	Name:        "massban",
	Description: "Ban 2 to 50 users in one operation",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "targets",
			Description: "User ids separated by spaces or commas",
			Required:    true,
		},
		purgeDaysOption(),
	},
}

var Blacklist = &discordgo.ApplicationCommand{
	Name:        "blacklist",
	Description: "Add up to 90 user ids to the guild blacklist",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "ids",
			Description: "User ids separated by spaces or commas",
			Required:    true,
		},
	},
}

var Case = &discordgo.ApplicationCommand{
	Name:        "case",
	Description: "Attach or amend the reason of a recorded case",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "case_id",
			Description: "The case number in this server",
			Required:    true,
		},
		reasonOption(true),
	},
}

var ListCases = &discordgo.ApplicationCommand{
	Name:        "listcases",
	Description: "List recorded cases, most recent first",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(false),
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "action",
			Description: "Only show cases of this type",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "mute", Value: "mute"},
				{Name: "unmute", Value: "unmute"},
				{Name: "ban", Value: "ban"},
				{Name: "softban", Value: "softban"},
				{Name: "kick", Value: "kick"},
				{Name: "warn", Value: "warn"},
				{Name: "massban", Value: "massban"},
				{Name: "blacklist", Value: "blacklist"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "limit",
			Description: "How many cases to show (default 10)",
			Required:    false,
		},
	},
}

var Warnlist = &discordgo.ApplicationCommand{
	Name:        "warnlist",
	Description: "Show all warnings recorded against a user",
	Options: []*discordgo.ApplicationCommandOption{
		userOption(true),
	},
}

var Purge = &discordgo.ApplicationCommand{
	Name:        "purge",
	Description: "Delete the last N messages in this channel",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "count",
			Description: "How many messages to delete",
			Required:    true,
		},
	},
}

var Status = &discordgo.ApplicationCommand{
	Name:        "status",
	Description: "Show bot and host status",
}
