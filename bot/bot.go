package bot

import (
	"log"
	"sync/atomic"

	"moderation-bot/commands"
	"moderation-bot/config"
	"moderation-bot/model"
	"moderation-bot/moderation"
	"moderation-bot/scanner"
	"moderation-bot/utils/database/cases"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	Session            *discordgo.Session
	RegisteredCommands []*discordgo.ApplicationCommand
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	config             atomic.Value // *model.Config
	DB                 *sqlx.DB
	Cases              *cases.Store
	Engine             *moderation.Engine
	Policy             *moderation.Policy
	Dispatcher         *scanner.TimerDispatcher
	selfID             atomic.Value // string, set on Ready
	done               chan struct{}
}

// SelfID is the bot's own user id, known once the gateway sent Ready.
func (b *Bot) SelfID() string {
	if v := b.selfID.Load(); v != nil {
		return v.(string)
	}
	return ""
}

func (b *Bot) SetSelfID(id string) {
	b.selfID.Store(id)
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers | discordgo.IntentMessageContent
	dg.StateEnabled = false

	b := &Bot{
		Session: dg,
		DB:      db,
		done:    make(chan struct{}),
	}
	b.config.Store(cfg)
	return b, nil
}

// Attach wires the moderation engine into the bot after the session
// exists; the engine's collaborators are built around the session.
func (b *Bot) Attach(engine *moderation.Engine, policy *moderation.Policy, dispatcher *scanner.TimerDispatcher, ledger *cases.Store) {
	b.Engine = engine
	b.Policy = policy
	b.Dispatcher = dispatcher
	b.Cases = ledger
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	close(b.done)
	if b.Dispatcher != nil {
		b.Dispatcher.Stop()
	}
	b.Session.Close()
}

func (b *Bot) RefreshCommands(guildID string) {
	guildCfg, ok := b.GetConfig().GuildConfigs[guildID]
	if !ok {
		log.Printf("Could not find guild config for guild: %s", guildID)
		return
	}
	log.Printf("Updating commands for guild %s", guildCfg.GuildID)

	cmds := commands.GenerateCommands(&guildCfg)
	registeredCmds, err := b.Session.ApplicationCommandBulkOverwrite(b.GetConfig().AppID, guildCfg.GuildID, cmds)
	if err != nil {
		log.Printf("cannot update commands for guild '%s': %v", guildCfg.GuildID, err)
		return
	}
	b.RegisteredCommands = append(b.RegisteredCommands, registeredCmds...)
}

func (b *Bot) ReloadConfig() error {
	log.Println("Reloading configuration...")
	newCfg, err := config.Load()
	if err != nil {
		log.Printf("Error reloading config: %v", err)
		return err
	}
	b.config.Store(newCfg)
	log.Println("Configuration reloaded successfully.")

	for _, guildCfg := range newCfg.GuildConfigs {
		if guildCfg.Enable {
			go b.RefreshCommands(guildCfg.GuildID)
		}
	}
	return nil
}
