package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"moderation-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	log.Println("Registering commands for enabled guilds...")
	b.RegisteredCommands = make([]*discordgo.ApplicationCommand, 0)
	for _, guildCfg := range b.GetConfig().GuildConfigs {
		if guildCfg.Enable {
			b.RefreshCommands(guildCfg.GuildID)
		}
	}

	// Start the timer dispatch loop; it replays past-due timers first.
	if b.Dispatcher != nil {
		b.Dispatcher.Start()
	}

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	utils.LogInfo(b.GetConfig().LogWebhookURL, "System", "Startup", "Bot has started successfully.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
