package main

import (
	"log"
	"os"
	"path/filepath"

	"moderation-bot/bot"
	"moderation-bot/config"
	"moderation-bot/handlers"
	"moderation-bot/moderation"
	"moderation-bot/scanner"
	"moderation-bot/utils"
	"moderation-bot/utils/database"
	"moderation-bot/utils/database/blacklist"
	"moderation-bot/utils/database/cases"
	"moderation-bot/utils/database/timers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	caseStore, err := cases.New(db)
	if err != nil {
		log.Fatalf("Error initializing case ledger: %v", err)
	}
	timerStore, err := timers.New(db)
	if err != nil {
		log.Fatalf("Error initializing timer store: %v", err)
	}
	blacklistStore, err := blacklist.New(db)
	if err != nil {
		log.Fatalf("Error initializing blacklist store: %v", err)
	}

	b, err := bot.New(cfg, db)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	dir := bot.NewDirectory(b.Session)
	sink := bot.NewSink(b.Session)
	guilds := bot.NewGuildSettings(b.GetConfig)

	audit := moderation.NewAudit(guilds, sink, caseStore)
	engine := moderation.NewEngine(dir, guilds, caseStore, timerStore, blacklistStore, audit)
	policy := moderation.NewPolicy(engine, cfg.Settings.AntiSpamWindow, cfg.Settings.EscalationMuteLength)
	dispatcher := scanner.NewTimerDispatcher(timerStore, engine,
		cfg.Settings.TimerPollInterval, cfg.Settings.TimerMaxAttempts,
		func(guildID, operation, info string) {
			audit.PublishNote(guildID, "Timer dropped", info, 0xfa8507)
			if err := utils.LogWarn(cfg.LogWebhookURL, "Scanner", operation, info); err != nil {
				log.Printf("Failed to send operator warning: %v", err)
			}
		})
	b.Attach(engine, policy, dispatcher, caseStore)

	handlers.Register(b)

	b.Run()

	defer b.Close()
}
