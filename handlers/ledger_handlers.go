package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"moderation-bot/bot"
	"moderation-bot/model"
	"moderation-bot/moderation"
	"moderation-bot/utils"
	"moderation-bot/utils/database/cases"

	"github.com/bwmarrin/discordgo"
)

func HandleCaseReason(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	caseID := int64(intOption(opts, "case_id", 0))
	reason := stringOption(opts, "reason")

	if err := b.Engine.AttachReason(i.GuildID, caseID, reason); err != nil {
		utils.SendErrorResponse(s, i, moderation.UserMessage(err))
		return
	}
	utils.SendSimpleResponse(s, i, fmt.Sprintf("Updated reason of case #%d.", caseID))
}

func HandleListCases(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	filter := cases.Filter{
		OffenderID: userOption(s, i, opts, "user"),
		ActionType: stringOption(opts, "action"),
	}
	limit := intOption(opts, "limit", 10)
	if limit < 1 {
		limit = 1
	}
	if limit > 25 {
		limit = 25
	}

	records, err := b.Cases.Query(i.GuildID, filter, limit, 0, false)
	if err != nil {
		log.Printf("Error querying cases for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, moderation.UserMessage(moderation.ErrLedgerUnavailable))
		return
	}
	if len(records) == 0 {
		utils.SendSimpleResponse(s, i, "No cases match.")
		return
	}

	var sb strings.Builder
	for _, c := range records {
		sb.WriteString(formatCaseLine(c))
		sb.WriteByte('\n')
	}
	utils.SendSimpleResponse(s, i, sb.String())
}

func HandleWarnlist(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	subjectID := userOption(s, i, opts, "user")

	records, err := b.Cases.Query(i.GuildID, cases.Filter{
		OffenderID: subjectID,
		ActionType: model.SanctionWarn.LedgerType(),
	}, 25, 0, true)
	if err != nil {
		log.Printf("Error querying warnings for user %s in guild %s: %v", subjectID, i.GuildID, err)
		utils.SendErrorResponse(s, i, moderation.UserMessage(moderation.ErrLedgerUnavailable))
		return
	}
	if len(records) == 0 {
		utils.SendSimpleResponse(s, i, fmt.Sprintf("<@%s> has no warnings.", subjectID))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<@%s> has %d warning(s):\n", subjectID, len(records))
	for _, c := range records {
		sb.WriteString(formatCaseLine(c))
		sb.WriteByte('\n')
	}
	utils.SendSimpleResponse(s, i, sb.String())
}

func formatCaseLine(c model.Case) string {
	reason := c.Reason
	if reason == "" {
		reason = "(no reason)"
	}
	when := time.Unix(c.CreatedAt, 0).UTC().Format("2006-01-02 15:04")
	if c.OffenderID == "" {
		return fmt.Sprintf("`#%d` **%s** by <@%s> on %s: %s",
			c.CaseIDOnGuild, c.ActionType, c.ResponsibleID, when, reason)
	}
	return fmt.Sprintf("`#%d` **%s** <@%s> by <@%s> on %s: %s",
		c.CaseIDOnGuild, c.ActionType, c.OffenderID, c.ResponsibleID, when, reason)
}
