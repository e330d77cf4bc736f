package handlers

import (
	"fmt"
	"log"
	"strings"

	"moderation-bot/bot"
	"moderation-bot/model"
	"moderation-bot/moderation"
	"moderation-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func HandleMute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	subjectID := userOption(s, i, opts, "user")
	reason := stringOption(opts, "reason")

	applied := moderation.Options{NoDM: boolOption(opts, "silent")}
	if length := stringOption(opts, "length"); length != "" {
		d, err := utils.ParseDuration(length)
		if err != nil {
			utils.SendErrorResponse(s, i, fmt.Sprintf("Could not parse length %q, use forms like 30m, 12h or 3d.", length))
			return
		}
		applied.Duration = d
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring mute response: %v", err)
		return
	}
	res, err := b.Engine.Apply(model.SanctionMute, i.GuildID, subjectID, invokerID(i), reason, applied)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, moderation.UserMessage(err))
		return
	}

	msg := fmt.Sprintf("Muted <@%s>%s.", subjectID, lengthSuffix(applied))
	utils.SendFollowUp(s, i.Interaction, withCaseNote(msg, res))
}

func HandleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	subjectID := userOption(s, i, opts, "user")
	reason := stringOption(opts, "reason")

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring unmute response: %v", err)
		return
	}
	res, err := b.Engine.Apply(model.SanctionUnmute, i.GuildID, subjectID, invokerID(i), reason,
		moderation.Options{NoDM: boolOption(opts, "silent")})
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, moderation.UserMessage(err))
		return
	}
	utils.SendFollowUp(s, i.Interaction, withCaseNote(fmt.Sprintf("Unmuted <@%s>.", subjectID), res))
}

var removalKinds = map[string]model.SanctionKind{
	"ban":        model.SanctionBan,
	"banish":     model.SanctionBanish,
	"softban":    model.SanctionSoftban,
	"softbanish": model.SanctionSoftbanish,
	"kick":       model.SanctionKick,
}

// defaultPurgeDays is the message purge window used when the command
// omits purge_days. The banish variants exist to purge.
var defaultPurgeDays = map[string]int{
	"ban":        0,
	"banish":     1,
	"softban":    1,
	"softbanish": 7,
	"kick":       0,
}

func HandleRemoval(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, name string) {
	kind, ok := removalKinds[name]
	if !ok {
		return
	}
	opts := optionMap(i)
	subjectID := userOption(s, i, opts, "user")
	reason := stringOption(opts, "reason")

	applied := moderation.Options{
		PurgeDays: intOption(opts, "purge_days", defaultPurgeDays[name]),
		NoDM:      boolOption(opts, "silent"),
	}

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring %s response: %v", name, err)
		return
	}
	res, err := b.Engine.Apply(kind, i.GuildID, subjectID, invokerID(i), reason, applied)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, moderation.UserMessage(err))
		return
	}

	verb := "Banned"
	switch kind {
	case model.SanctionKick:
		verb = "Kicked"
	case model.SanctionSoftban, model.SanctionSoftbanish:
		verb = "Softbanned"
	}
	utils.SendFollowUp(s, i.Interaction, withCaseNote(fmt.Sprintf("%s <@%s>.", verb, subjectID), res))
}

func HandleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	subjectID := userOption(s, i, opts, "user")
	reason := stringOption(opts, "reason")

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring warn response: %v", err)
		return
	}
	res, err := b.Engine.Apply(model.SanctionWarn, i.GuildID, subjectID, invokerID(i), reason, moderation.Options{})
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, moderation.UserMessage(err))
		return
	}
	utils.SendFollowUp(s, i.Interaction, withCaseNote(
		fmt.Sprintf("Warned <@%s>, they now have %d warning(s).", subjectID, res.WarnCount), res))
}

func HandleMassban(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	targets := splitIDs(stringOption(opts, "targets"))
	applied := moderation.Options{PurgeDays: intOption(opts, "purge_days", 0)}

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring massban response: %v", err)
		return
	}
	result, err := b.Engine.ApplyBatch(model.SanctionBan, i.GuildID, invokerID(i), targets, applied)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, moderation.UserMessage(err))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Banned %d of %d targets.", len(result.Succeeded), len(result.Succeeded)+len(result.Failed))
	if len(result.Failed) > 0 {
		sb.WriteString("\nFailures:")
		for _, f := range result.Failed {
			fmt.Fprintf(&sb, "\n- <@%s>: %s", f.SubjectID, failureText(f.Code))
		}
	}
	if result.CaseID > 0 {
		fmt.Fprintf(&sb, "\nCase #%d.", result.CaseID)
	}
	utils.SendFollowUp(s, i.Interaction, sb.String())
}

func failureText(code moderation.FailureCode) string {
	switch code {
	case moderation.FailureNotFound:
		return "not found (F1)"
	case moderation.FailureForbidden:
		return "not enough permissions (F2)"
	}
	return string(code)
}

func HandleBlacklist(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	ids := splitIDs(stringOption(opts, "ids"))

	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Error deferring blacklist response: %v", err)
		return
	}
	res, err := b.Engine.Blacklist(i.GuildID, invokerID(i), ids)
	if err != nil {
		utils.SendFollowUpError(s, i.Interaction, moderation.UserMessage(err))
		return
	}
	utils.SendFollowUp(s, i.Interaction, withCaseNote(
		fmt.Sprintf("Blacklisted %d id(s).", len(splitIDs(res.Reason))), res))
}

func splitIDs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		// accept raw ids and <@...> mentions
		f = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(f, "<@"), "!"), ">")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func lengthSuffix(opts moderation.Options) string {
	if opts.Duration <= 0 {
		return " indefinitely"
	}
	return " for " + utils.FormatDuration(opts.Duration)
}

// withCaseNote appends the case reference, or a degradation note when
// the ledger write failed and no case number exists.
func withCaseNote(msg string, res *moderation.SanctionResult) string {
	if res.LedgerDegraded {
		return msg + " The case ledger was unavailable; this action has no case number."
	}
	if res.CaseID > 0 {
		return fmt.Sprintf("%s Case #%d.", msg, res.CaseID)
	}
	return msg
}
