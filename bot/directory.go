package bot

import (
	"errors"
	"fmt"
	"net/http"

	"moderation-bot/moderation"

	"github.com/bwmarrin/discordgo"
)

// Directory adapts a discordgo session to the engine's member-directory
// collaborator. Platform rejections are mapped onto the engine's error
// taxonomy so callers can tell "no permission" from "already left".
type Directory struct {
	s *discordgo.Session
}

func NewDirectory(s *discordgo.Session) *Directory {
	return &Directory{s: s}
}

func mapRESTError(err error) error {
	if err == nil {
		return nil
	}
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Response != nil {
		switch rerr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %v", moderation.ErrForbidden, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", moderation.ErrNotFound, err)
		}
	}
	return err
}

func (d *Directory) Member(guildID, userID string) (*moderation.Member, error) {
	m, err := d.s.GuildMember(guildID, userID)
	if err != nil {
		return nil, mapRESTError(err)
	}
	g, err := d.s.Guild(guildID)
	if err != nil {
		return nil, mapRESTError(err)
	}

	positions := make(map[string]int, len(g.Roles))
	for _, r := range g.Roles {
		positions[r.ID] = r.Position
	}
	topRank := 0
	for _, roleID := range m.Roles {
		if p, ok := positions[roleID]; ok && p > topRank {
			topRank = p
		}
	}

	name := m.Nick
	if name == "" && m.User != nil {
		name = m.User.Username
	}
	return &moderation.Member{
		ID:          userID,
		DisplayName: name,
		Roles:       m.Roles,
		TopRoleRank: topRank,
		IsOwner:     g.OwnerID == userID,
	}, nil
}

func (d *Directory) GrantRole(guildID, userID, roleID, reason string) error {
	return mapRESTError(d.s.GuildMemberRoleAdd(guildID, userID, roleID,
		discordgo.WithAuditLogReason(reason)))
}

func (d *Directory) RevokeRole(guildID, userID, roleID, reason string) error {
	return mapRESTError(d.s.GuildMemberRoleRemove(guildID, userID, roleID,
		discordgo.WithAuditLogReason(reason)))
}

func (d *Directory) Ban(guildID, userID string, purgeDays int, reason string) error {
	return mapRESTError(d.s.GuildBanCreateWithReason(guildID, userID, reason, purgeDays))
}

func (d *Directory) Unban(guildID, userID, reason string) error {
	return mapRESTError(d.s.GuildBanDelete(guildID, userID,
		discordgo.WithAuditLogReason(reason)))
}

func (d *Directory) Kick(guildID, userID, reason string) error {
	return mapRESTError(d.s.GuildMemberDeleteWithReason(guildID, userID, reason))
}

// Notify sends a direct message. The recipient may have DMs disabled;
// callers treat any error here as non-fatal.
func (d *Directory) Notify(userID, text string) error {
	channel, err := d.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("error creating private channel with user %s: %w", userID, err)
	}
	if _, err := d.s.ChannelMessageSend(channel.ID, text); err != nil {
		return fmt.Errorf("error sending private message to user %s: %w", userID, err)
	}
	return nil
}
