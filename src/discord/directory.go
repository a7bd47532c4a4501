package discord

import (
	"context"
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// Directory answers guild membership questions for channels and roles.
type Directory struct {
	session *discordgo.Session
}

func NewDirectory(s *discordgo.Session) *Directory {
	return &Directory{session: s}
}

// ChannelInGuild reports whether channelID is a channel of guildID.
func (d *Directory) ChannelInGuild(ctx context.Context, guildID, channelID string) (bool, error) {
	if d.session.State != nil {
		if ch, err := d.session.State.Channel(channelID); err == nil {
			return ch.GuildID == guildID, nil
		}
	}
	ch, err := d.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, err
	}
	return ch.GuildID == guildID, nil
}

// RoleInGuild reports whether roleID is a role of guildID.
func (d *Directory) RoleInGuild(ctx context.Context, guildID, roleID string) (bool, error) {
	if d.session.State != nil {
		if _, err := d.session.State.Role(guildID, roleID); err == nil {
			return true, nil
		}
	}
	roles, err := d.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, err
	}
	for _, role := range roles {
		if role.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

func isMissing(err error) bool {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) || rest.Response == nil {
		return false
	}
	switch rest.Response.StatusCode {
	case http.StatusNotFound, http.StatusForbidden:
		return true
	}
	return false
}
