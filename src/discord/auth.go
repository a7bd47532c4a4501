package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HasRoleNamed reports whether memberRoles contains a guild role called name
// (case-insensitive). An empty name always returns true.
func HasRoleNamed(guildRoles []*discordgo.Role, memberRoles []string, name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}
	wanted := make(map[string]struct{})
	for _, role := range guildRoles {
		if role != nil && strings.EqualFold(role.Name, name) {
			wanted[role.ID] = struct{}{}
		}
	}
	for _, id := range memberRoles {
		if _, ok := wanted[id]; ok {
			return true
		}
	}
	return false
}

// IsAdmin checks the member against the guild's roles, preferring the state
// cache and falling back to REST.
func IsAdmin(s *discordgo.Session, guildID string, member *discordgo.Member, roleName string) bool {
	if member == nil {
		return false
	}
	var roles []*discordgo.Role
	if s.State != nil {
		if g, err := s.State.Guild(guildID); err == nil {
			roles = g.Roles
		}
	}
	if roles == nil {
		fetched, err := s.GuildRoles(guildID)
		if err != nil {
			return false
		}
		roles = fetched
	}
	return HasRoleNamed(roles, member.Roles, roleName)
}
