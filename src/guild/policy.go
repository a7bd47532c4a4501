// Package guild holds per-guild delivery settings and ping formatting.
package guild

import "fmt"

// MentionKind selects who is pinged when content is delivered.
type MentionKind uint8

const (
	MentionNone MentionKind = iota
	MentionEveryone
	MentionRole
)

// MentionPolicy is None, Everyone, or a specific role.
type MentionPolicy struct {
	Kind   MentionKind
	RoleID string
}

func NoMention() MentionPolicy       { return MentionPolicy{Kind: MentionNone} }
func EveryoneMention() MentionPolicy { return MentionPolicy{Kind: MentionEveryone} }

// RoleMention pings roleID. The id is not checked against the guild here.
func RoleMention(roleID string) MentionPolicy {
	return MentionPolicy{Kind: MentionRole, RoleID: roleID}
}

func (p MentionPolicy) String() string {
	switch p.Kind {
	case MentionEveryone:
		return "everyone"
	case MentionRole:
		return "role:" + p.RoleID
	default:
		return "none"
	}
}

// Display renders the policy the way the ping_role command shows it.
func (p MentionPolicy) Display() string {
	switch p.Kind {
	case MentionEveryone:
		return "1"
	case MentionRole:
		return fmt.Sprintf(DiscordRoleTemplate, p.RoleID)
	default:
		return "0"
	}
}
