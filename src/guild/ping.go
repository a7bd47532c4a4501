package guild

import "fmt"

// DiscordRoleTemplate is Discord's role mention syntax.
const DiscordRoleTemplate = "<@&%s>"

// Formatter prefixes delivered content with the guild's mention.
type Formatter struct {
	// RoleTemplate is a fmt template with one %s for the role id.
	RoleTemplate string
}

// Format combines policy and body. Role existence is not checked.
func (f Formatter) Format(policy MentionPolicy, body string) string {
	switch policy.Kind {
	case MentionEveryone:
		return "@everyone " + body
	case MentionRole:
		tmpl := f.RoleTemplate
		if tmpl == "" {
			tmpl = DiscordRoleTemplate
		}
		return fmt.Sprintf(tmpl, policy.RoleID) + " " + body
	default:
		return body
	}
}

// FormatPing formats with the Discord role template.
func FormatPing(policy MentionPolicy, body string) string {
	return Formatter{RoleTemplate: DiscordRoleTemplate}.Format(policy, body)
}
