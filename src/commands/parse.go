package commands

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stake-plus/qotd/src/content"
)

var (
	channelRef = regexp.MustCompile(`^<#(\d+)>$`)
	roleRef    = regexp.MustCompile(`^<@&(\d+)>$`)
	snowflake  = regexp.MustCompile(`^\d{1,20}$`)
)

// ParseChannelRef accepts a channel mention or a raw channel id.
func ParseChannelRef(s string) (string, bool) {
	return parseRef(channelRef, s)
}

// ParseRoleRef accepts a role mention or a raw role id.
func ParseRoleRef(s string) (string, bool) {
	return parseRef(roleRef, s)
}

func parseRef(re *regexp.Regexp, s string) (string, bool) {
	s = strings.TrimSpace(s)
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if snowflake.MatchString(s) && strings.Trim(s, "0") != "" {
		return s, true
	}
	return "", false
}

// ParseItemID returns nil for an empty argument and the id for a positive
// integer. Anything else is a ValidationError.
func ParseItemID(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, &content.ValidationError{Field: "id", Reason: "must be a positive integer"}
	}
	return &id, nil
}

// SplitCommand separates the command token from its arguments. The first
// line break also ends the token so multi-line poll bodies survive intact.
func SplitCommand(text string) (name, args string) {
	text = strings.TrimLeft(text, " \t")
	end := strings.IndexAny(text, " \t\r\n")
	if end < 0 {
		return strings.ToLower(text), ""
	}
	name = strings.ToLower(text[:end])
	args = strings.TrimLeft(text[end:], " \t")
	args = strings.TrimPrefix(args, "\r")
	args = strings.TrimPrefix(args, "\n")
	return name, strings.TrimRight(args, " \t\r\n")
}
