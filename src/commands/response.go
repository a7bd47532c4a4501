package commands

import "github.com/stake-plus/qotd/src/content"

// Status classifies a command result for the transport.
type Status int

const (
	StatusOK Status = iota
	StatusInvalid
	StatusNotInGuild
	StatusNotFound
	StatusNoCustom
	StatusCapacity
	StatusChannelUnset
	// StatusNotConfigured means a curated pool is empty; it should alert operators.
	StatusNotConfigured
	// StatusFailure means the store failed; users only see a generic message.
	StatusFailure
	StatusUnknownCommand
)

var statusNames = map[Status]string{
	StatusOK:             "ok",
	StatusInvalid:        "invalid",
	StatusNotInGuild:     "not_in_guild",
	StatusNotFound:       "not_found",
	StatusNoCustom:       "no_custom",
	StatusCapacity:       "capacity_exceeded",
	StatusChannelUnset:   "channel_unset",
	StatusNotConfigured:  "not_configured",
	StatusFailure:        "failure",
	StatusUnknownCommand: "unknown_command",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Request is a parsed inbound command.
type Request struct {
	GuildID string
	Name    string
	Args    string
}

// ListEntry is one row of a list response.
type ListEntry struct {
	ID   int64
	Text string
}

// Delivery is content that must be posted to the guild's delivery channel.
type Delivery struct {
	ChannelID string
	// Content is the message text with the guild's ping already applied.
	Content string
	Poll    *content.Poll
	Kind    string
	Source  string
	ItemID  int64
}

// Response is what a handler hands back for rendering. Text is always a
// reply to the invoker; Deliver, when set, goes to the delivery channel.
type Response struct {
	Status  Status
	Text    string
	Title   string
	Detail  string
	Entries []ListEntry
	Deliver *Delivery
	Err     error
}

func reply(status Status, text string) Response {
	return Response{Status: status, Text: text}
}

func failure(err error) Response {
	return Response{Status: StatusFailure, Text: msgFailure, Err: err}
}
