// Package commands maps bot commands onto guild settings and content pools.
// Handlers validate arguments, call the stores and return plain Responses;
// they never talk to Discord and never log.
package commands

import (
	"context"
	"errors"
	"sort"

	"github.com/stake-plus/qotd/src/content"
	"github.com/stake-plus/qotd/src/guild"
)

// Command names as typed after the prefix.
const (
	CmdHelp           = "help"
	CmdSetChannel     = "set_channel"
	CmdChannel        = "channel"
	CmdQOTD           = "qotd"
	CmdCustomQOTD     = "custom_qotd"
	CmdSubmitQOTD     = "submit_qotd"
	CmdDeleteQuestion = "delete_question"
	CmdListQOTD       = "list_qotd"
	CmdPingRole       = "ping_role"
	CmdPoll           = "poll"
	CmdSubmitPoll     = "submit_poll"
	CmdCustomPoll     = "custom_poll"
	CmdListPolls      = "list_polls"
	CmdDeletePoll     = "delete_poll"
)

// Directory answers whether ids belong to a guild.
type Directory interface {
	ChannelInGuild(ctx context.Context, guildID, channelID string) (bool, error)
	RoleInGuild(ctx context.Context, guildID, roleID string) (bool, error)
}

// Handler serves one command.
type Handler func(ctx context.Context, req Request) Response

// Deps are the stores and collaborators a Router needs.
type Deps struct {
	Config    *guild.ConfigStore
	Questions *content.Repository[string]
	Polls     *content.Repository[content.Poll]
	Directory Directory
	Formatter guild.Formatter
	Sanitize  Sanitizer
	Prefix    string
}

// Router dispatches commands through a table built once in NewRouter.
type Router struct {
	deps        Deps
	questionSel *content.Selector[string]
	pollSel     *content.Selector[content.Poll]
	handlers    map[string]Handler
}

func NewRouter(deps Deps) *Router {
	if deps.Sanitize == nil {
		deps.Sanitize = NewSanitizer()
	}
	if deps.Formatter.RoleTemplate == "" {
		deps.Formatter.RoleTemplate = guild.DiscordRoleTemplate
	}
	r := &Router{
		deps:        deps,
		questionSel: content.NewSelector(deps.Questions),
		pollSel:     content.NewSelector(deps.Polls),
	}
	r.handlers = map[string]Handler{
		CmdHelp:           r.help,
		CmdSetChannel:     r.setChannel,
		CmdChannel:        r.channel,
		CmdPingRole:       r.pingRole,
		CmdQOTD:           r.qotd,
		CmdCustomQOTD:     r.customQOTD,
		CmdSubmitQOTD:     r.submitQOTD,
		CmdDeleteQuestion: r.deleteQuestion,
		CmdListQOTD:       r.listQOTD,
		CmdPoll:           r.poll,
		CmdSubmitPoll:     r.submitPoll,
		CmdCustomPoll:     r.customPoll,
		CmdListPolls:      r.listPolls,
		CmdDeletePoll:     r.deletePoll,
	}
	return r
}

// Handle runs the handler registered for req.Name.
func (r *Router) Handle(ctx context.Context, req Request) Response {
	h, ok := r.handlers[req.Name]
	if !ok {
		return reply(StatusUnknownCommand, "")
	}
	return h(ctx, req)
}

// Has reports whether name is a registered command.
func (r *Router) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Commands lists registered command names in sorted order.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// deliveryChannel resolves the channel and ping policy used for a delivery.
// A non-nil Response means the caller should return it as is.
func (r *Router) deliveryChannel(ctx context.Context, guildID string) (string, guild.MentionPolicy, *Response) {
	ch, ok, err := r.deps.Config.Channel(ctx, guildID)
	if err != nil {
		resp := fromError(err)
		return "", guild.NoMention(), &resp
	}
	if !ok {
		resp := reply(StatusChannelUnset, msgChannelUnset)
		return "", guild.NoMention(), &resp
	}
	policy, err := r.deps.Config.MentionPolicy(ctx, guildID)
	if err != nil {
		resp := fromError(err)
		return "", guild.NoMention(), &resp
	}
	return ch, policy, nil
}

// fromError maps core errors onto responses. Anything unrecognised is a store failure.
func fromError(err error) Response {
	var ve *content.ValidationError
	switch {
	case errors.As(err, &ve):
		return Response{Status: StatusInvalid, Text: msgInvalidRequest, Err: err}
	case errors.Is(err, content.ErrEmptyPool):
		return Response{Status: StatusNotConfigured, Text: msgNotConfigured, Err: err}
	default:
		return failure(err)
	}
}
