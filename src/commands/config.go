package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/stake-plus/qotd/src/guild"
)

func (r *Router) help(ctx context.Context, req Request) Response {
	prefix := r.deps.Prefix
	lines := []string{
		fmt.Sprintf("**Current command prefix:** %s", prefix),
		"**qotd** - Sends a random question of the day!",
		"**custom_qotd <Optional: id>** - Sends a question of the day from the list of custom questions!",
		"**set_channel <channel>** - Sets which channel is used for questions of the day.",
		"**channel** - Shows which channel is currently used for questions of the day.",
		"**submit_qotd <question>** - Submit a custom question.",
		"**delete_question <id>** - Deletes the specified question from the list of questions.",
		"**list_qotd** - Lists all custom questions saved for the server.",
		"**poll** - Sends a random poll of the day!",
		"**custom_poll <Optional: id>** - Sends a poll from the list of custom polls!",
		"**submit_poll** - Submit a custom poll: question and two options on separate lines.",
		"**delete_poll <id>** - Deletes the specified poll.",
		"**list_polls** - Lists all custom polls saved for the server.",
		"**ping_role <0 (default)/1/<role>>** - Sets the ping setting for question of the day.",
		"**help** - Brings up this message!",
	}
	return Response{Status: StatusOK, Title: "Help", Detail: strings.Join(lines, "\n")}
}

func (r *Router) setChannel(ctx context.Context, req Request) Response {
	channelID, ok := ParseChannelRef(req.Args)
	if !ok {
		return reply(StatusInvalid, msgChannelInvalid)
	}
	if r.deps.Directory != nil {
		found, err := r.deps.Directory.ChannelInGuild(ctx, req.GuildID, channelID)
		if err != nil {
			return failure(err)
		}
		if !found {
			return reply(StatusNotInGuild, msgChannelNotFound)
		}
	}
	if err := r.deps.Config.SetChannel(ctx, req.GuildID, channelID); err != nil {
		return fromError(err)
	}
	return reply(StatusOK, msgChannelSet)
}

func (r *Router) channel(ctx context.Context, req Request) Response {
	ch, ok, err := r.deps.Config.Channel(ctx, req.GuildID)
	if err != nil {
		return fromError(err)
	}
	if !ok {
		return reply(StatusChannelUnset, msgChannelUnset)
	}
	return reply(StatusOK, fmt.Sprintf("Channel is set to <#%s>", ch))
}

func (r *Router) pingRole(ctx context.Context, req Request) Response {
	arg := strings.TrimSpace(req.Args)
	if arg == "" {
		current, err := r.deps.Config.MentionPolicy(ctx, req.GuildID)
		if err != nil {
			return fromError(err)
		}
		return Response{
			Status: StatusOK,
			Text: "Use this command to set the role to be pinged when posting a qotd\n" +
				"Current setting is " + current.Display(),
			Title:  msgPingHelpTitle,
			Detail: msgPingHelpOptions,
		}
	}

	var policy guild.MentionPolicy
	switch arg {
	case "0":
		policy = guild.NoMention()
	case "1":
		policy = guild.EveryoneMention()
	default:
		roleID, ok := ParseRoleRef(arg)
		if !ok {
			return reply(StatusInvalid, msgRoleInvalid)
		}
		if r.deps.Directory != nil {
			found, err := r.deps.Directory.RoleInGuild(ctx, req.GuildID, roleID)
			if err != nil {
				return failure(err)
			}
			if !found {
				return reply(StatusNotInGuild, msgRoleInvalid)
			}
		}
		policy = guild.RoleMention(roleID)
	}
	if err := r.deps.Config.SetMentionPolicy(ctx, req.GuildID, policy); err != nil {
		return fromError(err)
	}
	return reply(StatusOK, msgPingUpdated)
}
