package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stake-plus/qotd/src/content"
)

func pollDelivery(ch, body string, poll content.Poll, source string, id int64) Response {
	p := poll
	return Response{
		Status: StatusOK,
		Deliver: &Delivery{
			ChannelID: ch,
			Content:   body,
			Poll:      &p,
			Kind:      KindPoll,
			Source:    source,
			ItemID:    id,
		},
	}
}

func (r *Router) poll(ctx context.Context, req Request) Response {
	ch, policy, stop := r.deliveryChannel(ctx, req.GuildID)
	if stop != nil {
		return *stop
	}
	poll, err := r.pollSel.Curated(ctx)
	if err != nil {
		return fromError(err)
	}
	return pollDelivery(ch, r.deps.Formatter.Format(policy, msgPollHeader), poll, SourceCurated, 0)
}

func (r *Router) customPoll(ctx context.Context, req Request) Response {
	id, err := ParseItemID(req.Args)
	if err != nil {
		return Response{Status: StatusInvalid, Text: msgPollInvalidID, Err: err}
	}
	ch, policy, stop := r.deliveryChannel(ctx, req.GuildID)
	if stop != nil {
		return *stop
	}
	sel, err := r.pollSel.Custom(ctx, req.GuildID, id)
	if err != nil {
		return fromError(err)
	}
	switch sel.Outcome {
	case content.OutcomeNotFound:
		return reply(StatusNotFound, msgPollNotFound)
	case content.OutcomeNoCustom:
		return reply(StatusNoCustom, msgNoCustomPolls)
	}
	return pollDelivery(ch, r.deps.Formatter.Format(policy, msgPollHeader), sel.Item, SourceCustom, sel.ID)
}

func pollFormatHelp(err error) Response {
	if content.IsPollTooLong(err) {
		return Response{Status: StatusInvalid, Text: msgPollTooLong, Err: err}
	}
	return Response{
		Status: StatusInvalid,
		Text:   msgPollFormat,
		Title:  msgPollFormatTitle,
		Detail: msgPollFormatBody,
		Err:    err,
	}
}

func (r *Router) submitPoll(ctx context.Context, req Request) Response {
	poll, err := content.ParsePoll(r.deps.Sanitize(req.Args))
	if err != nil {
		return pollFormatHelp(err)
	}
	id, err := r.deps.Polls.SubmitCustom(ctx, req.GuildID, poll)
	switch {
	case err == nil:
		return reply(StatusOK, fmt.Sprintf("Poll Submitted (ID %d)", id))
	case errors.Is(err, content.ErrCapacityExceeded):
		return Response{Status: StatusCapacity, Text: msgPollCapacity, Err: err}
	case content.IsValidation(err):
		return pollFormatHelp(err)
	default:
		return failure(err)
	}
}

func (r *Router) deletePoll(ctx context.Context, req Request) Response {
	if strings.TrimSpace(req.Args) == "" {
		resp := r.listPolls(ctx, req)
		if resp.Status == StatusOK {
			resp.Text = msgSpecifyPollID
		}
		return resp
	}
	id, err := ParseItemID(req.Args)
	if err != nil {
		return Response{Status: StatusInvalid, Text: msgEnterValidID, Err: err}
	}
	outcome, err := r.deps.Polls.DeleteCustom(ctx, req.GuildID, *id)
	if err != nil {
		return fromError(err)
	}
	if outcome != content.Deleted {
		return reply(StatusNotFound, msgPollDelMissing)
	}
	return reply(StatusOK, msgPollDeleted)
}

func (r *Router) listPolls(ctx context.Context, req Request) Response {
	entries, err := r.deps.Polls.ListCustom(ctx, req.GuildID)
	if err != nil {
		return fromError(err)
	}
	if len(entries) == 0 {
		return reply(StatusNoCustom, msgNoPollsListed)
	}
	out := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ListEntry{ID: e.ID, Text: e.Item.Prompt})
	}
	return Response{Status: StatusOK, Text: msgPollList, Entries: out}
}
