package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stake-plus/qotd/src/content"
)

const (
	KindQuestion = "question"
	KindPoll     = "poll"

	SourceCurated = "curated"
	SourceCustom  = "custom"
)

func (r *Router) qotd(ctx context.Context, req Request) Response {
	ch, policy, stop := r.deliveryChannel(ctx, req.GuildID)
	if stop != nil {
		return *stop
	}
	question, err := r.questionSel.Curated(ctx)
	if err != nil {
		return fromError(err)
	}
	return Response{
		Status: StatusOK,
		Deliver: &Delivery{
			ChannelID: ch,
			Content:   r.deps.Formatter.Format(policy, question),
			Kind:      KindQuestion,
			Source:    SourceCurated,
		},
	}
}

func (r *Router) customQOTD(ctx context.Context, req Request) Response {
	id, err := ParseItemID(req.Args)
	if err != nil {
		return Response{Status: StatusInvalid, Text: msgQuestionInvalidID, Err: err}
	}
	ch, policy, stop := r.deliveryChannel(ctx, req.GuildID)
	if stop != nil {
		return *stop
	}
	sel, err := r.questionSel.Custom(ctx, req.GuildID, id)
	if err != nil {
		return fromError(err)
	}
	switch sel.Outcome {
	case content.OutcomeNotFound:
		return reply(StatusNotFound, msgQuestionNotFound)
	case content.OutcomeNoCustom:
		return reply(StatusNoCustom, msgNoCustomQuestions)
	}
	return Response{
		Status: StatusOK,
		Deliver: &Delivery{
			ChannelID: ch,
			Content:   r.deps.Formatter.Format(policy, sel.Item),
			Kind:      KindQuestion,
			Source:    SourceCustom,
			ItemID:    sel.ID,
		},
	}
}

func (r *Router) submitQOTD(ctx context.Context, req Request) Response {
	body := strings.TrimSpace(r.deps.Sanitize(req.Args))
	if body == "" {
		return reply(StatusInvalid, msgQuestionRejected)
	}
	id, err := r.deps.Questions.SubmitCustom(ctx, req.GuildID, body)
	switch {
	case err == nil:
		return reply(StatusOK, fmt.Sprintf("Question Submitted (ID %d)", id))
	case errors.Is(err, content.ErrCapacityExceeded):
		return Response{Status: StatusCapacity, Text: msgQuestionCapacity, Err: err}
	case content.IsValidation(err):
		return Response{Status: StatusInvalid, Text: msgQuestionRejected, Err: err}
	default:
		return failure(err)
	}
}

func (r *Router) deleteQuestion(ctx context.Context, req Request) Response {
	if strings.TrimSpace(req.Args) == "" {
		resp := r.listQOTD(ctx, req)
		if resp.Status == StatusOK {
			resp.Text = msgSpecifyQuestionID
		}
		return resp
	}
	id, err := ParseItemID(req.Args)
	if err != nil {
		return Response{Status: StatusInvalid, Text: msgEnterValidID, Err: err}
	}
	outcome, err := r.deps.Questions.DeleteCustom(ctx, req.GuildID, *id)
	if err != nil {
		return fromError(err)
	}
	if outcome != content.Deleted {
		return reply(StatusNotFound, msgQuestionDelMissing)
	}
	return reply(StatusOK, msgQuestionDeleted)
}

func (r *Router) listQOTD(ctx context.Context, req Request) Response {
	entries, err := r.deps.Questions.ListCustom(ctx, req.GuildID)
	if err != nil {
		return fromError(err)
	}
	if len(entries) == 0 {
		return reply(StatusNoCustom, msgNoCustomQuestions)
	}
	out := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, ListEntry{ID: e.ID, Text: e.Item})
	}
	return Response{Status: StatusOK, Text: msgQuestionList, Entries: out}
}
