package qotd

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/stake-plus/qotd/src/cache"
	"github.com/stake-plus/qotd/src/commands"
	"go.uber.org/zap"
)

const (
	msgNoPermission = "You don't have permission to use this command."
	msgSendFailed   = "Something went wrong!"

	replyTimeout = 5 * time.Second
)

// Sender posts messages to Discord.
type Sender interface {
	Send(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
	React(ctx context.Context, channelID, messageID, emoji string) error
}

// DeliveryPublisher records delivered items.
type DeliveryPublisher interface {
	PublishDelivery(ctx context.Context, d cache.Delivery) error
}

// Inbound is a guild message that may carry a command.
type Inbound struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	Content   string
	Member    *discordgo.Member
}

// Handler turns inbound messages into router calls and renders the results.
type Handler struct {
	Router    *commands.Router
	Sender    Sender
	Publisher DeliveryPublisher
	Log       *zap.Logger
	Prefix    string
	Timeout   time.Duration
	// Authorize gates every recognised command. Nil allows everyone.
	Authorize func(in Inbound) bool
}

// Handle processes one message. Messages without the prefix or with an
// unknown command are ignored.
func (h *Handler) Handle(ctx context.Context, in Inbound) {
	if in.GuildID == "" {
		return
	}
	text, ok := stripPrefix(in.Content, h.Prefix)
	if !ok {
		return
	}
	name, args := commands.SplitCommand(text)
	if !h.Router.Has(name) {
		return
	}

	requestID := uuid.NewString()
	log := h.logger().With(
		zap.String("request_id", requestID),
		zap.String("guild_id", in.GuildID),
		zap.String("command", name),
	)

	if h.Authorize != nil && !h.Authorize(in) {
		log.Info("qotd: command rejected, missing admin role", zap.String("user_id", in.AuthorID))
		h.sendAll(ctx, log, in.ChannelID, buildReplies(in, commands.Response{Text: msgNoPermission}))
		return
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp := h.Router.Handle(cmdCtx, commands.Request{GuildID: in.GuildID, Name: name, Args: args})
	logResult(log, resp, time.Since(start))

	if resp.Deliver != nil {
		if err := h.deliver(cmdCtx, log, in, requestID, resp.Deliver); err != nil {
			log.Error("qotd: delivery failed", zap.String("channel_id", resp.Deliver.ChannelID), zap.Error(err))
			resp = commands.Response{Status: commands.StatusFailure, Text: msgSendFailed}
		}
	}
	// cmdCtx may already be spent by a stalled store call.
	replyCtx, cancelReply := context.WithTimeout(ctx, replyTimeout)
	defer cancelReply()
	h.sendAll(replyCtx, log, in.ChannelID, buildReplies(in, resp))
}

func (h *Handler) deliver(ctx context.Context, log *zap.Logger, in Inbound, requestID string, d *commands.Delivery) error {
	msg, err := h.Sender.Send(ctx, d.ChannelID, buildDelivery(d))
	if err != nil {
		return err
	}
	if d.Poll != nil && msg != nil {
		for _, emoji := range pollReactions {
			if err := h.Sender.React(ctx, d.ChannelID, msg.ID, emoji); err != nil {
				log.Warn("qotd: failed to add poll reaction", zap.String("emoji", emoji), zap.Error(err))
			}
		}
	}
	if h.Publisher != nil {
		event := cache.Delivery{
			RequestID: requestID,
			GuildID:   in.GuildID,
			ChannelID: d.ChannelID,
			Kind:      d.Kind,
			Source:    d.Source,
			ItemID:    d.ItemID,
		}
		if err := h.Publisher.PublishDelivery(ctx, event); err != nil {
			log.Warn("qotd: failed to publish delivery event", zap.Error(err))
		}
	}
	return nil
}

func (h *Handler) sendAll(ctx context.Context, log *zap.Logger, channelID string, msgs []*discordgo.MessageSend) {
	for _, msg := range msgs {
		if _, err := h.Sender.Send(ctx, channelID, msg); err != nil {
			log.Warn("qotd: failed to send reply", zap.Error(err))
			return
		}
	}
}

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

func logResult(log *zap.Logger, resp commands.Response, elapsed time.Duration) {
	fields := []zap.Field{zap.Stringer("status", resp.Status), zap.Duration("elapsed", elapsed)}
	if resp.Err != nil {
		fields = append(fields, zap.Error(resp.Err))
	}
	switch resp.Status {
	case commands.StatusNotConfigured:
		log.Error("qotd: curated pool is empty", fields...)
	case commands.StatusFailure:
		log.Error("qotd: command failed", fields...)
	case commands.StatusOK:
		log.Info("qotd: command handled", fields...)
	default:
		log.Debug("qotd: command rejected", fields...)
	}
}

func stripPrefix(content, prefix string) (string, bool) {
	content = strings.TrimSpace(content)
	if prefix == "" || len(content) < len(prefix) {
		return "", false
	}
	if !strings.EqualFold(content[:len(prefix)], prefix) {
		return "", false
	}
	return content[len(prefix):], true
}
