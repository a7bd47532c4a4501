package qotd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/qotd/src/cache"
	"github.com/stake-plus/qotd/src/commands"
	"github.com/stake-plus/qotd/src/content"
	"github.com/stake-plus/qotd/src/guild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sent struct {
	channelID string
	msg       *discordgo.MessageSend
}

type fakeSender struct {
	mu        sync.Mutex
	sent      []sent
	reactions []string
	failOn    string
}

func (f *fakeSender) Send(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if channelID == f.failOn {
		return nil, errors.New("missing access")
	}
	f.sent = append(f.sent, sent{channelID: channelID, msg: msg})
	return &discordgo.Message{ID: fmt.Sprintf("m%d", len(f.sent)), ChannelID: channelID}, nil
}

func (f *fakeSender) React(ctx context.Context, channelID, messageID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions = append(f.reactions, messageID+":"+emoji)
	return nil
}

type recordingPublisher struct {
	events []cache.Delivery
}

func (p *recordingPublisher) PublishDelivery(ctx context.Context, d cache.Delivery) error {
	p.events = append(p.events, d)
	return nil
}

type harness struct {
	handler   *Handler
	sender    *fakeSender
	publisher *recordingPublisher
	questions *content.MemoryBackend[string]
	polls     *content.MemoryBackend[content.Poll]
	logs      *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	h := &harness{
		sender:    &fakeSender{},
		publisher: &recordingPublisher{},
		questions: content.NewMemoryBackend[string](),
		polls:     content.NewMemoryBackend[content.Poll](),
		logs:      logs,
	}
	router := commands.NewRouter(commands.Deps{
		Config:    guild.NewConfigStore(guild.NewMemoryBackend()),
		Questions: content.NewQuestions(h.questions),
		Polls:     content.NewPolls(h.polls),
		Prefix:    "q!",
	})
	h.handler = &Handler{
		Router:    router,
		Sender:    h.sender,
		Publisher: h.publisher,
		Log:       zap.New(core),
		Prefix:    "q!",
		Authorize: func(in Inbound) bool { return in.AuthorID != "intruder" },
	}
	return h
}

func (h *harness) say(author, text string) {
	h.handler.Handle(context.Background(), Inbound{
		GuildID:   "g1",
		ChannelID: "cmd",
		MessageID: "in1",
		AuthorID:  author,
		Content:   text,
	})
}

func TestHandlerIgnoresNonCommands(t *testing.T) {
	h := newHarness(t)
	h.say("u1", "hello there")
	h.say("u1", "q!dance")
	h.handler.Handle(context.Background(), Inbound{AuthorID: "u1", Content: "q!help"})
	assert.Empty(t, h.sender.sent)
}

func TestHandlerRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	h.say("intruder", "q!set_channel 100")
	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, "<@intruder> You don't have permission to use this command.", h.sender.sent[0].msg.Content)
}

func TestHandlerDeliversQuestion(t *testing.T) {
	h := newHarness(t)
	h.questions.AddCurated("Mountains or beaches?", true)

	h.say("u1", "Q!set_channel 100")
	h.say("u1", "q!ping_role 1")
	h.sender.sent = nil

	h.say("u1", "q!qotd")
	require.Len(t, h.sender.sent, 1)
	got := h.sender.sent[0]
	assert.Equal(t, "100", got.channelID)
	assert.Equal(t, "@everyone Mountains or beaches?", got.msg.Content)

	require.Len(t, h.publisher.events, 1)
	ev := h.publisher.events[0]
	assert.Equal(t, "g1", ev.GuildID)
	assert.Equal(t, commands.KindQuestion, ev.Kind)
	assert.Equal(t, commands.SourceCurated, ev.Source)
	assert.NotEmpty(t, ev.RequestID)
}

func TestHandlerDeliversPollWithReactions(t *testing.T) {
	h := newHarness(t)
	h.say("u1", "q!set_channel 100")
	h.say("u1", "q!submit_poll Cats or dogs?\nCats\nDogs")
	h.sender.sent = nil

	h.say("u1", "q!custom_poll 1")
	require.Len(t, h.sender.sent, 1)
	msg := h.sender.sent[0].msg
	assert.Equal(t, "Poll of the day!", msg.Content)
	require.Len(t, msg.Embeds, 1)
	assert.Equal(t, "Cats or dogs?", msg.Embeds[0].Title)
	assert.Equal(t, []string{"m1:" + emojiFirst, "m1:" + emojiOther}, h.sender.reactions)
}

func TestHandlerLogsEmptyPool(t *testing.T) {
	h := newHarness(t)
	h.say("u1", "q!set_channel 100")
	h.say("u1", "q!poll")

	entries := h.logs.FilterMessage("qotd: curated pool is empty").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	last := h.sender.sent[len(h.sender.sent)-1].msg
	assert.Contains(t, last.Content, "No content is available")
}

func TestHandlerDeliveryFailure(t *testing.T) {
	h := newHarness(t)
	h.questions.AddCurated("Q?", true)
	h.sender.failOn = "100"
	h.say("u1", "q!set_channel 100")
	h.say("u1", "q!qotd")

	last := h.sender.sent[len(h.sender.sent)-1]
	assert.Equal(t, "cmd", last.channelID)
	assert.Equal(t, "<@u1> Something went wrong!", last.msg.Content)
	assert.Empty(t, h.publisher.events)
}

// stallingGuilds blocks every read until the caller gives up.
type stallingGuilds struct{ *guild.MemoryBackend }

func (stallingGuilds) Channel(ctx context.Context, guildID string) (string, bool, error) {
	<-ctx.Done()
	return "", false, ctx.Err()
}

func TestHandlerRepliesAfterCommandTimeout(t *testing.T) {
	h := newHarness(t)
	h.handler.Router = commands.NewRouter(commands.Deps{
		Config:    guild.NewConfigStore(stallingGuilds{guild.NewMemoryBackend()}),
		Questions: content.NewQuestions(h.questions),
		Polls:     content.NewPolls(h.polls),
		Prefix:    "q!",
	})
	h.handler.Timeout = 20 * time.Millisecond
	h.questions.AddCurated("Q?", true)

	h.say("u1", "q!qotd")

	require.Len(t, h.sender.sent, 1)
	assert.Equal(t, "cmd", h.sender.sent[0].channelID)
	assert.Equal(t, "<@u1> Something went wrong!", h.sender.sent[0].msg.Content)
	assert.Len(t, h.logs.FilterMessage("qotd: command failed").All(), 1)
	assert.Empty(t, h.logs.FilterMessage("qotd: failed to send reply").All())
}

func TestHandlerListReply(t *testing.T) {
	h := newHarness(t)
	h.say("u1", "q!submit_qotd first?")
	h.say("u1", "q!submit_qotd second?")
	h.sender.sent = nil

	h.say("u1", "q!list_qotd")
	require.Len(t, h.sender.sent, 1)
	msg := h.sender.sent[0].msg
	assert.True(t, strings.HasPrefix(msg.Content, "<@u1> Here's a list"))
	assert.Contains(t, msg.Content, "`1` first?")
	assert.Contains(t, msg.Content, "`2` second?")
	require.NotNil(t, msg.Reference)
	assert.Equal(t, "in1", msg.Reference.MessageID)
	assert.Equal(t, []string{"u1"}, msg.AllowedMentions.Users)
}

func TestBuildRepliesEmbed(t *testing.T) {
	in := Inbound{AuthorID: "7"}
	msgs := buildReplies(in, commands.Response{
		Status: commands.StatusInvalid,
		Text:   "Follow this format when submitting new polls!",
		Title:  "Custom poll format",
		Detail: "submit_poll Question\nOption1\nOption2",
	})
	require.Len(t, msgs, 1)
	assert.Equal(t, "<@7> Follow this format when submitting new polls!", msgs[0].Content)
	require.Len(t, msgs[0].Embeds, 1)
	assert.Equal(t, "Custom poll format", msgs[0].Embeds[0].Title)

	assert.Empty(t, buildReplies(in, commands.Response{Status: commands.StatusOK}))
}

func TestStripPrefix(t *testing.T) {
	rest, ok := stripPrefix("  Q!qotd", "q!")
	assert.True(t, ok)
	assert.Equal(t, "qotd", rest)
	_, ok = stripPrefix("q", "q!")
	assert.False(t, ok)
}
