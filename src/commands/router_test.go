package commands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stake-plus/qotd/src/content"
	"github.com/stake-plus/qotd/src/guild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	channels map[string]string
	roles    map[string]string
	err      error
}

func (d fakeDirectory) ChannelInGuild(ctx context.Context, guildID, channelID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.channels[channelID] == guildID, nil
}

func (d fakeDirectory) RoleInGuild(ctx context.Context, guildID, roleID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.roles[roleID] == guildID, nil
}

type fixture struct {
	router    *Router
	config    *guild.ConfigStore
	questions *content.MemoryBackend[string]
	polls     *content.MemoryBackend[content.Poll]
}

func first(int) int { return 0 }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		config:    guild.NewConfigStore(guild.NewMemoryBackend()),
		questions: content.NewMemoryBackend[string](),
		polls:     content.NewMemoryBackend[content.Poll](),
	}
	f.router = NewRouter(Deps{
		Config:    f.config,
		Questions: content.NewQuestions(f.questions, content.WithPicker[string](first)),
		Polls:     content.NewPolls(f.polls, content.WithPicker[content.Poll](first)),
		Directory: fakeDirectory{
			channels: map[string]string{"100": "g1", "200": "g2"},
			roles:    map[string]string{"555": "g1"},
		},
		Prefix: "q!",
	})
	return f
}

func (f *fixture) run(guildID, text string) Response {
	name, args := SplitCommand(text)
	return f.router.Handle(context.Background(), Request{GuildID: guildID, Name: name, Args: args})
}

func TestSetChannel(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "channel")
	assert.Equal(t, StatusChannelUnset, resp.Status)
	assert.Equal(t, "Channel not set!", resp.Text)

	resp = f.run("g1", "set_channel nonsense")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.Equal(t, "Not a valid channel!", resp.Text)

	resp = f.run("g1", "set_channel <#200>")
	assert.Equal(t, StatusNotInGuild, resp.Status)
	assert.Equal(t, "Channel not found on this server!", resp.Text)

	resp = f.run("g1", "set_channel <#100>")
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "Channel set!", resp.Text)

	resp = f.run("g1", "channel")
	assert.Equal(t, "Channel is set to <#100>", resp.Text)

	resp = f.run("g2", "channel")
	assert.Equal(t, StatusChannelUnset, resp.Status)
}

func TestPingRole(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "ping_role")
	assert.Equal(t, StatusOK, resp.Status)
	assert.True(t, strings.HasSuffix(resp.Text, "Current setting is 0"))
	assert.Equal(t, "Parameters", resp.Title)

	resp = f.run("g1", "ping_role <@&555>")
	assert.Equal(t, "Ping role updated!", resp.Text)
	p, err := f.config.MentionPolicy(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, guild.RoleMention("555"), p)

	resp = f.run("g1", "ping_role 1")
	assert.Equal(t, "Ping role updated!", resp.Text)
	resp = f.run("g1", "ping_role")
	assert.True(t, strings.HasSuffix(resp.Text, "Current setting is 1"))

	resp = f.run("g1", "ping_role admins")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.Equal(t, "Not a valid role!", resp.Text)

	resp = f.run("g1", "ping_role <@&999>")
	assert.Equal(t, StatusNotInGuild, resp.Status)
}

func TestQOTDDelivery(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "qotd")
	assert.Equal(t, StatusChannelUnset, resp.Status)
	assert.Nil(t, resp.Deliver)

	f.run("g1", "set_channel 100")
	resp = f.run("g1", "qotd")
	assert.Equal(t, StatusNotConfigured, resp.Status)
	assert.ErrorIs(t, resp.Err, content.ErrEmptyPool)

	f.questions.AddCurated("What is your favourite colour?", true)
	f.run("g1", "ping_role 555")
	resp = f.run("g1", "qotd")
	require.Equal(t, StatusOK, resp.Status)
	require.NotNil(t, resp.Deliver)
	assert.Equal(t, "100", resp.Deliver.ChannelID)
	assert.Equal(t, "<@&555> What is your favourite colour?", resp.Deliver.Content)
	assert.Equal(t, SourceCurated, resp.Deliver.Source)
}

func TestCustomQuestions(t *testing.T) {
	f := newFixture(t)
	f.run("g1", "set_channel 100")

	resp := f.run("g1", "custom_qotd")
	assert.Equal(t, StatusNoCustom, resp.Status)
	assert.Equal(t, "No custom questions found!", resp.Text)

	resp = f.run("g1", "custom_qotd abc")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.Equal(t, "Not a valid question ID", resp.Text)

	for _, q := range []string{"one?", "two?", "three?"} {
		resp = f.run("g1", "submit_qotd "+q)
		require.Equal(t, StatusOK, resp.Status, resp.Text)
	}
	assert.Equal(t, "Question Submitted (ID 3)", resp.Text)

	resp = f.run("g1", "custom_qotd 2")
	require.NotNil(t, resp.Deliver)
	assert.Equal(t, "two?", resp.Deliver.Content)
	assert.Equal(t, int64(2), resp.Deliver.ItemID)

	resp = f.run("g2", "custom_qotd 2")
	assert.Equal(t, StatusChannelUnset, resp.Status)
	f.run("g2", "set_channel 200")
	resp = f.run("g2", "custom_qotd 2")
	assert.Equal(t, StatusNotFound, resp.Status)
	assert.Equal(t, "Question does not exist!", resp.Text)

	resp = f.run("g2", "delete_question 2")
	assert.Equal(t, "Question not found!", resp.Text)
	resp = f.run("g1", "delete_question 2")
	assert.Equal(t, "Question deleted!", resp.Text)
	resp = f.run("g1", "delete_question x")
	assert.Equal(t, "Please enter a valid ID!", resp.Text)

	resp = f.run("g1", "list_qotd")
	want := []ListEntry{{ID: 1, Text: "one?"}, {ID: 3, Text: "three?"}}
	if diff := cmp.Diff(want, resp.Entries); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	resp = f.run("g1", "delete_question")
	assert.Equal(t, "Please specify the ID of question", resp.Text)
	assert.Len(t, resp.Entries, 2)
}

func TestSubmitQuestionSanitizesAndCaps(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "submit_qotd <b>@everyone</b> hello?")
	require.Equal(t, StatusOK, resp.Status)
	q, ok, err := content.NewQuestions(f.questions).CustomByID(context.Background(), "g1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "@\u200beveryone hello?", q)

	resp = f.run("g1", "submit_qotd <i></i>")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.Equal(t, "Question not accepted", resp.Text)

	for i := 1; i < content.CustomLimit; i++ {
		_, err := f.questions.InsertCustom(context.Background(), "g1", "filler")
		require.NoError(t, err)
	}
	resp = f.run("g1", "submit_qotd one too many")
	assert.Equal(t, StatusCapacity, resp.Status)
	assert.Equal(t, "Too many custom questions saved! Please delete some before adding more!", resp.Text)
}

func TestSubmitPoll(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "submit_poll Cats or dogs?\nCats")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.Equal(t, "Custom poll format", resp.Title)
	assert.Equal(t, "submit_poll Question\nOption1\nOption2", resp.Detail)
	assert.True(t, content.IsValidation(resp.Err))
	n, err := content.NewPolls(f.polls).CountCustom(context.Background(), "g1")
	require.NoError(t, err)
	assert.Zero(t, n)

	resp = f.run("g1", "submit_poll Cats or dogs?\nCats\nDogs")
	require.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "Poll Submitted (ID 1)", resp.Text)

	f.run("g1", "set_channel 100")
	f.run("g1", "ping_role 1")
	resp = f.run("g1", "custom_poll")
	require.NotNil(t, resp.Deliver)
	assert.Equal(t, "@everyone Poll of the day!", resp.Deliver.Content)
	assert.Equal(t, content.Poll{Prompt: "Cats or dogs?", OptionA: "Cats", OptionB: "Dogs"}, *resp.Deliver.Poll)

	resp = f.run("g1", "list_polls")
	assert.Equal(t, []ListEntry{{ID: 1, Text: "Cats or dogs?"}}, resp.Entries)

	resp = f.run("g2", "delete_poll 1")
	assert.Equal(t, "Poll not found!", resp.Text)
	resp = f.run("g1", "delete_poll 1")
	assert.Equal(t, "Poll deleted!", resp.Text)
	resp = f.run("g1", "custom_poll")
	assert.Equal(t, "No custom polls saved!\nAdd some with submit_poll!", resp.Text)
	resp = f.run("g1", "list_polls")
	assert.Equal(t, "No custom polls found!", resp.Text)
}

func TestSubmitPollTooLong(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "submit_poll Cats or dogs?\n"+strings.Repeat("x", 300)+"\nDogs")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.Equal(t, "Poll is too long! Questions are limited to 256 characters and options to 255.", resp.Text)
	assert.True(t, content.IsPollTooLong(resp.Err))

	resp = f.run("g1", "submit_poll "+strings.Repeat("q", 257)+"\nCats\nDogs")
	assert.Equal(t, StatusInvalid, resp.Status)
	assert.True(t, content.IsPollTooLong(resp.Err))

	n, err := content.NewPolls(f.polls).CountCustom(context.Background(), "g1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCuratedPoll(t *testing.T) {
	f := newFixture(t)
	f.polls.AddCurated(content.Poll{Prompt: "Tea or coffee?", OptionA: "Tea", OptionB: "Coffee"}, true)
	f.run("g1", "set_channel 100")

	resp := f.run("g1", "poll")
	require.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, "Poll of the day!", resp.Deliver.Content)
	assert.Equal(t, "Tea or coffee?", resp.Deliver.Poll.Prompt)
	assert.Equal(t, KindPoll, resp.Deliver.Kind)
}

type failingQuestions struct {
	*content.MemoryBackend[string]
}

func (failingQuestions) ListCustom(ctx context.Context, owner string) ([]content.Entry[string], error) {
	return nil, errors.New("connection reset")
}

func TestStoreFailureIsGeneric(t *testing.T) {
	r := NewRouter(Deps{
		Config:    guild.NewConfigStore(guild.NewMemoryBackend()),
		Questions: content.NewQuestions(failingQuestions{content.NewMemoryBackend[string]()}),
		Polls:     content.NewPolls(content.NewMemoryBackend[content.Poll]()),
	})
	resp := r.Handle(context.Background(), Request{GuildID: "g1", Name: CmdListQOTD})
	assert.Equal(t, StatusFailure, resp.Status)
	assert.Equal(t, "Something went wrong!", resp.Text)
	var se *content.StoreError
	assert.ErrorAs(t, resp.Err, &se)
}

func TestUnknownCommandAndHelp(t *testing.T) {
	f := newFixture(t)

	resp := f.run("g1", "dance")
	assert.Equal(t, StatusUnknownCommand, resp.Status)
	assert.False(t, f.router.Has("dance"))

	resp = f.run("g1", "HELP")
	assert.Equal(t, StatusOK, resp.Status)
	assert.Contains(t, resp.Detail, "**Current command prefix:** q!")
	assert.Contains(t, f.router.Commands(), CmdDeletePoll)
}
