package content

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectorCustom(t *testing.T) {
	ctx := context.Background()
	repo := NewQuestions(NewMemoryBackend[string](), WithPicker[string](func(int) int { return 0 }))
	sel := NewSelector(repo)

	res, err := sel.Custom(ctx, "g1", nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoCustom, res.Outcome)

	missing := int64(42)
	res, err = sel.Custom(ctx, "g1", &missing)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)

	id, err := repo.SubmitCustom(ctx, "g1", "What did you learn today?")
	require.NoError(t, err)

	res, err = sel.Custom(ctx, "g1", &id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSelected, res.Outcome)
	assert.Equal(t, "What did you learn today?", res.Item)
	assert.Equal(t, id, res.ID)

	res, err = sel.Custom(ctx, "g1", nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSelected, res.Outcome)

	res, err = sel.Custom(ctx, "g2", &id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, res.Outcome)
}

func TestSelectorCuratedEmptyPool(t *testing.T) {
	sel := NewSelector(NewPolls(NewMemoryBackend[Poll]()))
	_, err := sel.Curated(context.Background())
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestParsePoll(t *testing.T) {
	p, err := ParsePoll("Cats or dogs?\n🐱\n🐶")
	require.NoError(t, err)
	assert.Equal(t, Poll{Prompt: "Cats or dogs?", OptionA: "🐱", OptionB: "🐶"}, p)

	_, err = ParsePoll("Cats or dogs?\n🐱")
	assert.True(t, IsValidation(err))

	_, err = ParsePoll("Cats or dogs?\n\n🐶")
	assert.True(t, IsValidation(err))

	_, err = ParsePoll("a\nb\nc\nd")
	assert.True(t, IsValidation(err))
	assert.False(t, IsPollTooLong(err))
}

func TestParsePollLengthLimits(t *testing.T) {
	_, err := ParsePoll("Q?\n" + strings.Repeat("x", 300) + "\nB")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.True(t, IsPollTooLong(err))

	_, err = ParsePoll(strings.Repeat("q", MaxPollPrompt+1) + "\nA\nB")
	assert.True(t, IsPollTooLong(err))

	// Runes, not bytes.
	p, err := ParsePoll(strings.Repeat("é", MaxPollPrompt) + "\n" + strings.Repeat("🐱", MaxPollOption) + "\nB")
	require.NoError(t, err)
	assert.Equal(t, MaxPollOption, utf8.RuneCountInString(p.OptionA))
}
