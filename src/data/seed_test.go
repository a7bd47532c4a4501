package data

import (
	"context"
	"strings"
	"testing"

	"github.com/stake-plus/qotd/src/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
questions:
  - text: "What is your favourite book?"
  - text: "Retired question"
    active: false
polls:
  - prompt: "Cats or dogs?"
    options: ["🐱", "🐶"]
`

func TestSeedIsRepeatable(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	f, err := ParseSeed([]byte(seedYAML))
	require.NoError(t, err)

	res, err := Seed(ctx, db, f)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{QuestionsAdded: 2, PollsAdded: 1}, res)

	res, err = Seed(ctx, db, f)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{QuestionsSkipped: 2, PollsSkipped: 1}, res)

	questions, err := ListQuestions(ctx, db)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.True(t, questions[0].InUse)
	assert.False(t, questions[1].InUse)
}

func TestParseSeedRejectsBadPolls(t *testing.T) {
	_, err := ParseSeed([]byte("polls:\n  - prompt: x\n    options: [a]\n"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("questions:\n  - text: \"\"\n"))
	assert.Error(t, err)

	long := strings.Repeat("x", content.MaxPollOption+1)
	_, err = ParseSeed([]byte("polls:\n  - prompt: x\n    options: [a, " + long + "]\n"))
	assert.True(t, content.IsPollTooLong(err))
}
