package commands

import (
	"testing"

	"github.com/stake-plus/qotd/src/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRefs(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"<#123>", "123", true},
		{" 456 ", "456", true},
		{"<#abc>", "", false},
		{"000", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseChannelRef(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	id, ok := ParseRoleRef("<@&77>")
	assert.True(t, ok)
	assert.Equal(t, "77", id)
	_, ok = ParseRoleRef("<#77>")
	assert.False(t, ok)
}

func TestParseItemID(t *testing.T) {
	id, err := ParseItemID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseItemID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), *id)

	for _, bad := range []string{"0", "-3", "x1", "1.5"} {
		_, err := ParseItemID(bad)
		assert.True(t, content.IsValidation(err), bad)
	}
}

func TestSplitCommand(t *testing.T) {
	name, args := SplitCommand("Submit_Poll Cats or dogs?\nCats\nDogs\n")
	assert.Equal(t, "submit_poll", name)
	assert.Equal(t, "Cats or dogs?\nCats\nDogs", args)

	name, args = SplitCommand("submit_poll\nQ\nA\nB")
	assert.Equal(t, "submit_poll", name)
	assert.Equal(t, "Q\nA\nB", args)

	name, args = SplitCommand("qotd")
	assert.Equal(t, "qotd", name)
	assert.Empty(t, args)
}
