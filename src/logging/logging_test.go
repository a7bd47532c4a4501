package logging

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	log, err := New("debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = New("")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))

	_, err = New("loud")
	assert.Error(t, err)
}

func TestErrorClassification(t *testing.T) {
	tooMany := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusTooManyRequests}}
	badGateway := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusBadGateway}}
	forbidden := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}

	assert.False(t, IsRateLimit(nil))
	assert.True(t, IsRateLimit(fmt.Errorf("send: %w", tooMany)))
	assert.True(t, IsRateLimit(errors.New("HTTP 429 Too Many Requests")))
	assert.False(t, IsRateLimit(forbidden))

	assert.True(t, IsTransient(badGateway))
	assert.True(t, IsTransient(tooMany))
	assert.False(t, IsTransient(forbidden))
	assert.False(t, IsTransient(errors.New("boom")))
}
