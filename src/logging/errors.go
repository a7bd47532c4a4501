package logging

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// IsRateLimit reports whether err is an HTTP 429 from Discord.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	if status(err) == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429")
}

// IsTransient reports whether a send is worth retrying.
func IsTransient(err error) bool {
	if IsRateLimit(err) {
		return true
	}
	code := status(err)
	return code >= 500 && code <= 599
}

func status(err error) int {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		return rest.Response.StatusCode
	}
	return 0
}
