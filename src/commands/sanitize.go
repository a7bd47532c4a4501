package commands

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const zeroWidthSpace = "\u200b"

var massMention = strings.NewReplacer(
	"@everyone", "@"+zeroWidthSpace+"everyone",
	"@here", "@"+zeroWidthSpace+"here",
)

// Sanitizer cleans user submissions before they are stored.
type Sanitizer func(string) string

// NewSanitizer strips markup and defuses @everyone/@here so a stored
// submission cannot ping the whole guild when it is delivered later.
func NewSanitizer() Sanitizer {
	policy := bluemonday.StrictPolicy()
	return func(s string) string {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			line = html.UnescapeString(policy.Sanitize(line))
			lines[i] = strings.TrimSpace(massMention.Replace(line))
		}
		return strings.Join(lines, "\n")
	}
}
