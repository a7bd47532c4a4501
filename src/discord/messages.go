package discord

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxDiscordMessageLen = 2000
	SafeChunkLen         = 1900
	MaxEmbedDescription  = 4096
)

// ChunkLines packs lines into messages no longer than limit bytes. A single
// line over the limit is cut on a rune boundary.
func ChunkLines(lines []string, limit int) []string {
	if limit <= 0 {
		limit = SafeChunkLen
	}
	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}
	for _, line := range lines {
		for len(line) > limit {
			flush()
			cut := truncateBytes(line, limit)
			chunks = append(chunks, cut)
			line = line[len(cut):]
		}
		extra := len(line)
		if current.Len() > 0 {
			extra++
		}
		if current.Len()+extra > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

// BuildListMessages renders numbered entries as one or more messages, the
// first addressed to userID.
func BuildListMessages(header string, ids []int64, texts []string, userID string) []string {
	lines := make([]string, 0, len(ids)+1)
	if header != "" {
		lines = append(lines, header)
	}
	for i, id := range ids {
		lines = append(lines, fmt.Sprintf("`%d` %s", id, texts[i]))
	}
	mention := ""
	if userID != "" {
		mention = fmt.Sprintf("<@%s> ", userID)
	}
	chunks := ChunkLines(lines, SafeChunkLen-len(mention))
	if len(chunks) > 0 {
		chunks[0] = mention + chunks[0]
	}
	if len(chunks) > 1 {
		for i := 0; i < len(chunks)-1; i++ {
			chunks[i] += "\n*(continued...)*"
		}
	}
	return chunks
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		_, size := utf8.DecodeRuneInString(s)
		return s[:size]
	}
	return s[:cut]
}
