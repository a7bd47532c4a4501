package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/qotd/src/guild"
)

// Guilds exposes per-guild delivery settings read-only.
type Guilds struct {
	store *guild.ConfigStore
}

type guildConfigJSON struct {
	GuildID   string `json:"guildId"`
	ChannelID string `json:"channelId,omitempty"`
	Mention   string `json:"mention"`
}

func (h Guilds) Config(c *gin.Context) {
	guildID := c.Param("id")
	ctx := c.Request.Context()

	ch, _, err := h.store.Channel(ctx, guildID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load guild settings"})
		return
	}
	policy, err := h.store.MentionPolicy(ctx, guildID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load guild settings"})
		return
	}
	c.JSON(http.StatusOK, guildConfigJSON{GuildID: guildID, ChannelID: ch, Mention: policy.String()})
}
