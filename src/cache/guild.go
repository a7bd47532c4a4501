package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/qotd/src/guild"
)

const (
	keyPrefix      = "qotd:guild:"
	unsetSentinel  = "unset"
	mentionNone    = "none"
	mentionAll     = "everyone"
	mentionRolePfx = "role:"
)

var _ guild.Backend = (*GuildCache)(nil)

// GuildCache is a read-through cache in front of another guild.Backend.
// Redis failures never fail a request; they are reported to OnError and the
// wrapped backend is used instead.
type GuildCache struct {
	next    guild.Backend
	rdb     *redis.Client
	ttl     time.Duration
	OnError func(op string, err error)
}

func NewGuildCache(next guild.Backend, rdb *redis.Client, ttl time.Duration) *GuildCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &GuildCache{next: next, rdb: rdb, ttl: ttl}
}

func channelKey(guildID string) string { return keyPrefix + guildID + ":channel" }
func mentionKey(guildID string) string { return keyPrefix + guildID + ":mention" }

func (c *GuildCache) UpsertChannel(ctx context.Context, guildID, channelID string) error {
	if err := c.next.UpsertChannel(ctx, guildID, channelID); err != nil {
		return err
	}
	if !c.store(ctx, "set channel", channelKey(guildID), channelID) {
		c.drop(ctx, guildID)
	}
	return nil
}

func (c *GuildCache) Channel(ctx context.Context, guildID string) (string, bool, error) {
	if v, hit := c.load(ctx, "get channel", channelKey(guildID)); hit {
		if v == unsetSentinel {
			return "", false, nil
		}
		return v, true, nil
	}
	ch, ok, err := c.next.Channel(ctx, guildID)
	if err != nil {
		return "", false, err
	}
	if ok {
		c.store(ctx, "fill channel", channelKey(guildID), ch)
	} else {
		c.store(ctx, "fill channel", channelKey(guildID), unsetSentinel)
	}
	return ch, ok, nil
}

func (c *GuildCache) UpsertMention(ctx context.Context, guildID string, policy guild.MentionPolicy) error {
	if err := c.next.UpsertMention(ctx, guildID, policy); err != nil {
		return err
	}
	if !c.store(ctx, "set mention", mentionKey(guildID), encodeMention(policy)) {
		c.drop(ctx, guildID)
	}
	return nil
}

func (c *GuildCache) Mention(ctx context.Context, guildID string) (guild.MentionPolicy, bool, error) {
	if v, hit := c.load(ctx, "get mention", mentionKey(guildID)); hit {
		if v == unsetSentinel {
			return guild.NoMention(), false, nil
		}
		if p, ok := decodeMention(v); ok {
			return p, true, nil
		}
	}
	p, ok, err := c.next.Mention(ctx, guildID)
	if err != nil {
		return guild.NoMention(), false, err
	}
	if ok {
		c.store(ctx, "fill mention", mentionKey(guildID), encodeMention(p))
	} else {
		c.store(ctx, "fill mention", mentionKey(guildID), unsetSentinel)
	}
	return p, ok, nil
}

// Invalidate drops the cached settings of guildID.
func (c *GuildCache) Invalidate(ctx context.Context, guildID string) error {
	return c.rdb.Del(ctx, channelKey(guildID), mentionKey(guildID)).Err()
}

func (c *GuildCache) load(ctx context.Context, op, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.report(op, err)
		return "", false
	}
	return v, true
}

func (c *GuildCache) store(ctx context.Context, op, key, value string) bool {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.report(op, err)
		return false
	}
	return true
}

// drop runs after a write reached the backend but not Redis, so the cached
// value is older than the stored one.
func (c *GuildCache) drop(ctx context.Context, guildID string) {
	if err := c.Invalidate(ctx, guildID); err != nil {
		c.report("invalidate", err)
	}
}

func (c *GuildCache) report(op string, err error) {
	if c.OnError != nil {
		c.OnError(op, err)
	}
}

func encodeMention(p guild.MentionPolicy) string {
	switch p.Kind {
	case guild.MentionEveryone:
		return mentionAll
	case guild.MentionRole:
		return mentionRolePfx + p.RoleID
	default:
		return mentionNone
	}
}

func decodeMention(v string) (guild.MentionPolicy, bool) {
	switch {
	case v == mentionNone:
		return guild.NoMention(), true
	case v == mentionAll:
		return guild.EveryoneMention(), true
	case strings.HasPrefix(v, mentionRolePfx) && len(v) > len(mentionRolePfx):
		return guild.RoleMention(strings.TrimPrefix(v, mentionRolePfx)), true
	default:
		return guild.NoMention(), false
	}
}
