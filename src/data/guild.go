package data

import (
	"context"
	"strings"
	"time"

	"github.com/stake-plus/qotd/src/guild"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pingNone     = "0"
	pingEveryone = "1"
	pingRolePfx  = "role:"
)

var _ guild.Backend = (*GuildBackend)(nil)

// GuildBackend stores guild settings in the guild_channels and
// guild_ping_roles tables.
type GuildBackend struct {
	db *gorm.DB
}

func NewGuildBackend(db *gorm.DB) *GuildBackend {
	return &GuildBackend{db: db}
}

func (b *GuildBackend) UpsertChannel(ctx context.Context, guildID, channelID string) error {
	row := GuildChannel{GuildID: guildID, ChannelID: channelID, UpdatedAt: time.Now()}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"channel_id", "updated_at"}),
	}).Create(&row).Error
}

func (b *GuildBackend) Channel(ctx context.Context, guildID string) (string, bool, error) {
	var rows []GuildChannel
	if err := b.db.WithContext(ctx).Where("guild_id = ?", guildID).Limit(1).Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].ChannelID, true, nil
}

func (b *GuildBackend) UpsertMention(ctx context.Context, guildID string, policy guild.MentionPolicy) error {
	row := GuildPingRole{GuildID: guildID, PingRole: EncodeMention(policy), UpdatedAt: time.Now()}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ping_role", "updated_at"}),
	}).Create(&row).Error
}

func (b *GuildBackend) Mention(ctx context.Context, guildID string) (guild.MentionPolicy, bool, error) {
	var rows []GuildPingRole
	if err := b.db.WithContext(ctx).Where("guild_id = ?", guildID).Limit(1).Find(&rows).Error; err != nil {
		return guild.NoMention(), false, err
	}
	if len(rows) == 0 {
		return guild.NoMention(), false, nil
	}
	return DecodeMention(rows[0].PingRole), true, nil
}

// EncodeMention converts a policy to its stored form. Role ids are prefixed
// so that ids such as "0" or "1" never collide with the other policies.
func EncodeMention(p guild.MentionPolicy) string {
	switch p.Kind {
	case guild.MentionEveryone:
		return pingEveryone
	case guild.MentionRole:
		return pingRolePfx + p.RoleID
	default:
		return pingNone
	}
}

// DecodeMention parses the stored form of a policy. Unprefixed values other
// than "0" and "1" are role ids written before the prefix existed.
func DecodeMention(v string) guild.MentionPolicy {
	switch {
	case v == "" || v == pingNone:
		return guild.NoMention()
	case v == pingEveryone:
		return guild.EveryoneMention()
	case strings.HasPrefix(v, pingRolePfx):
		return guild.RoleMention(strings.TrimPrefix(v, pingRolePfx))
	default:
		return guild.RoleMention(v)
	}
}
