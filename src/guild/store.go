package guild

import (
	"context"
	"fmt"
	"strings"

	"github.com/stake-plus/qotd/src/content"
)

// Backend persists guild settings. Missing rows report ok=false.
type Backend interface {
	UpsertChannel(ctx context.Context, guildID, channelID string) error
	Channel(ctx context.Context, guildID string) (string, bool, error)
	UpsertMention(ctx context.Context, guildID string, policy MentionPolicy) error
	Mention(ctx context.Context, guildID string) (MentionPolicy, bool, error)
}

// ConfigStore reads and writes per-guild delivery settings.
type ConfigStore struct {
	backend Backend
}

func NewConfigStore(backend Backend) *ConfigStore {
	return &ConfigStore{backend: backend}
}

// SetChannel records the delivery channel for guildID, replacing any previous value.
func (s *ConfigStore) SetChannel(ctx context.Context, guildID, channelID string) error {
	if err := requireID("guild", guildID); err != nil {
		return err
	}
	if err := requireID("channel", channelID); err != nil {
		return err
	}
	if err := s.backend.UpsertChannel(ctx, guildID, channelID); err != nil {
		return &content.StoreError{Op: "guild: set channel", Err: err}
	}
	return nil
}

// Channel returns the delivery channel; ok is false when none is set.
func (s *ConfigStore) Channel(ctx context.Context, guildID string) (string, bool, error) {
	if err := requireID("guild", guildID); err != nil {
		return "", false, err
	}
	ch, ok, err := s.backend.Channel(ctx, guildID)
	if err != nil {
		return "", false, &content.StoreError{Op: "guild: get channel", Err: err}
	}
	if !ok || ch == "" {
		return "", false, nil
	}
	return ch, true, nil
}

// SetMentionPolicy stores policy verbatim; role validity is the caller's concern.
func (s *ConfigStore) SetMentionPolicy(ctx context.Context, guildID string, policy MentionPolicy) error {
	if err := requireID("guild", guildID); err != nil {
		return err
	}
	if policy.Kind == MentionRole {
		if err := requireID("role", policy.RoleID); err != nil {
			return err
		}
	}
	if err := s.backend.UpsertMention(ctx, guildID, policy); err != nil {
		return &content.StoreError{Op: "guild: set mention", Err: err}
	}
	return nil
}

// MentionPolicy returns the guild's policy, or None when unset.
func (s *ConfigStore) MentionPolicy(ctx context.Context, guildID string) (MentionPolicy, error) {
	if err := requireID("guild", guildID); err != nil {
		return NoMention(), err
	}
	p, ok, err := s.backend.Mention(ctx, guildID)
	if err != nil {
		return NoMention(), &content.StoreError{Op: "guild: get mention", Err: err}
	}
	if !ok {
		return NoMention(), nil
	}
	return p, nil
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &content.ValidationError{Field: field, Reason: fmt.Sprintf("%s id is required", field)}
	}
	return nil
}
