package guild

import (
	"context"
	"sync"
)

// MemoryBackend keeps settings in process memory.
type MemoryBackend struct {
	mu       sync.RWMutex
	channels map[string]string
	mentions map[string]MentionPolicy
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		channels: make(map[string]string),
		mentions: make(map[string]MentionPolicy),
	}
}

func (m *MemoryBackend) UpsertChannel(ctx context.Context, guildID, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[guildID] = channelID
	return nil
}

func (m *MemoryBackend) Channel(ctx context.Context, guildID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.channels[guildID]
	return ch, ok, nil
}

func (m *MemoryBackend) UpsertMention(ctx context.Context, guildID string, policy MentionPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mentions[guildID] = policy
	return nil
}

func (m *MemoryBackend) Mention(ctx context.Context, guildID string) (MentionPolicy, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.mentions[guildID]
	return p, ok, nil
}
