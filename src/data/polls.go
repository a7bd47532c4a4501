package data

import (
	"context"

	"github.com/stake-plus/qotd/src/content"
	"gorm.io/gorm"
)

var _ content.Backend[content.Poll] = (*PollBackend)(nil)

// PollBackend serves the polls and custom_polls tables.
type PollBackend struct {
	db *gorm.DB
}

func NewPollBackend(db *gorm.DB) *PollBackend {
	return &PollBackend{db: db}
}

func (p Poll) toContent() content.Poll {
	return content.Poll{Prompt: p.Prompt, OptionA: p.OptionA, OptionB: p.OptionB}
}

func (p CustomPoll) toContent() content.Poll {
	return content.Poll{Prompt: p.Prompt, OptionA: p.OptionA, OptionB: p.OptionB}
}

func (b *PollBackend) CountCurated(ctx context.Context) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&Poll{}).Where("in_use = ?", true).Count(&n).Error
	return n, err
}

func (b *PollBackend) CuratedAt(ctx context.Context, offset int) (content.Poll, bool, error) {
	var rows []Poll
	if err := b.db.WithContext(ctx).Where("in_use = ?", true).
		Order("id ASC").Offset(offset).Limit(1).Find(&rows).Error; err != nil {
		return content.Poll{}, false, err
	}
	if len(rows) == 0 {
		return content.Poll{}, false, nil
	}
	return rows[0].toContent(), true, nil
}

func (b *PollBackend) CountCustom(ctx context.Context, owner string) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&CustomPoll{}).Where("guild_id = ?", owner).Count(&n).Error
	return n, err
}

func (b *PollBackend) CustomAt(ctx context.Context, owner string, offset int) (content.Poll, bool, error) {
	var rows []CustomPoll
	if err := b.db.WithContext(ctx).Where("guild_id = ?", owner).
		Order("poll_id ASC").Offset(offset).Limit(1).Find(&rows).Error; err != nil {
		return content.Poll{}, false, err
	}
	if len(rows) == 0 {
		return content.Poll{}, false, nil
	}
	return rows[0].toContent(), true, nil
}

func (b *PollBackend) GetCustom(ctx context.Context, owner string, id int64) (content.Poll, bool, error) {
	var rows []CustomPoll
	if err := b.db.WithContext(ctx).Where("poll_id = ? AND guild_id = ?", id, owner).
		Limit(1).Find(&rows).Error; err != nil {
		return content.Poll{}, false, err
	}
	if len(rows) == 0 {
		return content.Poll{}, false, nil
	}
	return rows[0].toContent(), true, nil
}

func (b *PollBackend) InsertCustom(ctx context.Context, owner string, item content.Poll) (int64, error) {
	row := CustomPoll{GuildID: owner, Prompt: item.Prompt, OptionA: item.OptionA, OptionB: item.OptionB}
	if err := b.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.PollID, nil
}

func (b *PollBackend) DeleteCustom(ctx context.Context, owner string, id int64) (bool, error) {
	res := b.db.WithContext(ctx).Where("poll_id = ? AND guild_id = ?", id, owner).Delete(&CustomPoll{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (b *PollBackend) ListCustom(ctx context.Context, owner string) ([]content.Entry[content.Poll], error) {
	var rows []CustomPoll
	if err := b.db.WithContext(ctx).Where("guild_id = ?", owner).
		Order("poll_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]content.Entry[content.Poll], 0, len(rows))
	for _, r := range rows {
		entries = append(entries, content.Entry[content.Poll]{ID: r.PollID, Item: r.toContent()})
	}
	return entries, nil
}
