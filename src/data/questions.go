package data

import (
	"context"

	"github.com/stake-plus/qotd/src/content"
	"gorm.io/gorm"
)

var _ content.Backend[string] = (*QuestionBackend)(nil)

// QuestionBackend serves the questions and custom_questions tables.
type QuestionBackend struct {
	db *gorm.DB
}

func NewQuestionBackend(db *gorm.DB) *QuestionBackend {
	return &QuestionBackend{db: db}
}

func (b *QuestionBackend) CountCurated(ctx context.Context) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&Question{}).Where("in_use = ?", true).Count(&n).Error
	return n, err
}

func (b *QuestionBackend) CuratedAt(ctx context.Context, offset int) (string, bool, error) {
	var rows []Question
	if err := b.db.WithContext(ctx).Where("in_use = ?", true).
		Order("id ASC").Offset(offset).Limit(1).Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].QuestionString, true, nil
}

func (b *QuestionBackend) CountCustom(ctx context.Context, owner string) (int64, error) {
	var n int64
	err := b.db.WithContext(ctx).Model(&CustomQuestion{}).Where("guild_id = ?", owner).Count(&n).Error
	return n, err
}

func (b *QuestionBackend) CustomAt(ctx context.Context, owner string, offset int) (string, bool, error) {
	var rows []CustomQuestion
	if err := b.db.WithContext(ctx).Where("guild_id = ?", owner).
		Order("question_id ASC").Offset(offset).Limit(1).Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].QuestionString, true, nil
}

func (b *QuestionBackend) GetCustom(ctx context.Context, owner string, id int64) (string, bool, error) {
	var rows []CustomQuestion
	if err := b.db.WithContext(ctx).Where("question_id = ? AND guild_id = ?", id, owner).
		Limit(1).Find(&rows).Error; err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].QuestionString, true, nil
}

func (b *QuestionBackend) InsertCustom(ctx context.Context, owner string, item string) (int64, error) {
	row := CustomQuestion{GuildID: owner, QuestionString: item}
	if err := b.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.QuestionID, nil
}

// DeleteCustom checks ownership and deletes in one statement.
func (b *QuestionBackend) DeleteCustom(ctx context.Context, owner string, id int64) (bool, error) {
	res := b.db.WithContext(ctx).Where("question_id = ? AND guild_id = ?", id, owner).Delete(&CustomQuestion{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (b *QuestionBackend) ListCustom(ctx context.Context, owner string) ([]content.Entry[string], error) {
	var rows []CustomQuestion
	if err := b.db.WithContext(ctx).Where("guild_id = ?", owner).
		Order("question_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	entries := make([]content.Entry[string], 0, len(rows))
	for _, r := range rows {
		entries = append(entries, content.Entry[string]{ID: r.QuestionID, Item: r.QuestionString})
	}
	return entries, nil
}
