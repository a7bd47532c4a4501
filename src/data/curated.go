package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stake-plus/qotd/src/content"
	"gorm.io/gorm"
)

// ErrCuratedNotFound is returned when an admin update targets a missing row.
var ErrCuratedNotFound = errors.New("data: curated entry not found")

// ListQuestions returns every curated question, active or not.
func ListQuestions(ctx context.Context, db *gorm.DB) ([]Question, error) {
	var rows []Question
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddQuestion inserts a curated question.
func AddQuestion(ctx context.Context, db *gorm.DB, text string, active bool) (*Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("data: question text is empty")
	}
	q := Question{QuestionString: text, InUse: active}
	if err := db.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// SetQuestionActive toggles whether a curated question can be selected.
func SetQuestionActive(ctx context.Context, db *gorm.DB, id uint64, active bool) error {
	res := db.WithContext(ctx).Model(&Question{}).Where("id = ?", id).Update("in_use", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.WithContext(ctx).Model(&Question{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrCuratedNotFound
		}
	}
	return nil
}

// ListPolls returns every curated poll, active or not.
func ListPolls(ctx context.Context, db *gorm.DB) ([]Poll, error) {
	var rows []Poll
	if err := db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AddPoll inserts a curated poll.
func AddPoll(ctx context.Context, db *gorm.DB, prompt, optionA, optionB string, active bool) (*Poll, error) {
	p := Poll{
		Prompt:  strings.TrimSpace(prompt),
		OptionA: strings.TrimSpace(optionA),
		OptionB: strings.TrimSpace(optionB),
		InUse:   active,
	}
	if err := content.ValidatePoll(content.Poll{Prompt: p.Prompt, OptionA: p.OptionA, OptionB: p.OptionB}); err != nil {
		return nil, fmt.Errorf("data: add poll: %w", err)
	}
	if err := db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetPollActive toggles whether a curated poll can be selected.
func SetPollActive(ctx context.Context, db *gorm.DB, id uint64, active bool) error {
	res := db.WithContext(ctx).Model(&Poll{}).Where("id = ?", id).Update("in_use", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.WithContext(ctx).Model(&Poll{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrCuratedNotFound
		}
	}
	return nil
}
