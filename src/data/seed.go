package data

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/stake-plus/qotd/src/content"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// SeedFile is the YAML layout of a curated content bundle.
type SeedFile struct {
	Questions []SeedQuestion `yaml:"questions"`
	Polls     []SeedPoll     `yaml:"polls"`
}

type SeedQuestion struct {
	Text   string `yaml:"text"`
	Active *bool  `yaml:"active"`
}

type SeedPoll struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Active  *bool    `yaml:"active"`
}

// SeedResult counts rows inserted and skipped by Seed.
type SeedResult struct {
	QuestionsAdded   int
	QuestionsSkipped int
	PollsAdded       int
	PollsSkipped     int
}

// LoadSeedFile reads and decodes a seed bundle.
func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("data: read seed: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a seed bundle and checks its shape.
func ParseSeed(raw []byte) (*SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("data: parse seed: %w", err)
	}
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("data: seed question %d has no text", i)
		}
	}
	for i, p := range f.Polls {
		if strings.TrimSpace(p.Prompt) == "" || len(p.Options) != 2 {
			return nil, fmt.Errorf("data: seed poll %d needs a prompt and exactly 2 options", i)
		}
		poll := content.Poll{
			Prompt:  strings.TrimSpace(p.Prompt),
			OptionA: strings.TrimSpace(p.Options[0]),
			OptionB: strings.TrimSpace(p.Options[1]),
		}
		if err := content.ValidatePoll(poll); err != nil {
			return nil, fmt.Errorf("data: seed poll %d: %w", i, err)
		}
	}
	return &f, nil
}

// Seed inserts curated entries whose text is not already present. Existing
// rows keep their active flag.
func Seed(ctx context.Context, db *gorm.DB, f *SeedFile) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, q := range f.Questions {
			text := strings.TrimSpace(q.Text)
			var n int64
			if err := tx.Model(&Question{}).Where("question_string = ?", text).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				res.QuestionsSkipped++
				continue
			}
			if _, err := AddQuestion(ctx, tx, text, activeOrDefault(q.Active)); err != nil {
				return err
			}
			res.QuestionsAdded++
		}
		for _, p := range f.Polls {
			prompt := strings.TrimSpace(p.Prompt)
			var n int64
			if err := tx.Model(&Poll{}).Where("prompt = ?", prompt).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				res.PollsSkipped++
				continue
			}
			if _, err := AddPoll(ctx, tx, prompt, p.Options[0], p.Options[1], activeOrDefault(p.Active)); err != nil {
				return err
			}
			res.PollsAdded++
		}
		return nil
	})
	return res, err
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
