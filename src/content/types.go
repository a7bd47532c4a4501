// Package content manages the curated and guild-owned custom pools of
// questions and polls.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// CustomLimit caps how many custom items a guild may hold per pool.
const CustomLimit = 100

const (
	// MaxPollPrompt matches Discord's embed title limit.
	MaxPollPrompt = 256
	// MaxPollOption matches the option columns of the poll tables.
	MaxPollOption = 255
)

// Poll is a prompt with two options.
type Poll struct {
	Prompt  string
	OptionA string
	OptionB string
}

// Lines returns the poll as the three lines it was submitted as.
func (p Poll) Lines() []string {
	return []string{p.Prompt, p.OptionA, p.OptionB}
}

// ParsePoll splits a submission into a Poll. The body must be exactly three
// non-empty lines: prompt, first option, second option.
func ParsePoll(body string) (Poll, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if len(lines) != 3 {
		return Poll{}, &ValidationError{Field: "poll", Reason: "expected exactly 3 lines"}
	}
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	p := Poll{Prompt: lines[0], OptionA: lines[1], OptionB: lines[2]}
	if err := ValidatePoll(p); err != nil {
		return Poll{}, err
	}
	return p, nil
}

// ValidatePoll rejects polls with an empty line or a line too long to store
// or deliver. Lengths are counted in runes.
func ValidatePoll(p Poll) error {
	for _, line := range p.Lines() {
		if strings.TrimSpace(line) == "" {
			return &ValidationError{Field: "poll", Reason: "lines must not be empty"}
		}
	}
	if utf8.RuneCountInString(p.Prompt) > MaxPollPrompt {
		return &ValidationError{Field: "poll_length", Reason: fmt.Sprintf("prompt exceeds %d characters", MaxPollPrompt)}
	}
	for _, opt := range []string{p.OptionA, p.OptionB} {
		if utf8.RuneCountInString(opt) > MaxPollOption {
			return &ValidationError{Field: "poll_length", Reason: fmt.Sprintf("option exceeds %d characters", MaxPollOption)}
		}
	}
	return nil
}

// IsPollTooLong reports whether err rejected a poll for its length.
func IsPollTooLong(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Field == "poll_length"
}

// ValidateQuestion rejects empty questions.
func ValidateQuestion(q string) error {
	if strings.TrimSpace(q) == "" {
		return &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	return nil
}

// Entry is a custom item together with its store-assigned id.
type Entry[T any] struct {
	ID   int64
	Item T
}

// DeletionOutcome is the result of DeleteCustom.
type DeletionOutcome int

const (
	// NotFoundOrNotOwned deliberately does not say which of the two happened.
	NotFoundOrNotOwned DeletionOutcome = iota
	Deleted
)

func (o DeletionOutcome) String() string {
	if o == Deleted {
		return "deleted"
	}
	return "not_found"
}

// Backend is the persistence contract a Repository needs. Offsets are
// zero-based positions in id order.
type Backend[T any] interface {
	CountCurated(ctx context.Context) (int64, error)
	CuratedAt(ctx context.Context, offset int) (T, bool, error)

	CountCustom(ctx context.Context, owner string) (int64, error)
	CustomAt(ctx context.Context, owner string, offset int) (T, bool, error)
	GetCustom(ctx context.Context, owner string, id int64) (T, bool, error)
	InsertCustom(ctx context.Context, owner string, item T) (int64, error)
	DeleteCustom(ctx context.Context, owner string, id int64) (bool, error)
	ListCustom(ctx context.Context, owner string) ([]Entry[T], error)
}
