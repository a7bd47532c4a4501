package content

import (
	"context"
	"math/rand"
	"strings"
)

// pickAttempts bounds how often a random read is retried when the row at the
// chosen offset vanished between the count and the fetch.
const pickAttempts = 3

// Picker returns a value in [0, n).
type Picker func(n int) int

// Repository enforces ownership and capacity rules on top of a Backend.
type Repository[T any] struct {
	name     string
	backend  Backend[T]
	validate func(T) error
	pick     Picker
	limit    int64
}

// Option customizes a Repository.
type Option[T any] func(*Repository[T])

// WithPicker replaces the random source used for selection.
func WithPicker[T any](p Picker) Option[T] {
	return func(r *Repository[T]) {
		if p != nil {
			r.pick = p
		}
	}
}

// WithValidator checks items before they are inserted.
func WithValidator[T any](fn func(T) error) Option[T] {
	return func(r *Repository[T]) { r.validate = fn }
}

// NewRepository builds a repository named name (used in error messages).
func NewRepository[T any](name string, backend Backend[T], opts ...Option[T]) *Repository[T] {
	r := &Repository[T]{
		name:    name,
		backend: backend,
		pick:    rand.Intn,
		limit:   CustomLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewQuestions returns the repository for plain-text questions.
func NewQuestions(backend Backend[string], opts ...Option[string]) *Repository[string] {
	opts = append([]Option[string]{WithValidator(ValidateQuestion)}, opts...)
	return NewRepository("questions", backend, opts...)
}

// NewPolls returns the repository for three-part polls.
func NewPolls(backend Backend[Poll], opts ...Option[Poll]) *Repository[Poll] {
	opts = append([]Option[Poll]{WithValidator(ValidatePoll)}, opts...)
	return NewRepository("polls", backend, opts...)
}

// Name identifies the pool.
func (r *Repository[T]) Name() string { return r.name }

// RandomCurated picks uniformly among active curated entries.
func (r *Repository[T]) RandomCurated(ctx context.Context) (T, error) {
	var zero T
	for attempt := 0; attempt < pickAttempts; attempt++ {
		n, err := r.backend.CountCurated(ctx)
		if err != nil {
			return zero, storeErr(r.name+": count curated", err)
		}
		if n <= 0 {
			return zero, ErrEmptyPool
		}
		item, ok, err := r.backend.CuratedAt(ctx, r.pick(int(n)))
		if err != nil {
			return zero, storeErr(r.name+": curated", err)
		}
		if ok {
			return item, nil
		}
	}
	return zero, ErrEmptyPool
}

// SubmitCustom stores item for owner unless the owner is at capacity.
// The count and the insert are separate statements, so concurrent submissions
// from one guild can overshoot the limit slightly.
func (r *Repository[T]) SubmitCustom(ctx context.Context, owner string, item T) (int64, error) {
	if err := checkOwner(owner); err != nil {
		return 0, err
	}
	if r.validate != nil {
		if err := r.validate(item); err != nil {
			return 0, err
		}
	}
	n, err := r.backend.CountCustom(ctx, owner)
	if err != nil {
		return 0, storeErr(r.name+": count custom", err)
	}
	if n >= r.limit {
		return 0, ErrCapacityExceeded
	}
	id, err := r.backend.InsertCustom(ctx, owner, item)
	if err != nil {
		return 0, storeErr(r.name+": insert custom", err)
	}
	return id, nil
}

// DeleteCustom removes id if owner owns it.
func (r *Repository[T]) DeleteCustom(ctx context.Context, owner string, id int64) (DeletionOutcome, error) {
	if err := checkOwner(owner); err != nil {
		return NotFoundOrNotOwned, err
	}
	if id <= 0 {
		return NotFoundOrNotOwned, nil
	}
	deleted, err := r.backend.DeleteCustom(ctx, owner, id)
	if err != nil {
		return NotFoundOrNotOwned, storeErr(r.name+": delete custom", err)
	}
	if !deleted {
		return NotFoundOrNotOwned, nil
	}
	return Deleted, nil
}

// ListCustom returns the owner's items in ascending id order.
func (r *Repository[T]) ListCustom(ctx context.Context, owner string) ([]Entry[T], error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}
	entries, err := r.backend.ListCustom(ctx, owner)
	if err != nil {
		return nil, storeErr(r.name+": list custom", err)
	}
	if entries == nil {
		entries = []Entry[T]{}
	}
	return entries, nil
}

// RandomCustom picks one of the owner's items; ok is false when there are none.
func (r *Repository[T]) RandomCustom(ctx context.Context, owner string) (T, bool, error) {
	var zero T
	if err := checkOwner(owner); err != nil {
		return zero, false, err
	}
	for attempt := 0; attempt < pickAttempts; attempt++ {
		n, err := r.backend.CountCustom(ctx, owner)
		if err != nil {
			return zero, false, storeErr(r.name+": count custom", err)
		}
		if n <= 0 {
			return zero, false, nil
		}
		item, ok, err := r.backend.CustomAt(ctx, owner, r.pick(int(n)))
		if err != nil {
			return zero, false, storeErr(r.name+": custom", err)
		}
		if ok {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// CustomByID returns the owner's item with id; ok is false when it is missing
// or belongs to another guild.
func (r *Repository[T]) CustomByID(ctx context.Context, owner string, id int64) (T, bool, error) {
	var zero T
	if err := checkOwner(owner); err != nil {
		return zero, false, err
	}
	if id <= 0 {
		return zero, false, nil
	}
	item, ok, err := r.backend.GetCustom(ctx, owner, id)
	if err != nil {
		return zero, false, storeErr(r.name+": get custom", err)
	}
	return item, ok, nil
}

// CountCustom returns how many items owner holds.
func (r *Repository[T]) CountCustom(ctx context.Context, owner string) (int64, error) {
	if err := checkOwner(owner); err != nil {
		return 0, err
	}
	n, err := r.backend.CountCustom(ctx, owner)
	if err != nil {
		return 0, storeErr(r.name+": count custom", err)
	}
	return n, nil
}

func checkOwner(owner string) error {
	if strings.TrimSpace(owner) == "" {
		return &ValidationError{Field: "guild", Reason: "id is required"}
	}
	return nil
}
