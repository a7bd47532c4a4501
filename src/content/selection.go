package content

import "context"

// Outcome describes how a custom selection resolved.
type Outcome int

const (
	OutcomeSelected Outcome = iota
	// OutcomeNotFound means a specific id was requested and is not visible to the guild.
	OutcomeNotFound
	// OutcomeNoCustom means a random pick was requested and the guild has no items.
	OutcomeNoCustom
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSelected:
		return "selected"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeNoCustom:
		return "no_custom"
	default:
		return "unknown"
	}
}

// Selection is the resolved item and how it was found.
type Selection[T any] struct {
	Item    T
	ID      int64
	Outcome Outcome
}

// Selector resolves item requests against a Repository.
type Selector[T any] struct {
	repo *Repository[T]
}

func NewSelector[T any](repo *Repository[T]) *Selector[T] {
	return &Selector[T]{repo: repo}
}

// Curated returns a random curated item. ErrEmptyPool means the deployment is
// misconfigured and must not be papered over.
func (s *Selector[T]) Curated(ctx context.Context) (T, error) {
	return s.repo.RandomCurated(ctx)
}

// Custom resolves a guild-scoped request. A nil id asks for a random item.
func (s *Selector[T]) Custom(ctx context.Context, owner string, id *int64) (Selection[T], error) {
	if id != nil {
		item, ok, err := s.repo.CustomByID(ctx, owner, *id)
		if err != nil {
			return Selection[T]{}, err
		}
		if !ok {
			return Selection[T]{Outcome: OutcomeNotFound}, nil
		}
		return Selection[T]{Item: item, ID: *id, Outcome: OutcomeSelected}, nil
	}

	item, ok, err := s.repo.RandomCustom(ctx, owner)
	if err != nil {
		return Selection[T]{}, err
	}
	if !ok {
		return Selection[T]{Outcome: OutcomeNoCustom}, nil
	}
	return Selection[T]{Item: item, Outcome: OutcomeSelected}, nil
}
