package content

import (
	"context"
	"sort"
	"sync"
)

// MemoryBackend is an in-process Backend used by tests and dry runs.
type MemoryBackend[T any] struct {
	mu      sync.Mutex
	curated []memCurated[T]
	custom  map[int64]memCustom[T]
	nextID  int64
}

type memCurated[T any] struct {
	item   T
	active bool
}

type memCustom[T any] struct {
	owner string
	item  T
}

func NewMemoryBackend[T any]() *MemoryBackend[T] {
	return &MemoryBackend[T]{custom: make(map[int64]memCustom[T])}
}

// AddCurated appends a curated entry.
func (m *MemoryBackend[T]) AddCurated(item T, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.curated = append(m.curated, memCurated[T]{item: item, active: active})
}

func (m *MemoryBackend[T]) CountCurated(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.curated {
		if c.active {
			n++
		}
	}
	return n, nil
}

func (m *MemoryBackend[T]) CuratedAt(ctx context.Context, offset int) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	i := 0
	for _, c := range m.curated {
		if !c.active {
			continue
		}
		if i == offset {
			return c.item, true, nil
		}
		i++
	}
	return zero, false, nil
}

func (m *MemoryBackend[T]) CountCustom(ctx context.Context, owner string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, c := range m.custom {
		if c.owner == owner {
			n++
		}
	}
	return n, nil
}

func (m *MemoryBackend[T]) CustomAt(ctx context.Context, owner string, offset int) (T, bool, error) {
	var zero T
	entries, _ := m.ListCustom(ctx, owner)
	if offset < 0 || offset >= len(entries) {
		return zero, false, nil
	}
	return entries[offset].Item, true, nil
}

func (m *MemoryBackend[T]) GetCustom(ctx context.Context, owner string, id int64) (T, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	c, ok := m.custom[id]
	if !ok || c.owner != owner {
		return zero, false, nil
	}
	return c.item, true, nil
}

func (m *MemoryBackend[T]) InsertCustom(ctx context.Context, owner string, item T) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.custom[m.nextID] = memCustom[T]{owner: owner, item: item}
	return m.nextID, nil
}

func (m *MemoryBackend[T]) DeleteCustom(ctx context.Context, owner string, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.custom[id]
	if !ok || c.owner != owner {
		return false, nil
	}
	delete(m.custom, id)
	return true, nil
}

func (m *MemoryBackend[T]) ListCustom(ctx context.Context, owner string) ([]Entry[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]Entry[T], 0)
	for id, c := range m.custom {
		if c.owner == owner {
			entries = append(entries, Entry[T]{ID: id, Item: c.item})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}
