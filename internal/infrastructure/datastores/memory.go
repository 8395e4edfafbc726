package datastores

import (
	"context"
	"sync"
)

// MemoryKeyValueStore is a mutex-guarded in-memory KeyValueStore used in
// tests and as the default backend when Redis is not configured.
type MemoryKeyValueStore[T any] struct {
	mu   sync.RWMutex
	data map[string]T
}

func NewMemoryKeyValueStore[T any]() *MemoryKeyValueStore[T] {
	return &MemoryKeyValueStore[T]{data: make(map[string]T)}
}

func (s *MemoryKeyValueStore[T]) Set(_ context.Context, key string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKeyValueStore[T]) Get(_ context.Context, key string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKeyValueStore[T]) Delete(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return false, nil
	}
	delete(s.data, key)
	return true, nil
}

func (s *MemoryKeyValueStore[T]) Values(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.data))
	for _, v := range s.data {
		out = append(out, v)
	}
	return out, nil
}

// MemoryRelationalStore is an in-memory RelationalStore with upsert
// semantics on Save.
type MemoryRelationalStore[T any] struct {
	mu   sync.RWMutex
	data map[string]T
	// order preserves insertion order so ListAll is deterministic.
	order []string
}

func NewMemoryRelationalStore[T any]() *MemoryRelationalStore[T] {
	return &MemoryRelationalStore[T]{data: make(map[string]T)}
}

func (s *MemoryRelationalStore[T]) Save(_ context.Context, id string, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[id]; !exists {
		s.order = append(s.order, id)
	}
	s.data[id] = entity
	return nil
}

func (s *MemoryRelationalStore[T]) FindByID(_ context.Context, id string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[id]
	return v, ok, nil
}

func (s *MemoryRelationalStore[T]) Query(_ context.Context, predicate func(T) bool) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.order {
		if v := s.data[id]; predicate(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *MemoryRelationalStore[T]) ListAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.data[id])
	}
	return out, nil
}

// MemoryLogStore is an in-memory append-only log.
type MemoryLogStore[T any] struct {
	mu      sync.Mutex
	records []T
}

func NewMemoryLogStore[T any]() *MemoryLogStore[T] {
	return &MemoryLogStore[T]{}
}

func (s *MemoryLogStore[T]) Append(_ context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryLogStore[T]) BatchAppend(_ context.Context, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
	return nil
}

func (s *MemoryLogStore[T]) FetchRecent(_ context.Context, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.records) {
		n = len(s.records)
	}
	out := make([]T, n)
	copy(out, s.records[len(s.records)-n:])
	return out, nil
}
