package repositories

import "context"

// KeyValueStore is a generic keyed store. Implementations must serialize
// their own write path; readers may observe lock-free snapshots.
type KeyValueStore[T any] interface {
	Set(ctx context.Context, key string, value T) error
	Get(ctx context.Context, key string) (T, bool, error)
	Delete(ctx context.Context, key string) (bool, error)
	Values(ctx context.Context) ([]T, error)
}

// RelationalStore is a generic entity store with upsert semantics on Save.
type RelationalStore[T any] interface {
	Save(ctx context.Context, id string, entity T) error
	FindByID(ctx context.Context, id string) (T, bool, error)
	Query(ctx context.Context, predicate func(T) bool) ([]T, error)
	ListAll(ctx context.Context) ([]T, error)
}

// LogAppendStore is a generic append-only log.
type LogAppendStore[T any] interface {
	Append(ctx context.Context, record T) error
	BatchAppend(ctx context.Context, records []T) error
	FetchRecent(ctx context.Context, n int) ([]T, error)
}
