package repositories

import (
	"context"
	"sync"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
)

// performanceRepo implements the intelligence repository over a
// KeyValueStore holding one bucket per canonical dimension key. The
// read-modify-write of a bucket is serialized per key, so a slow write
// to one dimension never blocks saves to the others; the backing store
// only needs single-key atomicity.
type performanceRepo struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
	store domainrepos.KeyValueStore[[]entities.ProviderPerformance]
}

func NewPerformanceRepository(store domainrepos.KeyValueStore[[]entities.ProviderPerformance]) domainrepos.PerformanceRepository {
	return &performanceRepo{
		locks: make(map[string]*sync.Mutex),
		store: store,
	}
}

func (r *performanceRepo) keyLock(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	return l
}

func (r *performanceRepo) Save(ctx context.Context, perf entities.ProviderPerformance) error {
	key := perf.Dimension.CanonicalKey()

	l := r.keyLock(key)
	l.Lock()
	defer l.Unlock()

	bucket, _, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}

	replaced := false
	for i := range bucket {
		if bucket[i].Provider == perf.Provider {
			bucket[i] = perf
			replaced = true
			break
		}
	}
	if !replaced {
		bucket = append(bucket, perf)
	}
	return r.store.Set(ctx, key, bucket)
}

func (r *performanceRepo) FindByDimension(ctx context.Context, dim entities.RoutingDimension) ([]entities.ProviderPerformance, error) {
	bucket, ok, err := r.store.Get(ctx, dim.CanonicalKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entities.ProviderPerformance{}, nil
	}
	return bucket, nil
}

func (r *performanceRepo) All(ctx context.Context) ([]entities.ProviderPerformance, error) {
	buckets, err := r.store.Values(ctx)
	if err != nil {
		return nil, err
	}
	var out []entities.ProviderPerformance
	for _, bucket := range buckets {
		out = append(out, bucket...)
	}
	return out, nil
}
