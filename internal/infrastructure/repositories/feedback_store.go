package repositories

import (
	"context"
	"sync"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/datastores"
)

// memoryFeedbackStore stages feedback records in an append-only log
// until the drain job folds them into the aggregator. Collection
// happens on the charge path, so writes are a cheap append. Drain swaps
// the log under the mutex, so a concurrent AddRecord lands either in
// the drained batch or in the fresh log, never in a discarded one.
type memoryFeedbackStore struct {
	mu  sync.Mutex
	log *datastores.MemoryLogStore[entities.RawTransactionRecord]
}

func NewFeedbackStore() domainrepos.FeedbackStore {
	return &memoryFeedbackStore{
		log: datastores.NewMemoryLogStore[entities.RawTransactionRecord](),
	}
}

func (s *memoryFeedbackStore) AddRecord(ctx context.Context, record entities.RawTransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Append(ctx, record)
}

func (s *memoryFeedbackStore) GetAllRecords(ctx context.Context) ([]entities.RawTransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.FetchRecent(ctx, 0)
}

func (s *memoryFeedbackStore) Drain(ctx context.Context) ([]entities.RawTransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.log
	s.log = datastores.NewMemoryLogStore[entities.RawTransactionRecord]()
	return drained.FetchRecent(ctx, 0)
}
