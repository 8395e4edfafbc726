package repositories

import (
	"context"

	"pay-router.backend/internal/domain/entities"
)

// FeedbackStore stages raw transaction records produced by completed
// payments until the drain tick hands them to the aggregator. Drain
// atomically removes and returns everything staged, so records added
// concurrently with a drain land in the next batch instead of being
// wiped with the current one.
type FeedbackStore interface {
	AddRecord(ctx context.Context, record entities.RawTransactionRecord) error
	GetAllRecords(ctx context.Context) ([]entities.RawTransactionRecord, error)
	Drain(ctx context.Context) ([]entities.RawTransactionRecord, error)
}

// DataProvider is any batch source of raw transaction records: CSV report
// parsers, the internal feedback loop, synthetic generators.
type DataProvider interface {
	FetchData(ctx context.Context) ([]entities.RawTransactionRecord, error)
}
