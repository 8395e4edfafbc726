package ingestion

import (
	"context"
	"io"

	"go.uber.org/zap"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/usecases"
	"pay-router.backend/pkg/logger"
)

// DataIngestor pulls raw records from batch sources, runs them through
// the intelligence strategy and upserts the resulting performance rows.
type DataIngestor struct {
	perfRepo domainrepos.PerformanceRepository
	strategy usecases.IntelligenceStrategy
}

func NewDataIngestor(perfRepo domainrepos.PerformanceRepository, strategy usecases.IntelligenceStrategy) *DataIngestor {
	return &DataIngestor{perfRepo: perfRepo, strategy: strategy}
}

// IngestFromProvider fetches all records from a batch source and folds
// them into the intelligence repository. Returns the number of records
// consumed.
func (d *DataIngestor) IngestFromProvider(ctx context.Context, provider domainrepos.DataProvider) (int, error) {
	records, err := provider.FetchData(ctx)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := d.IngestRecords(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// IngestRecords analyzes an in-hand batch and saves every emitted
// performance row.
func (d *DataIngestor) IngestRecords(ctx context.Context, records []entities.RawTransactionRecord) error {
	results := d.strategy.Analyze(records)
	for _, result := range results {
		if err := d.perfRepo.Save(ctx, result); err != nil {
			return err
		}
	}
	logger.Info(ctx, "ingested transaction batch",
		zap.Int("records", len(records)),
		zap.Int("performance_rows", len(results)))
	return nil
}

// IngestReport parses a vendor CSV report and folds it into the
// intelligence repository.
func (d *DataIngestor) IngestReport(ctx context.Context, r io.Reader, parser TransactionParser) (int, error) {
	records, err := ReadReport(r, parser)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := d.IngestRecords(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
