package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/internal/infrastructure/datastores"
	"pay-router.backend/internal/infrastructure/ingestion"
	"pay-router.backend/internal/infrastructure/repositories"
	"pay-router.backend/internal/usecases"
)

// failingPerfRepo rejects every write, simulating an unreachable
// intelligence repository.
type failingPerfRepo struct{}

func (failingPerfRepo) Save(context.Context, entities.ProviderPerformance) error {
	return errors.New("intelligence repository unavailable")
}

func (failingPerfRepo) FindByDimension(context.Context, entities.RoutingDimension) ([]entities.ProviderPerformance, error) {
	return nil, nil
}

func (failingPerfRepo) All(context.Context) ([]entities.ProviderPerformance, error) {
	return nil, nil
}

func TestFeedbackDrainJob_RunOnce(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewFeedbackStore()
	perfRepo := repositories.NewPerformanceRepository(
		datastores.NewMemoryKeyValueStore[[]entities.ProviderPerformance]())
	ingestor := ingestion.NewDataIngestor(perfRepo, usecases.NewStaticAggregator())
	collector := usecases.NewFeedbackCollector(store)

	for i := 0; i < 3; i++ {
		status := entities.PaymentStatusCompleted
		if i == 2 {
			status = entities.PaymentStatusFailed
		}
		require.NoError(t, collector.Collect(ctx, &entities.Payment{
			Provider: entities.ProviderAdyen,
			Amount:   decimal.NewFromInt(15),
			Currency: "USD",
			Status:   status,
		}))
	}

	job := NewFeedbackDrainJob(store, ingestor, time.Minute)
	job.RunOnce(ctx)

	// Store is empty after a successful drain.
	staged, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, staged)

	all, err := perfRepo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entities.ProviderAdyen, all[0].Provider)
	assert.InDelta(t, 2.0/3.0, all[0].Metrics.AuthRate, 1e-9)
	assert.Equal(t, 250, all[0].Metrics.AvgLatencyMS)

	// Empty store drains to a no-op.
	job.RunOnce(ctx)
}

func TestFeedbackDrainJob_RecordStagedDuringDrainSurvives(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewFeedbackStore()
	perfRepo := repositories.NewPerformanceRepository(
		datastores.NewMemoryKeyValueStore[[]entities.ProviderPerformance]())
	ingestor := ingestion.NewDataIngestor(perfRepo, usecases.NewStaticAggregator())
	collector := usecases.NewFeedbackCollector(store)

	require.NoError(t, collector.Collect(ctx, &entities.Payment{
		Provider: entities.ProviderStripe,
		Amount:   decimal.NewFromInt(20),
		Currency: "USD",
		Status:   entities.PaymentStatusCompleted,
	}))

	records, err := store.Drain(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// A charge completes while the drained batch is still being
	// aggregated. Its record must not vanish with the batch.
	require.NoError(t, collector.Collect(ctx, &entities.Payment{
		Provider: entities.ProviderBraintree,
		Amount:   decimal.NewFromInt(30),
		Currency: "USD",
		Status:   entities.PaymentStatusCompleted,
	}))
	require.NoError(t, ingestor.IngestRecords(ctx, records))

	staged, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, staged, 1, "late record stays staged for the next tick")
	assert.Equal(t, entities.ProviderBraintree, staged[0].Provider)

	job := NewFeedbackDrainJob(store, ingestor, time.Minute)
	job.RunOnce(ctx)

	all, err := perfRepo.All(ctx)
	require.NoError(t, err)
	providers := make(map[entities.Provider]bool, len(all))
	for _, perf := range all {
		providers[perf.Provider] = true
	}
	assert.True(t, providers[entities.ProviderStripe])
	assert.True(t, providers[entities.ProviderBraintree], "late record reaches the repository on the next tick")
}

func TestFeedbackDrainJob_IngestFailureRestagesRecords(t *testing.T) {
	ctx := context.Background()
	store := repositories.NewFeedbackStore()
	ingestor := ingestion.NewDataIngestor(failingPerfRepo{}, usecases.NewStaticAggregator())
	collector := usecases.NewFeedbackCollector(store)

	require.NoError(t, collector.Collect(ctx, &entities.Payment{
		Provider: entities.ProviderAdyen,
		Amount:   decimal.NewFromInt(15),
		Currency: "USD",
		Status:   entities.PaymentStatusCompleted,
	}))

	job := NewFeedbackDrainJob(store, ingestor, time.Minute)
	job.RunOnce(ctx)

	staged, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, staged, 1, "failed aggregation keeps the batch staged")
	assert.Equal(t, entities.ProviderAdyen, staged[0].Provider)
}
