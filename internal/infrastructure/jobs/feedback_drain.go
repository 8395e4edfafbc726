package jobs

import (
	"context"
	"log"
	"time"

	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/ingestion"
	"pay-router.backend/pkg/metrics"
)

// FeedbackDrainJob periodically takes the staged feedback records out of
// the staging store and folds them into the intelligence repository.
// Draining off the charge path keeps live latency unaffected.
type FeedbackDrainJob struct {
	store    domainrepos.FeedbackStore
	ingestor *ingestion.DataIngestor
	interval time.Duration
	stop     chan struct{}
}

func NewFeedbackDrainJob(
	store domainrepos.FeedbackStore,
	ingestor *ingestion.DataIngestor,
	interval time.Duration,
) *FeedbackDrainJob {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &FeedbackDrainJob{
		store:    store,
		ingestor: ingestor,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *FeedbackDrainJob) Start(ctx context.Context) {
	log.Printf("🕐 Starting feedback drain job (every %s)...", j.interval)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Feedback drain job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Feedback drain job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

func (j *FeedbackDrainJob) Stop() {
	close(j.stop)
}

// RunOnce drains the staging store once. The drain is atomic, so records
// staged while the batch is being aggregated land in the next tick. A
// failed ingest restages the drained records instead of dropping them.
func (j *FeedbackDrainJob) RunOnce(ctx context.Context) {
	records, err := j.store.Drain(ctx)
	if err != nil {
		log.Printf("❌ Error draining feedback records: %v", err)
		return
	}
	if len(records) == 0 {
		return
	}
	if err := j.ingestor.IngestRecords(ctx, records); err != nil {
		log.Printf("❌ Error aggregating feedback records: %v", err)
		for _, record := range records {
			if err := j.store.AddRecord(ctx, record); err != nil {
				log.Printf("❌ Error restaging feedback record: %v", err)
			}
		}
		return
	}
	metrics.FeedbackDrained.Add(float64(len(records)))
	log.Printf("✅ Drained %d feedback records into the intelligence repository", len(records))
}
