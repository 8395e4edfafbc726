package usecases

import (
	"context"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/pkg/utils"
)

// Defaults used when the charge path cannot observe a field. Latency will
// become real once adapters report timing.
const (
	feedbackLatencyMS   = 250
	feedbackErrorCode   = "processor_error"
	feedbackPaymentForm = "card_on_file"
	feedbackProcessing  = "standard"
	feedbackNetwork     = "visa"
	feedbackCardType    = "credit"
	feedbackBIN         = "000000"
	feedbackRegion      = "domestic"
)

// FeedbackCollector maps terminal payments into canonical transaction
// records and stages them for the drain tick. Collection is synchronous at
// the end of a charge; aggregation happens later, off the hot path.
type FeedbackCollector struct {
	store domainrepos.FeedbackStore
}

func NewFeedbackCollector(store domainrepos.FeedbackStore) *FeedbackCollector {
	return &FeedbackCollector{store: store}
}

func (c *FeedbackCollector) Collect(ctx context.Context, payment *entities.Payment) error {
	status := entities.RecordStatusFailed
	errorCode := feedbackErrorCode
	if payment.Status == entities.PaymentStatusCompleted {
		status = entities.RecordStatusSucceeded
		errorCode = ""
	}

	timestamp := payment.UpdatedAt
	if timestamp.IsZero() {
		timestamp = utils.NowUTC()
	}

	return c.store.AddRecord(ctx, entities.RawTransactionRecord{
		Provider:       payment.Provider,
		PaymentForm:    feedbackPaymentForm,
		ProcessingType: feedbackProcessing,
		Amount:         payment.Amount,
		Currency:       payment.Currency,
		Status:         status,
		ErrorCode:      errorCode,
		LatencyMS:      feedbackLatencyMS,
		BIN:            feedbackBIN,
		CardType:       feedbackCardType,
		Network:        feedbackNetwork,
		Region:         feedbackRegion,
		Timestamp:      utils.NormalizeUTC(timestamp),
	})
}
