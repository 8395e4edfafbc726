package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical ingestion statuses.
const (
	RecordStatusSucceeded = "succeeded"
	RecordStatusFailed    = "failed"
)

// RawTransactionRecord is the canonical representation of a single
// transaction outcome ingested from provider reports or the internal
// feedback loop. Records are append-only.
type RawTransactionRecord struct {
	Provider       Provider          `json:"provider"`
	PaymentForm    string            `json:"payment_form"`
	ProcessingType string            `json:"processing_type"`
	Amount         decimal.Decimal   `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	ErrorCode      string            `json:"error_code,omitempty"`
	LatencyMS      int               `json:"latency_ms"`
	BIN            string            `json:"bin"`
	CardType       string            `json:"card_type"`
	Network        string            `json:"network"`
	Region         string            `json:"region"`
	Timestamp      time.Time         `json:"timestamp"`
	ExtraFields    map[string]string `json:"extra_fields,omitempty"`
}

// Succeeded reports whether the record represents an authorized charge.
func (r RawTransactionRecord) Succeeded() bool {
	return r.Status == RecordStatusSucceeded
}
