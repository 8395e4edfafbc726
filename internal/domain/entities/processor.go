package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProcessorStatus is the closed status set of the adapter contract.
type ProcessorStatus string

const (
	ProcessorStatusSuccess        ProcessorStatus = "success"
	ProcessorStatusFailure        ProcessorStatus = "failure"
	ProcessorStatusPending        ProcessorStatus = "pending"
	ProcessorStatusRequiresAction ProcessorStatus = "requires_action"
)

// ProcessorRequest is the standardized charge request handed to adapters.
type ProcessorRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	PaymentMethodToken string          `json:"paymentMethodToken"`
	MerchantID         uuid.UUID       `json:"merchantId"`
	CustomerID         uuid.UUID       `json:"customerId"`
	Description        string          `json:"description,omitempty"`
}

// ProcessorResponse is the standardized adapter reply. Adapters never
// return transport errors; failures map to StatusFailure with ErrorCode.
type ProcessorResponse struct {
	Status                 ProcessorStatus        `json:"status"`
	ProcessorTransactionID string                 `json:"processorTransactionId,omitempty"`
	ErrorCode              string                 `json:"errorCode,omitempty"`
	ErrorMessage           string                 `json:"errorMessage,omitempty"`
	RawResponse            map[string]interface{} `json:"rawResponse,omitempty"`
}
