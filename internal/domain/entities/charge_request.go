package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerrors "pay-router.backend/internal/domain/errors"
)

// ChargeRequest represents an incoming request to charge a customer.
// The enrichment fields are populated by orchestration before routing;
// callers leave them empty.
type ChargeRequest struct {
	MerchantID     uuid.UUID       `json:"merchantId" binding:"required"`
	CustomerID     uuid.UUID       `json:"customerId" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Currency       string          `json:"currency" binding:"required"`
	Description    string          `json:"description,omitempty"`
	Provider       Provider        `json:"provider,omitempty"`
	SubscriptionID string          `json:"subscriptionId,omitempty"`
	CardBIN        string          `json:"cardBin,omitempty"`

	// Enrichment, attached during orchestration.
	BINMetadata       *CardBIN          `json:"binMetadata,omitempty"`
	InterchangeFees   []InterchangeFee  `json:"interchangeFees,omitempty"`
	ProviderHealth    map[string]string `json:"providerHealth,omitempty"`
	PaymentMethodType string            `json:"paymentMethodType,omitempty"`
	PaymentForm       string            `json:"paymentForm,omitempty"`
	NetworkTokenized  bool              `json:"networkTokenized,omitempty"`
}

// Validate checks structural constraints that hold regardless of state.
func (r *ChargeRequest) Validate() error {
	if r.Amount.IsNegative() {
		return domainerrors.ErrNegativeAmount
	}
	if len(r.Currency) != 3 {
		return domainerrors.ErrBadCurrency
	}
	if r.Provider != "" && !r.Provider.Valid() {
		return domainerrors.ErrUnknownProvider
	}
	return nil
}
