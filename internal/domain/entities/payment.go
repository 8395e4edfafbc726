package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	domainerrors "pay-router.backend/internal/domain/errors"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
)

// legalTransitions encodes the payment state machine:
// Pending -> Authorized | Failed | Cancelled,
// Authorized -> Completed | Cancelled; everything else is terminal.
var legalTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:    {PaymentStatusAuthorized, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusAuthorized: {PaymentStatusCompleted, PaymentStatusCancelled},
}

// CanTransitionTo reports whether the status may legally move to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment represents the persisted result of a charge.
// Once ProviderPaymentID is set, the (Provider, ProviderPaymentID) pair
// is unique and never rewritten.
type Payment struct {
	ID                 uuid.UUID       `json:"id"`
	MerchantID         uuid.UUID       `json:"merchantId"`
	CustomerID         uuid.UUID       `json:"customerId"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Description        string          `json:"description,omitempty"`
	Provider           Provider        `json:"provider,omitempty"`
	ProviderPaymentID  null.String     `json:"providerPaymentId,omitempty"`
	Status             PaymentStatus   `json:"status"`
	RoutingDecision    string          `json:"routingDecision,omitempty"`
	SubscriptionID     null.String     `json:"subscriptionId,omitempty"`
	ProcessorErrorCode null.String     `json:"processorErrorCode,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// TransitionTo moves the payment to next, rejecting illegal transitions.
func (p *Payment) TransitionTo(next PaymentStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return domainerrors.ErrInvalidStateTransition
	}
	p.Status = next
	return nil
}
