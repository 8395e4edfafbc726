package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MerchantStatus represents merchant status
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "active"
	MerchantStatusSuspended MerchantStatus = "suspended"
)

// Merchant represents a merchant account able to receive charges.
// TaxID is unique across merchants when present.
type Merchant struct {
	ID           uuid.UUID      `json:"id"`
	BusinessName string         `json:"businessName"`
	Email        string         `json:"email"`
	TaxID        null.String    `json:"taxId,omitempty"`
	Status       MerchantStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Customer represents a paying customer. PaymentMethodToken is the only
// cardholder data the system ever stores.
type Customer struct {
	ID                 uuid.UUID `json:"id"`
	MerchantID         uuid.UUID `json:"merchantId"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	PaymentMethodToken string    `json:"paymentMethodToken"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
