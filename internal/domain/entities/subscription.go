package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents subscription status
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// Subscription represents a recurring billing agreement. NextRenewalAt is
// always UTC.
type Subscription struct {
	ID            string             `json:"id"`
	CustomerID    uuid.UUID          `json:"customerId"`
	MerchantID    uuid.UUID          `json:"merchantId"`
	Amount        decimal.Decimal    `json:"amount"`
	Currency      string             `json:"currency"`
	NextRenewalAt time.Time          `json:"nextRenewalAt"`
	Status        SubscriptionStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// PrecalculatedRoute is a routing decision computed ahead of a known
// subscription renewal. At most one row exists per subscription id; rows
// past ExpiresAt are logically invalid even before deletion.
type PrecalculatedRoute struct {
	SubscriptionID  string    `json:"subscriptionId"`
	Provider        Provider  `json:"provider"`
	RoutingDecision string    `json:"routingDecision"`
	ExpiresAt       time.Time `json:"expiresAt"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Expired reports whether the route is no longer usable at now.
func (r PrecalculatedRoute) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}
