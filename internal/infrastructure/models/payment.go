package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payment struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MerchantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount             decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	Description        string          `gorm:"type:text"`
	Provider           string          `gorm:"type:varchar(32);uniqueIndex:idx_provider_txid"`
	ProviderPaymentID  *string         `gorm:"type:varchar(255);uniqueIndex:idx_provider_txid"`
	Status             string          `gorm:"type:varchar(32);not null;index"`
	RoutingDecision    string          `gorm:"type:text"`
	SubscriptionID     *string         `gorm:"type:varchar(64);index"`
	ProcessorErrorCode *string         `gorm:"type:varchar(64)"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Payment) TableName() string {
	return "payments"
}
