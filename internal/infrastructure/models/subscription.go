package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Subscription struct {
	ID            string          `gorm:"type:varchar(64);primaryKey"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MerchantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	NextRenewalAt time.Time       `gorm:"not null;index"`
	Status        string          `gorm:"type:varchar(32);not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Subscription) TableName() string {
	return "subscriptions"
}
