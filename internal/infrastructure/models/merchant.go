package models

import (
	"time"

	"github.com/google/uuid"
)

type Merchant struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessName string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	TaxID        *string   `gorm:"type:varchar(64);uniqueIndex"`
	Status       string    `gorm:"type:varchar(32);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Merchant) TableName() string {
	return "merchants"
}

type Customer struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	MerchantID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name               string    `gorm:"type:varchar(255)"`
	Email              string    `gorm:"type:varchar(255)"`
	PaymentMethodToken string    `gorm:"type:varchar(255);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Customer) TableName() string {
	return "customers"
}
