package repositories

import (
	"context"

	"github.com/google/uuid"
	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/pkg/utils"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	List(ctx context.Context, merchantID *uuid.UUID, pagination utils.PaginationParams) ([]*entities.Payment, int64, error)
}

type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
}
