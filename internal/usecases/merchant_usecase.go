package usecases

import (
	"context"

	"github.com/google/uuid"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
)

// MerchantUsecase handles merchant and customer onboarding.
type MerchantUsecase struct {
	merchantRepo domainrepos.MerchantRepository
	customerRepo domainrepos.CustomerRepository
}

func NewMerchantUsecase(
	merchantRepo domainrepos.MerchantRepository,
	customerRepo domainrepos.CustomerRepository,
) *MerchantUsecase {
	return &MerchantUsecase{
		merchantRepo: merchantRepo,
		customerRepo: customerRepo,
	}
}

func (u *MerchantUsecase) CreateMerchant(ctx context.Context, merchant *entities.Merchant) error {
	return u.merchantRepo.Create(ctx, merchant)
}

func (u *MerchantUsecase) GetMerchant(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	return u.merchantRepo.GetByID(ctx, id)
}

func (u *MerchantUsecase) CreateCustomer(ctx context.Context, customer *entities.Customer) error {
	return u.customerRepo.Create(ctx, customer)
}

func (u *MerchantUsecase) GetCustomer(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	return u.customerRepo.GetByID(ctx, id)
}
