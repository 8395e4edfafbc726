package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/models"
	"pay-router.backend/pkg/utils"
)

type merchantRepo struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) domainrepos.MerchantRepository {
	return &merchantRepo{db: db}
}

func (r *merchantRepo) Create(ctx context.Context, merchant *entities.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = utils.GenerateUUIDv7()
	}
	if merchant.Status == "" {
		merchant.Status = entities.MerchantStatusActive
	}
	row := &models.Merchant{
		ID:           merchant.ID,
		BusinessName: merchant.BusinessName,
		Email:        merchant.Email,
		Status:       string(merchant.Status),
		CreatedAt:    utils.NowUTC(),
		UpdatedAt:    utils.NowUTC(),
	}
	if merchant.TaxID.Valid {
		row.TaxID = &merchant.TaxID.String
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *merchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var row models.Merchant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	m := &entities.Merchant{
		ID:           row.ID,
		BusinessName: row.BusinessName,
		Email:        row.Email,
		Status:       entities.MerchantStatus(row.Status),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.TaxID != nil {
		m.TaxID = null.StringFrom(*row.TaxID)
	}
	return m, nil
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) domainrepos.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *entities.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = utils.GenerateUUIDv7()
	}
	row := &models.Customer{
		ID:                 customer.ID,
		MerchantID:         customer.MerchantID,
		Name:               customer.Name,
		Email:              customer.Email,
		PaymentMethodToken: customer.PaymentMethodToken,
		CreatedAt:          utils.NowUTC(),
		UpdatedAt:          utils.NowUTC(),
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var row models.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Customer{
		ID:                 row.ID,
		MerchantID:         row.MerchantID,
		Name:               row.Name,
		Email:              row.Email,
		PaymentMethodToken: row.PaymentMethodToken,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}, nil
}
