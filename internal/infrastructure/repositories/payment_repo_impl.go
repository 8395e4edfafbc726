package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/models"
	"pay-router.backend/pkg/utils"
)

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) domainrepos.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = utils.GenerateUUIDv7()
	}
	payment.CreatedAt = utils.NormalizeUTC(payment.CreatedAt)
	payment.UpdatedAt = utils.NormalizeUTC(payment.UpdatedAt)

	row := toPaymentModel(payment)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var row models.Payment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&row), nil
}

func (r *paymentRepo) List(ctx context.Context, merchantID *uuid.UUID, pagination utils.PaginationParams) ([]*entities.Payment, int64, error) {
	var rows []models.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if merchantID != nil {
		query = query.Where("merchant_id = ?", *merchantID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Payment, 0, len(rows))
	for i := range rows {
		items = append(items, toPaymentEntity(&rows[i]))
	}
	return items, total, nil
}

func toPaymentModel(p *entities.Payment) *models.Payment {
	row := &models.Payment{
		ID:              p.ID,
		MerchantID:      p.MerchantID,
		CustomerID:      p.CustomerID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Description:     p.Description,
		Provider:        string(p.Provider),
		Status:          string(p.Status),
		RoutingDecision: p.RoutingDecision,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.ProviderPaymentID.Valid {
		row.ProviderPaymentID = &p.ProviderPaymentID.String
	}
	if p.SubscriptionID.Valid {
		row.SubscriptionID = &p.SubscriptionID.String
	}
	if p.ProcessorErrorCode.Valid {
		row.ProcessorErrorCode = &p.ProcessorErrorCode.String
	}
	return row
}

func toPaymentEntity(m *models.Payment) *entities.Payment {
	p := &entities.Payment{
		ID:              m.ID,
		MerchantID:      m.MerchantID,
		CustomerID:      m.CustomerID,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Description:     m.Description,
		Provider:        entities.Provider(m.Provider),
		Status:          entities.PaymentStatus(m.Status),
		RoutingDecision: m.RoutingDecision,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.ProviderPaymentID != nil {
		p.ProviderPaymentID = null.StringFrom(*m.ProviderPaymentID)
	}
	if m.SubscriptionID != nil {
		p.SubscriptionID = null.StringFrom(*m.SubscriptionID)
	}
	if m.ProcessorErrorCode != nil {
		p.ProcessorErrorCode = null.StringFrom(*m.ProcessorErrorCode)
	}
	return p
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
