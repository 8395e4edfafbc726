package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/models"
	"pay-router.backend/pkg/utils"
)

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) domainrepos.SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *entities.Subscription) error {
	if sub.ID == "" {
		sub.ID = "sub_" + utils.GenerateUUIDv7().String()
	}
	if sub.Status == "" {
		sub.Status = entities.SubscriptionStatusActive
	}
	row := &models.Subscription{
		ID:            sub.ID,
		CustomerID:    sub.CustomerID,
		MerchantID:    sub.MerchantID,
		Amount:        sub.Amount,
		Currency:      sub.Currency,
		NextRenewalAt: utils.NormalizeUTC(sub.NextRenewalAt),
		Status:        string(sub.Status),
		CreatedAt:     utils.NowUTC(),
		UpdatedAt:     utils.NowUTC(),
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *subscriptionRepo) GetByID(ctx context.Context, id string) (*entities.Subscription, error) {
	var row models.Subscription
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toSubscriptionEntity(&row), nil
}

func (r *subscriptionRepo) FindUpcomingRenewals(ctx context.Context, from, to time.Time) ([]*entities.Subscription, error) {
	var rows []models.Subscription
	err := r.db.WithContext(ctx).
		Where("next_renewal_at >= ? AND next_renewal_at <= ? AND status = ?",
			utils.NormalizeUTC(from), utils.NormalizeUTC(to), string(entities.SubscriptionStatusActive)).
		Order("next_renewal_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]*entities.Subscription, 0, len(rows))
	for i := range rows {
		items = append(items, toSubscriptionEntity(&rows[i]))
	}
	return items, nil
}

func toSubscriptionEntity(m *models.Subscription) *entities.Subscription {
	return &entities.Subscription{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		MerchantID:    m.MerchantID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		NextRenewalAt: m.NextRenewalAt,
		Status:        entities.SubscriptionStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
