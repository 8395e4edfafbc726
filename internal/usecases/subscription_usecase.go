package usecases

import (
	"context"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/pkg/utils"
)

// SubscriptionUsecase handles subscription lifecycle and exposes the
// pre-calculated route view.
type SubscriptionUsecase struct {
	subscriptionRepo domainrepos.SubscriptionRepository
	precalcRepo      domainrepos.PrecalculatedRouteRepository
}

func NewSubscriptionUsecase(
	subscriptionRepo domainrepos.SubscriptionRepository,
	precalcRepo domainrepos.PrecalculatedRouteRepository,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		subscriptionRepo: subscriptionRepo,
		precalcRepo:      precalcRepo,
	}
}

func (u *SubscriptionUsecase) CreateSubscription(ctx context.Context, sub *entities.Subscription) error {
	sub.NextRenewalAt = utils.NormalizeUTC(sub.NextRenewalAt)
	return u.subscriptionRepo.Create(ctx, sub)
}

func (u *SubscriptionUsecase) GetSubscription(ctx context.Context, id string) (*entities.Subscription, error) {
	return u.subscriptionRepo.GetByID(ctx, id)
}

// GetPrecalculatedRoute returns the cached route for a subscription, if
// one exists.
func (u *SubscriptionUsecase) GetPrecalculatedRoute(ctx context.Context, subscriptionID string) (*entities.PrecalculatedRoute, error) {
	return u.precalcRepo.FindBySubscriptionID(ctx, subscriptionID)
}
