package repositories

import (
	"context"
	"time"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/pkg/utils"
)

// precalculatedRouteRepo keeps pre-calculated routes in a KeyValueStore
// keyed by subscription id, so the at-renewal lookup is a single point
// read. Save is an idempotent upsert.
type precalculatedRouteRepo struct {
	store domainrepos.KeyValueStore[entities.PrecalculatedRoute]
}

func NewPrecalculatedRouteRepository(store domainrepos.KeyValueStore[entities.PrecalculatedRoute]) domainrepos.PrecalculatedRouteRepository {
	return &precalculatedRouteRepo{store: store}
}

func (r *precalculatedRouteRepo) Save(ctx context.Context, route *entities.PrecalculatedRoute) error {
	route.ExpiresAt = utils.NormalizeUTC(route.ExpiresAt)
	if route.CreatedAt.IsZero() {
		route.CreatedAt = utils.NowUTC()
	}
	route.CreatedAt = utils.NormalizeUTC(route.CreatedAt)
	return r.store.Set(ctx, route.SubscriptionID, *route)
}

func (r *precalculatedRouteRepo) FindBySubscriptionID(ctx context.Context, subscriptionID string) (*entities.PrecalculatedRoute, error) {
	route, ok, err := r.store.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return &route, nil
}

func (r *precalculatedRouteRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	now = utils.NormalizeUTC(now)
	routes, err := r.store.Values(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, route := range routes {
		if route.Expired(now) {
			deleted, err := r.store.Delete(ctx, route.SubscriptionID)
			if err != nil {
				return removed, err
			}
			if deleted {
				removed++
			}
		}
	}
	return removed, nil
}
