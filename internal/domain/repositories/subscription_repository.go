package repositories

import (
	"context"
	"time"

	"pay-router.backend/internal/domain/entities"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entities.Subscription) error
	GetByID(ctx context.Context, id string) (*entities.Subscription, error)
	// FindUpcomingRenewals returns Active subscriptions whose next renewal
	// falls inside [from, to].
	FindUpcomingRenewals(ctx context.Context, from, to time.Time) ([]*entities.Subscription, error)
}

// PrecalculatedRouteRepository stores at most one route per subscription
// id; Save has upsert semantics.
type PrecalculatedRouteRepository interface {
	Save(ctx context.Context, route *entities.PrecalculatedRoute) error
	FindBySubscriptionID(ctx context.Context, subscriptionID string) (*entities.PrecalculatedRoute, error)
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
