package repositories

import (
	"context"

	"pay-router.backend/internal/domain/entities"
)

// PerformanceRepository is the intelligence repository: a dimensioned
// index of provider performance. Save upserts by (dimension, provider) and
// must be atomic with respect to concurrent FindByDimension on the same
// key.
type PerformanceRepository interface {
	Save(ctx context.Context, perf entities.ProviderPerformance) error
	FindByDimension(ctx context.Context, dim entities.RoutingDimension) ([]entities.ProviderPerformance, error)
	All(ctx context.Context) ([]entities.ProviderPerformance, error)
}

// CardBINRepository stores issuer metadata keyed by BIN prefix.
type CardBINRepository interface {
	Save(ctx context.Context, bin entities.CardBIN) error
	FindByBIN(ctx context.Context, binPrefix string) (*entities.CardBIN, error)
	ListAll(ctx context.Context) ([]entities.CardBIN, error)
}

// InterchangeFeeRepository stores interchange fee schedules.
type InterchangeFeeRepository interface {
	Save(ctx context.Context, fee entities.InterchangeFee) error
	ListAll(ctx context.Context) ([]entities.InterchangeFee, error)
}
