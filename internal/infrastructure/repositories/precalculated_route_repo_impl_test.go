package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	"pay-router.backend/internal/infrastructure/datastores"
)

func TestPrecalculatedRouteRepo_SaveOverwritesAndFinds(t *testing.T) {
	repo := NewPrecalculatedRouteRepository(datastores.NewMemoryKeyValueStore[entities.PrecalculatedRoute]())
	ctx := context.Background()
	expires := time.Now().UTC().Add(24 * time.Hour)

	require.NoError(t, repo.Save(ctx, &entities.PrecalculatedRoute{
		SubscriptionID:  "sub_1",
		Provider:        entities.ProviderStripe,
		RoutingDecision: "Pre-calculated: lowest cost for renewal",
		ExpiresAt:       expires,
	}))
	require.NoError(t, repo.Save(ctx, &entities.PrecalculatedRoute{
		SubscriptionID:  "sub_1",
		Provider:        entities.ProviderAdyen,
		RoutingDecision: "Pre-calculated: recalculated on next sweep",
		ExpiresAt:       expires,
	}))

	got, err := repo.FindBySubscriptionID(ctx, "sub_1")
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderAdyen, got.Provider, "latest pre-calculation wins")
	assert.False(t, got.CreatedAt.IsZero())

	_, err = repo.FindBySubscriptionID(ctx, "sub_missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPrecalculatedRouteRepo_DeleteExpired(t *testing.T) {
	repo := NewPrecalculatedRouteRepository(datastores.NewMemoryKeyValueStore[entities.PrecalculatedRoute]())
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &entities.PrecalculatedRoute{
		SubscriptionID: "sub_stale",
		Provider:       entities.ProviderStripe,
		ExpiresAt:      now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Save(ctx, &entities.PrecalculatedRoute{
		SubscriptionID: "sub_fresh",
		Provider:       entities.ProviderStripe,
		ExpiresAt:      now.Add(time.Hour),
	}))

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.FindBySubscriptionID(ctx, "sub_stale")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = repo.FindBySubscriptionID(ctx, "sub_fresh")
	assert.NoError(t, err)
}
