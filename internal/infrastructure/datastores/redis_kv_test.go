package datastores

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
)

func newTestRedis(t *testing.T) *goredis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

func TestRedisKeyValueStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRedisKeyValueStore[[]entities.ProviderPerformance](newTestRedis(t), "perf")

	dim := entities.DefaultDimension()
	dim.Network = "visa"
	dim.Extras = map[string]string{"merchant_category": "5411"}

	perf := entities.ProviderPerformance{
		Provider:  entities.ProviderAdyen,
		Dimension: dim,
		Metrics: entities.PerformanceMetrics{
			AuthRate:     0.97,
			FraudRate:    0.01,
			AvgLatencyMS: 180,
		},
		DataWindow: "batch",
	}

	require.NoError(t, store.Set(ctx, dim.CanonicalKey(), []entities.ProviderPerformance{perf}))

	got, ok, err := store.Get(ctx, dim.CanonicalKey())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	require.Equal(t, entities.ProviderAdyen, got[0].Provider)
	require.True(t, got[0].Dimension.Equal(dim), "dimension round-trips including extras")
	require.Equal(t, 0.97, got[0].Metrics.AuthRate)
}

func TestRedisKeyValueStore_MissingAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewRedisKeyValueStore[entities.PrecalculatedRoute](newTestRedis(t), "precalc")

	_, ok, err := store.Get(ctx, "sub-404")
	require.NoError(t, err)
	require.False(t, ok)

	route := entities.PrecalculatedRoute{
		SubscriptionID:  "sub1",
		Provider:        entities.ProviderAdyen,
		RoutingDecision: "least cost",
		ExpiresAt:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Set(ctx, route.SubscriptionID, route))

	got, ok, err := store.Get(ctx, "sub1")
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.ExpiresAt.Equal(route.ExpiresAt), "UTC timestamps round-trip")

	deleted, err := store.Delete(ctx, "sub1")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = store.Delete(ctx, "sub1")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestRedisKeyValueStore_ValuesScansNamespace(t *testing.T) {
	ctx := context.Background()
	client := newTestRedis(t)
	store := NewRedisKeyValueStore[string](client, "ns")
	other := NewRedisKeyValueStore[string](client, "other")

	require.NoError(t, store.Set(ctx, "k1", "v1"))
	require.NoError(t, store.Set(ctx, "k2", "v2"))
	require.NoError(t, other.Set(ctx, "k3", "v3"))

	values, err := store.Values(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"v1", "v2"}, values)
}
