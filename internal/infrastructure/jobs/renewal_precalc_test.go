package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/internal/infrastructure/datastores"
	"pay-router.backend/internal/infrastructure/repositories"
	"pay-router.backend/internal/usecases"
)

type stubSubscriptionRepo struct {
	subs []*entities.Subscription
	err  error
}

func (s *stubSubscriptionRepo) Create(_ context.Context, _ *entities.Subscription) error {
	return nil
}

func (s *stubSubscriptionRepo) GetByID(_ context.Context, _ string) (*entities.Subscription, error) {
	return nil, errors.New("not implemented")
}

func (s *stubSubscriptionRepo) FindUpcomingRenewals(_ context.Context, _, _ time.Time) ([]*entities.Subscription, error) {
	return s.subs, s.err
}

func newTestEngine() *usecases.RoutingEngine {
	perfRepo := repositories.NewPerformanceRepository(
		datastores.NewMemoryKeyValueStore[[]entities.ProviderPerformance]())
	return usecases.NewRoutingEngine(
		perfRepo,
		usecases.NewFeeService(),
		usecases.NewDeterministicLeastCostStrategy(),
		nil,
		entities.ProviderStripe,
	)
}

func TestRenewalPrecalcJob_RunOnce(t *testing.T) {
	now := time.Now().UTC()
	subs := &stubSubscriptionRepo{subs: []*entities.Subscription{
		{
			ID:            "sub_a",
			CustomerID:    uuid.New(),
			MerchantID:    uuid.New(),
			Amount:        decimal.NewFromInt(30),
			Currency:      "USD",
			NextRenewalAt: now.Add(48 * time.Hour),
			Status:        entities.SubscriptionStatusActive,
		},
		{
			ID:            "sub_b",
			CustomerID:    uuid.New(),
			MerchantID:    uuid.New(),
			Amount:        decimal.NewFromInt(5),
			Currency:      "USD",
			NextRenewalAt: now.Add(72 * time.Hour),
			Status:        entities.SubscriptionStatusActive,
		},
	}}
	precalcRepo := repositories.NewPrecalculatedRouteRepository(
		datastores.NewMemoryKeyValueStore[entities.PrecalculatedRoute]())

	job := NewRenewalPrecalcJob(subs, precalcRepo, newTestEngine(), time.Minute, 7*24*time.Hour)
	job.RunOnce(context.Background())

	routeA, err := precalcRepo.FindBySubscriptionID(context.Background(), "sub_a")
	require.NoError(t, err)
	assert.True(t, routeA.Provider.Valid())
	assert.NotEmpty(t, routeA.RoutingDecision)
	assert.WithinDuration(t, now.Add(48*time.Hour).Add(24*time.Hour), routeA.ExpiresAt, time.Second,
		"route stays valid until a day past the renewal")

	_, err = precalcRepo.FindBySubscriptionID(context.Background(), "sub_b")
	assert.NoError(t, err)
}

func TestRenewalPrecalcJob_TrimsExpiredRoutes(t *testing.T) {
	precalcRepo := repositories.NewPrecalculatedRouteRepository(
		datastores.NewMemoryKeyValueStore[entities.PrecalculatedRoute]())
	require.NoError(t, precalcRepo.Save(context.Background(), &entities.PrecalculatedRoute{
		SubscriptionID: "sub_old",
		Provider:       entities.ProviderAdyen,
		ExpiresAt:      time.Now().UTC().Add(-time.Hour),
	}))

	job := NewRenewalPrecalcJob(&stubSubscriptionRepo{}, precalcRepo, newTestEngine(), time.Minute, time.Hour)
	job.RunOnce(context.Background())

	_, err := precalcRepo.FindBySubscriptionID(context.Background(), "sub_old")
	assert.Error(t, err)
}

func TestRenewalPrecalcJob_StartStop(t *testing.T) {
	job := NewRenewalPrecalcJob(&stubSubscriptionRepo{}, repositories.NewPrecalculatedRouteRepository(
		datastores.NewMemoryKeyValueStore[entities.PrecalculatedRoute]()), newTestEngine(), 10*time.Millisecond, time.Hour)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop")
	}
}
