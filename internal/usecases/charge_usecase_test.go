package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/datastores"
	"pay-router.backend/internal/infrastructure/processors"
	infrarepos "pay-router.backend/internal/infrastructure/repositories"
	"pay-router.backend/pkg/utils"
)

type stubMerchantRepo struct {
	merchants map[uuid.UUID]*entities.Merchant
}

func (s *stubMerchantRepo) Create(_ context.Context, m *entities.Merchant) error {
	s.merchants[m.ID] = m
	return nil
}

func (s *stubMerchantRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Merchant, error) {
	m, ok := s.merchants[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return m, nil
}

type stubCustomerRepo struct {
	customers map[uuid.UUID]*entities.Customer
}

func (s *stubCustomerRepo) Create(_ context.Context, c *entities.Customer) error {
	s.customers[c.ID] = c
	return nil
}

func (s *stubCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return c, nil
}

type stubPaymentRepo struct {
	payments []*entities.Payment
}

func (s *stubPaymentRepo) Create(_ context.Context, p *entities.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = utils.GenerateUUIDv7()
	}
	s.payments = append(s.payments, p)
	return nil
}

func (s *stubPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Payment, error) {
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *stubPaymentRepo) List(_ context.Context, _ *uuid.UUID, _ utils.PaginationParams) ([]*entities.Payment, int64, error) {
	return s.payments, int64(len(s.payments)), nil
}

type chargeFixture struct {
	usecase    *ChargeUsecase
	payments   *stubPaymentRepo
	precalc    domainrepos.PrecalculatedRouteRepository
	binRepo    domainrepos.CardBINRepository
	perfRepo   *memPerfRepo
	merchantID uuid.UUID
	customerID uuid.UUID
}

func newChargeFixture(t *testing.T) *chargeFixture {
	t.Helper()

	merchantID := uuid.New()
	customerID := uuid.New()

	merchants := &stubMerchantRepo{merchants: map[uuid.UUID]*entities.Merchant{
		merchantID: {ID: merchantID, BusinessName: "Acme", Status: entities.MerchantStatusActive},
	}}
	customers := &stubCustomerRepo{customers: map[uuid.UUID]*entities.Customer{
		customerID: {ID: customerID, MerchantID: merchantID, PaymentMethodToken: "pm_tok_1"},
	}}
	payments := &stubPaymentRepo{}
	precalcRepo := infrarepos.NewPrecalculatedRouteRepository(
		datastores.NewMemoryKeyValueStore[entities.PrecalculatedRoute]())
	binRepo := infrarepos.NewCardBINRepository(
		datastores.NewMemoryRelationalStore[entities.CardBIN]())
	store := infrarepos.NewFeedbackStore()

	perfRepo := newMemoryPerfRepo()
	engine := NewRoutingEngine(perfRepo, NewFeeService(),
		NewDeterministicLeastCostStrategy(), nil, entities.ProviderStripe)

	usecase := NewChargeUsecase(
		payments, merchants, customers, precalcRepo, nil, binRepo,
		engine, processors.DefaultRegistry(), NewFeedbackCollector(store),
		entities.ProviderStripe,
	)

	return &chargeFixture{
		usecase:    usecase,
		payments:   payments,
		precalc:    precalcRepo,
		binRepo:    binRepo,
		perfRepo:   perfRepo,
		merchantID: merchantID,
		customerID: customerID,
	}
}

func (f *chargeFixture) request() *entities.ChargeRequest {
	return &entities.ChargeRequest{
		MerchantID: f.merchantID,
		CustomerID: f.customerID,
		Amount:     decimal.NewFromInt(100),
		Currency:   "USD",
	}
}

func TestChargeUsecase_SuccessfulCharge(t *testing.T) {
	f := newChargeFixture(t)

	payment, err := f.usecase.CreateCharge(context.Background(), f.request())
	require.NoError(t, err)

	assert.Equal(t, entities.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, entities.ProviderInternal, payment.Provider,
		"least-cost pick at 100 USD over the static table")
	assert.True(t, payment.ProviderPaymentID.Valid)
	assert.Equal(t, "DeterministicLeastCostStrategy", payment.RoutingDecision)
	require.Len(t, f.payments.payments, 1)
}

func TestChargeUsecase_ExplicitProviderOverride(t *testing.T) {
	f := newChargeFixture(t)
	req := f.request()
	req.Provider = entities.ProviderBraintree

	payment, err := f.usecase.CreateCharge(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderBraintree, payment.Provider)
	assert.Equal(t, "Explicit provider override", payment.RoutingDecision)
}

func TestChargeUsecase_PrecalculatedRouteHonored(t *testing.T) {
	f := newChargeFixture(t)
	require.NoError(t, f.precalc.Save(context.Background(), &entities.PrecalculatedRoute{
		SubscriptionID:  "sub1",
		Provider:        entities.ProviderAdyen,
		RoutingDecision: "DeterministicLeastCostStrategy",
		ExpiresAt:       time.Now().UTC().Add(time.Hour),
	}))

	req := f.request()
	req.SubscriptionID = "sub1"

	payment, err := f.usecase.CreateCharge(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderAdyen, payment.Provider)
	assert.True(t, strings.HasPrefix(payment.RoutingDecision, "Pre-calculated: "),
		"audit %q", payment.RoutingDecision)
	assert.Equal(t, "sub1", payment.SubscriptionID.String)
}

func TestChargeUsecase_ExpiredPrecalcFallsThroughToEngine(t *testing.T) {
	f := newChargeFixture(t)
	require.NoError(t, f.precalc.Save(context.Background(), &entities.PrecalculatedRoute{
		SubscriptionID:  "sub1",
		Provider:        entities.ProviderAdyen,
		RoutingDecision: "stale",
		ExpiresAt:       time.Now().UTC().Add(-time.Hour),
	}))

	req := f.request()
	req.SubscriptionID = "sub1"

	payment, err := f.usecase.CreateCharge(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(payment.RoutingDecision, "Pre-calculated: "))
	assert.Equal(t, entities.ProviderInternal, payment.Provider)
}

func TestChargeUsecase_UnknownMerchant(t *testing.T) {
	f := newChargeFixture(t)
	req := f.request()
	req.MerchantID = uuid.New()

	_, err := f.usecase.CreateCharge(context.Background(), req)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Empty(t, f.payments.payments)
}

func TestChargeUsecase_UnknownCustomer(t *testing.T) {
	f := newChargeFixture(t)
	req := f.request()
	req.CustomerID = uuid.New()

	_, err := f.usecase.CreateCharge(context.Background(), req)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestChargeUsecase_NegativeAmountRejected(t *testing.T) {
	f := newChargeFixture(t)
	req := f.request()
	req.Amount = decimal.NewFromInt(-5)

	_, err := f.usecase.CreateCharge(context.Background(), req)
	assert.ErrorIs(t, err, domainerrors.ErrNegativeAmount)
}

func TestChargeUsecase_BINEnrichmentRoutesInternationalBucket(t *testing.T) {
	f := newChargeFixture(t)
	ctx := context.Background()

	require.NoError(t, f.binRepo.Save(ctx, entities.CardBIN{
		BIN:    "530000",
		Brand:  "Mastercard",
		Type:   "Debit",
		Alpha2: "GB",
	}))

	international := entities.DefaultDimension()
	international.Network = "mastercard"
	international.CardType = "debit"
	international.Region = "international"
	require.NoError(t, f.perfRepo.Save(ctx, entities.ProviderPerformance{
		Provider:  entities.ProviderAdyen,
		Dimension: international,
		Metrics: entities.PerformanceMetrics{
			AuthRate: 0.99,
			Cost: entities.CostStructure{
				FixedFee:           decimal.RequireFromString("0.01"),
				VariableFeePercent: decimal.RequireFromString("0.1"),
			},
		},
		DataWindow: "batch",
	}))

	req := f.request()
	req.CardBIN = "530000"

	payment, err := f.usecase.CreateCharge(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderAdyen, payment.Provider,
		"issuer metadata steers the dimension to the international row")
}

func TestChargeUsecase_ProcessorFailurePersistsFailedPayment(t *testing.T) {
	f := newChargeFixture(t)
	req := f.request()
	// Stripe's stub declines amounts above 10000; force stripe explicitly.
	req.Provider = entities.ProviderStripe
	req.Amount = decimal.NewFromInt(20000)

	payment, err := f.usecase.CreateCharge(context.Background(), req)
	require.NoError(t, err, "a declined charge is a Failed payment, not an error")
	assert.Equal(t, entities.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "amount_too_large", payment.ProcessorErrorCode.String)
	assert.False(t, payment.ProviderPaymentID.Valid)
	require.Len(t, f.payments.payments, 1)
}
