package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/internal/infrastructure/processors"
	"pay-router.backend/pkg/logger"
	"pay-router.backend/pkg/metrics"
	"pay-router.backend/pkg/utils"
)

const processorTimeout = 5 * time.Second

// ChargeUsecase is the thin sequencer of a charge: validation, pre-calc
// lookup, routing, processor dispatch, persistence and feedback emission.
// A charge either returns a persisted Payment (possibly Failed) or an
// error; nothing is dropped silently.
type ChargeUsecase struct {
	paymentRepo     domainrepos.PaymentRepository
	merchantRepo    domainrepos.MerchantRepository
	customerRepo    domainrepos.CustomerRepository
	precalcRepo     domainrepos.PrecalculatedRouteRepository
	interchangeRepo domainrepos.InterchangeFeeRepository
	binRepo         domainrepos.CardBINRepository
	engine          *RoutingEngine
	registry        *processors.Registry
	collector       *FeedbackCollector
	defaultProvider entities.Provider
}

func NewChargeUsecase(
	paymentRepo domainrepos.PaymentRepository,
	merchantRepo domainrepos.MerchantRepository,
	customerRepo domainrepos.CustomerRepository,
	precalcRepo domainrepos.PrecalculatedRouteRepository,
	interchangeRepo domainrepos.InterchangeFeeRepository,
	binRepo domainrepos.CardBINRepository,
	engine *RoutingEngine,
	registry *processors.Registry,
	collector *FeedbackCollector,
	defaultProvider entities.Provider,
) *ChargeUsecase {
	if defaultProvider == "" {
		defaultProvider = entities.ProviderStripe
	}
	return &ChargeUsecase{
		paymentRepo:     paymentRepo,
		merchantRepo:    merchantRepo,
		customerRepo:    customerRepo,
		precalcRepo:     precalcRepo,
		interchangeRepo: interchangeRepo,
		binRepo:         binRepo,
		engine:          engine,
		registry:        registry,
		collector:       collector,
		defaultProvider: defaultProvider,
	}
}

// CreateCharge executes the full charge flow for a request.
func (u *ChargeUsecase) CreateCharge(ctx context.Context, req *entities.ChargeRequest) (*entities.Payment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	merchant, err := u.merchantRepo.GetByID(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant.Status != entities.MerchantStatusActive {
		return nil, domainerrors.ErrMerchantNotActive
	}

	customer, err := u.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	u.enrich(ctx, req)

	decision := u.route(ctx, req)

	adapter, ok := u.registry.Get(decision.Provider)
	if !ok {
		return nil, domainerrors.ErrProcessorNotRegistered
	}

	procCtx, cancel := context.WithTimeout(ctx, processorTimeout)
	started := time.Now()
	resp := adapter.Charge(procCtx, entities.ProcessorRequest{
		Amount:             req.Amount,
		Currency:           req.Currency,
		PaymentMethodToken: customer.PaymentMethodToken,
		MerchantID:         req.MerchantID,
		CustomerID:         req.CustomerID,
		Description:        req.Description,
	})
	cancel()
	metrics.ChargeLatency.WithLabelValues(string(decision.Provider)).Observe(time.Since(started).Seconds())

	payment := &entities.Payment{
		MerchantID:      req.MerchantID,
		CustomerID:      req.CustomerID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Description:     req.Description,
		Provider:        decision.Provider,
		Status:          entities.PaymentStatusPending,
		RoutingDecision: decision.Reason,
		UpdatedAt:       utils.NowUTC(),
	}

	// The terminal status is reached through the state machine, so an
	// illegal jump surfaces as an error instead of a silent overwrite.
	steps := []entities.PaymentStatus{entities.PaymentStatusFailed}
	if resp.Status == entities.ProcessorStatusSuccess {
		steps = []entities.PaymentStatus{entities.PaymentStatusAuthorized, entities.PaymentStatusCompleted}
	}
	for _, next := range steps {
		if err := payment.TransitionTo(next); err != nil {
			return nil, err
		}
	}
	if resp.ProcessorTransactionID != "" {
		payment.ProviderPaymentID = null.StringFrom(resp.ProcessorTransactionID)
	}
	if resp.ErrorCode != "" {
		payment.ProcessorErrorCode = null.StringFrom(resp.ErrorCode)
	}
	if req.SubscriptionID != "" {
		payment.SubscriptionID = null.StringFrom(req.SubscriptionID)
	}

	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	metrics.ChargeResults.WithLabelValues(string(decision.Provider), string(payment.Status)).Inc()

	if u.collector != nil {
		if err := u.collector.Collect(ctx, payment); err != nil {
			logger.Warn(ctx, "feedback collection failed",
				zap.String("payment_id", payment.ID.String()),
				zap.Error(err))
		}
	}

	return payment, nil
}

// route resolves the provider for the request: a valid pre-calculated
// route wins, then the live engine, then the configured default.
func (u *ChargeUsecase) route(ctx context.Context, req *entities.ChargeRequest) entities.RouteDecision {
	if req.SubscriptionID != "" && u.precalcRepo != nil {
		precalc, err := u.precalcRepo.FindBySubscriptionID(ctx, req.SubscriptionID)
		if err == nil && precalc.ExpiresAt.After(utils.NowUTC()) {
			metrics.PrecalcHits.Inc()
			logger.Info(ctx, "using pre-calculated route",
				zap.String("subscription_id", req.SubscriptionID),
				zap.String("provider", string(precalc.Provider)))
			return entities.RouteDecision{
				Provider: precalc.Provider,
				Reason:   "Pre-calculated: " + precalc.RoutingDecision,
			}
		}
	}

	decision, err := u.engine.FindBestRoute(ctx, req)
	if err != nil {
		logger.Error(ctx, "routing engine unavailable", zap.Error(err))
		return entities.RouteDecision{
			Provider: u.defaultProvider,
			Reason:   "Fallback: Routing Engine Unavailable",
		}
	}
	return decision
}

// enrich attaches context the strategies consume: BIN issuer metadata,
// interchange schedules and the provider health snapshot. Enrichment
// failures degrade to an un-enriched request, never to a failed charge.
func (u *ChargeUsecase) enrich(ctx context.Context, req *entities.ChargeRequest) {
	if req.BINMetadata == nil && req.CardBIN != "" && u.binRepo != nil {
		meta, err := u.binRepo.FindByBIN(ctx, req.CardBIN)
		if err != nil {
			logger.Warn(ctx, "bin enrichment failed",
				zap.String("bin", req.CardBIN), zap.Error(err))
		} else {
			req.BINMetadata = meta
		}
	}
	if req.InterchangeFees == nil && u.interchangeRepo != nil {
		fees, err := u.interchangeRepo.ListAll(ctx)
		if err != nil {
			logger.Warn(ctx, "interchange enrichment failed", zap.Error(err))
		} else {
			req.InterchangeFees = fees
		}
	}
	if req.ProviderHealth == nil && u.engine != nil && u.engine.health != nil {
		req.ProviderHealth = u.engine.health.Snapshot(ctx, providerNames())
	}
}

// GetPayment looks up a persisted payment.
func (u *ChargeUsecase) GetPayment(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	return u.paymentRepo.GetByID(ctx, id)
}

// ListPayments returns payments, optionally scoped to a merchant.
func (u *ChargeUsecase) ListPayments(ctx context.Context, merchantID *uuid.UUID, pagination utils.PaginationParams) ([]*entities.Payment, int64, error) {
	return u.paymentRepo.List(ctx, merchantID, pagination)
}
