package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"pay-router.backend/internal/domain/entities"
	domainrepos "pay-router.backend/internal/domain/repositories"
	"pay-router.backend/pkg/logger"
	"pay-router.backend/pkg/metrics"
)

// HealthReader supplies the real-time provider health snapshot. Keys are
// lowercased provider names; absent providers are treated as "up".
type HealthReader interface {
	Snapshot(ctx context.Context, providers []string) map[string]string
}

// RoutingEngine orchestrates a routing call: dimension derivation,
// reconciliation, strategy delegation and circuit-breaker fallback. The
// engine never surfaces a strategy failure; a charge always gets a
// provider.
type RoutingEngine struct {
	perfRepo        domainrepos.PerformanceRepository
	fees            *FeeService
	strategy        DecisionStrategy
	fallback        DecisionStrategy
	health          HealthReader
	defaultProvider entities.Provider
}

func NewRoutingEngine(
	perfRepo domainrepos.PerformanceRepository,
	fees *FeeService,
	strategy DecisionStrategy,
	health HealthReader,
	defaultProvider entities.Provider,
) *RoutingEngine {
	if defaultProvider == "" {
		defaultProvider = entities.ProviderStripe
	}
	return &RoutingEngine{
		perfRepo:        perfRepo,
		fees:            fees,
		strategy:        strategy,
		fallback:        NewDeterministicLeastCostStrategy(),
		health:          health,
		defaultProvider: defaultProvider,
	}
}

// FindBestRoute decides the provider for a charge request. An explicit
// provider on the request wins over everything. Errors are returned only
// for infrastructure failures; decision failures degrade through the
// fallback chain.
func (e *RoutingEngine) FindBestRoute(ctx context.Context, req *entities.ChargeRequest) (entities.RouteDecision, error) {
	if req.Provider != "" {
		return entities.RouteDecision{
			Provider: req.Provider,
			Reason:   "Explicit provider override",
		}, nil
	}

	dim := e.dimensionFor(req)

	health := req.ProviderHealth
	if health == nil && e.health != nil {
		health = e.health.Snapshot(ctx, providerNames())
	}

	performance, err := e.perfRepo.FindByDimension(ctx, dim)
	if err != nil {
		return entities.RouteDecision{}, err
	}

	candidates := ReconcileProviders(dim, e.fees, performance, health)
	if len(candidates) == 0 {
		logger.Warn(ctx, "no route candidates after reconciliation",
			zap.String("dimension", dim.CanonicalKey()))
		return entities.RouteDecision{
			Provider: e.defaultProvider,
			Reason:   "Fallback: no route candidates",
		}, nil
	}

	provider, err := e.strategy.Decide(ctx, req, candidates)
	strategyName := e.strategy.Name()
	if err != nil {
		logger.Warn(ctx, "strategy failed, engaging circuit breaker",
			zap.String("strategy", strategyName),
			zap.Error(err))
		metrics.StrategyFallbacks.WithLabelValues(strategyName).Inc()

		provider, err = e.fallback.Decide(ctx, req, candidates)
		strategyName = e.fallback.Name()
		if err != nil {
			logger.Error(ctx, "fallback strategy failed, using default provider",
				zap.Error(err))
			return entities.RouteDecision{
				Provider: e.defaultProvider,
				Reason:   "Fallback: Routing Engine Unavailable",
			}, nil
		}
	}

	logger.Info(ctx, "routing decision",
		zap.String("strategy", strategyName),
		zap.String("provider", string(provider)))
	metrics.RoutingDecisions.WithLabelValues(strategyName, string(provider)).Inc()

	return entities.RouteDecision{
		Provider: provider,
		Reason:   strategyName,
		Strategy: strategyName,
	}, nil
}

// dimensionFor derives the routing dimension from the request, folding in
// BIN enrichment when present (brand maps to network, type to card_type,
// country to region).
func (e *RoutingEngine) dimensionFor(req *entities.ChargeRequest) entities.RoutingDimension {
	dim := entities.DefaultDimension()
	if req.Currency != "" {
		dim.Currency = strings.ToUpper(req.Currency)
	}
	if req.PaymentMethodType != "" {
		dim.PaymentMethodType = req.PaymentMethodType
	}
	if req.PaymentForm != "" {
		dim.PaymentForm = req.PaymentForm
	}
	dim.NetworkTokenized = req.NetworkTokenized

	if bin := req.BINMetadata; bin != nil {
		if bin.Brand != "" {
			dim.Network = strings.ToLower(bin.Brand)
		}
		if bin.Type != "" {
			dim.CardType = strings.ToLower(bin.Type)
		}
		if bin.Alpha2 != "" {
			if bin.Alpha2 == "US" {
				dim.Region = "domestic"
			} else {
				dim.Region = "international"
			}
		}
	}
	return dim
}

func providerNames() []string {
	all := entities.AllProviders()
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = string(p)
	}
	return names
}
