package usecases

import (
	"context"

	"pay-router.backend/internal/domain/entities"
	domainerrors "pay-router.backend/internal/domain/errors"
)

// DecisionStrategy is the pluggable routing decision contract. Decide is
// pure with respect to its inputs; any error is handled by the engine's
// circuit breaker, never surfaced to the charge caller.
type DecisionStrategy interface {
	Name() string
	Decide(ctx context.Context, req *entities.ChargeRequest, candidates []entities.ResolvedProvider) (entities.Provider, error)
}

// FixedStrategy always returns the configured provider. Used for explicit
// overrides and tests.
type FixedStrategy struct {
	Provider entities.Provider
}

func NewFixedStrategy(provider entities.Provider) *FixedStrategy {
	return &FixedStrategy{Provider: provider}
}

func (s *FixedStrategy) Name() string { return "FixedStrategy" }

func (s *FixedStrategy) Decide(_ context.Context, _ *entities.ChargeRequest, _ []entities.ResolvedProvider) (entities.Provider, error) {
	if !s.Provider.Valid() {
		return "", domainerrors.ErrUnknownProvider
	}
	return s.Provider, nil
}

// DeterministicLeastCostStrategy picks the candidate with the lowest total
// fee for the request amount. Candidates arrive in the stable provider
// ordering, and only a strictly cheaper candidate displaces the current
// best, so ties resolve deterministically.
type DeterministicLeastCostStrategy struct{}

func NewDeterministicLeastCostStrategy() *DeterministicLeastCostStrategy {
	return &DeterministicLeastCostStrategy{}
}

func (s *DeterministicLeastCostStrategy) Name() string { return "DeterministicLeastCostStrategy" }

func (s *DeterministicLeastCostStrategy) Decide(_ context.Context, req *entities.ChargeRequest, candidates []entities.ResolvedProvider) (entities.Provider, error) {
	if len(candidates) == 0 {
		return "", domainerrors.ErrNoRouteCandidates
	}

	best := candidates[0]
	bestCost := best.TotalCost(req.Amount)
	for _, candidate := range candidates[1:] {
		cost := candidate.TotalCost(req.Amount)
		if cost.LessThan(bestCost) {
			best = candidate
			bestCost = cost
		}
	}
	return best.Provider, nil
}
