package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/pkg/redis"
)

func plannerRequest() *entities.ChargeRequest {
	return &entities.ChargeRequest{
		Amount:   decimal.NewFromInt(100),
		Currency: "USD",
		ProviderHealth: map[string]string{
			"stripe": redis.HealthUp,
			"adyen":  redis.HealthDown,
		},
	}
}

func TestPlannerStrategy_FullPipeline(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		// Plan
		`{"plan": [
			{"agent": "CostAnalyst", "reason": "cheapest first"},
			{"agent": "HealthSentinel", "reason": "check availability"}
		]}`,
		// CostAnalyst
		`{"analysis": "stripe is cheapest", "recommended_provider": "stripe", "confidence": 0.9}`,
		// HealthSentinel
		`{"analysis": "all clear", "unhealthy_providers": [], "critical_alerts": []}`,
		// Supervisor
		`{"best_provider": "stripe", "reasoning": "cheapest and healthy"}`,
		// Critic
		`{"is_valid": true, "feedback": "no rule violations"}`,
	}}
	strategy := NewPlannerStrategy(client, "gpt-4o", ObjectiveBalanced, NewFeeService())

	provider, err := strategy.Decide(context.Background(), plannerRequest(), []entities.ResolvedProvider{
		resolvedCandidate(entities.ProviderStripe, "0.10", "2.0"),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderStripe, provider)
	assert.Equal(t, 5, client.calls, "plan, two specialists, supervisor, critic")

	// The cost analyst receives the static fee table, not an empty
	// placeholder.
	costPrompt := client.prompts[1]
	assert.Contains(t, costPrompt, `"fixed_fee"`)
	assert.Contains(t, costPrompt, string(entities.ProviderBraintree))
	assert.NotContains(t, costPrompt, "FEES (Static): null")
}

func TestPlannerStrategy_CriticOverride(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		`{"plan": [{"agent": "CostAnalyst", "reason": "cheapest first"}]}`,
		`{"analysis": "adyen is cheapest", "recommended_provider": "adyen", "confidence": 0.95}`,
		`{"best_provider": "adyen", "reasoning": "lowest fee"}`,
		`{"is_valid": false, "feedback": "adyen is down", "recommended_override": "stripe"}`,
	}}
	strategy := NewPlannerStrategy(client, "gpt-4o", ObjectiveLeastCost, NewFeeService())

	provider, err := strategy.Decide(context.Background(), plannerRequest(), []entities.ResolvedProvider{
		resolvedCandidate(entities.ProviderStripe, "0.10", "2.0"),
		resolvedCandidate(entities.ProviderAdyen, "0.05", "2.0"),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderStripe, provider, "critic override replaces the proposal")
}

func TestPlannerStrategy_CriticRejectionWithoutOverrideFails(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		`{"plan": [{"agent": "CostAnalyst", "reason": "cheapest first"}]}`,
		`{"analysis": "adyen", "recommended_provider": "adyen", "confidence": 0.8}`,
		`{"best_provider": "adyen", "reasoning": "lowest fee"}`,
		`{"is_valid": false, "feedback": "adyen is down"}`,
	}}
	strategy := NewPlannerStrategy(client, "gpt-4o", ObjectiveBalanced, NewFeeService())

	_, err := strategy.Decide(context.Background(), plannerRequest(), []entities.ResolvedProvider{
		resolvedCandidate(entities.ProviderAdyen, "0.05", "2.0"),
	})
	assert.Error(t, err)
}

func TestPlannerStrategy_PlanFiltersUnknownAndDuplicateAgents(t *testing.T) {
	client := &scriptedLLM{responses: []string{
		`{"plan": [
			{"agent": "CostAnalyst", "reason": "first"},
			{"agent": "CostAnalyst", "reason": "again"},
			{"agent": "Oracle", "reason": "does not exist"}
		]}`,
		`{"analysis": "stripe", "recommended_provider": "stripe", "confidence": 0.9}`,
		`{"best_provider": "stripe", "reasoning": "cheapest"}`,
		`{"is_valid": true, "feedback": "ok"}`,
	}}
	strategy := NewPlannerStrategy(client, "gpt-4o", ObjectiveBalanced, NewFeeService())

	provider, err := strategy.Decide(context.Background(), plannerRequest(), []entities.ResolvedProvider{
		resolvedCandidate(entities.ProviderStripe, "0.10", "2.0"),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ProviderStripe, provider)
	assert.Equal(t, 4, client.calls, "duplicate and unknown steps were dropped")
}

func TestPlannerStrategy_SpecialistFailurePropagates(t *testing.T) {
	strategy := NewPlannerStrategy(failingLLM{}, "gpt-4o", ObjectiveBalanced, NewFeeService())
	_, err := strategy.Decide(context.Background(), plannerRequest(), []entities.ResolvedProvider{
		resolvedCandidate(entities.ProviderStripe, "0.10", "2.0"),
	})
	assert.Error(t, err)
}
