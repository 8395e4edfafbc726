package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"pay-router.backend/internal/infrastructure/llm"
)

// Specialist agent names, also the keys of the planner's evidence map.
const (
	AgentCostAnalyst         = "CostAnalyst"
	AgentPerformanceAnalyst  = "PerformanceAnalyst"
	AgentNetworkIntelligence = "NetworkIntelligence"
	AgentHealthSentinel      = "HealthSentinel"
	AgentCritic              = "Critic"
)

// Agent is a single specialist in the planner pipeline. Run receives the
// shared context bundle and returns a structured JSON verdict. Agents never
// mutate the bundle.
type Agent interface {
	Name() string
	Run(ctx context.Context, bundle map[string]interface{}) (map[string]interface{}, error)
}

type baseAgent struct {
	client llm.Client
	model  string
}

func (a baseAgent) completeJSON(ctx context.Context, prompt string) (map[string]interface{}, error) {
	content, err := a.client.Chat(ctx, a.model, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, err
	}
	var verdict map[string]interface{}
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("parse agent verdict: %w", err)
	}
	return verdict, nil
}

func bundleJSON(bundle map[string]interface{}, key string) string {
	b, err := json.Marshal(bundle[key])
	if err != nil {
		return "null"
	}
	return string(b)
}

// CostAnalystAgent recommends the cheapest provider from the fee table and
// the reconciled candidate costs.
type CostAnalystAgent struct{ baseAgent }

func NewCostAnalystAgent(client llm.Client, model string) *CostAnalystAgent {
	return &CostAnalystAgent{baseAgent{client: client, model: model}}
}

func (a *CostAnalystAgent) Name() string { return AgentCostAnalyst }

func (a *CostAnalystAgent) Run(ctx context.Context, bundle map[string]interface{}) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`You are a Cost Analyst Agent for a payment system.
Analyze the fees, the candidate providers (which carry reconciled cost structures) and the payment details to recommend the cheapest provider.

FEES (Static): %s
CANDIDATES (Reconciled): %s
PAYMENT: %s

Return a JSON object: {"analysis": "...", "recommended_provider": "...", "confidence": 0.0-1.0}`,
		bundleJSON(bundle, "fees"), bundleJSON(bundle, "candidates"), bundleJSON(bundle, "payment"))
	return a.completeJSON(ctx, prompt)
}

// PerformanceAnalystAgent recommends the most reliable provider based on
// auth rates and latency.
type PerformanceAnalystAgent struct{ baseAgent }

func NewPerformanceAnalystAgent(client llm.Client, model string) *PerformanceAnalystAgent {
	return &PerformanceAnalystAgent{baseAgent{client: client, model: model}}
}

func (a *PerformanceAnalystAgent) Name() string { return AgentPerformanceAnalyst }

func (a *PerformanceAnalystAgent) Run(ctx context.Context, bundle map[string]interface{}) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`You are a Performance Analyst Agent for a payment system.
Analyze the candidate providers and recommend the most reliable one, weighing auth_rate against avg_latency_ms.

CANDIDATES: %s

Return a JSON object: {"analysis": "...", "recommended_provider": "...", "confidence": 0.0-1.0}`,
		bundleJSON(bundle, "candidates"))
	return a.completeJSON(ctx, prompt)
}

// NetworkIntelligenceAgent surfaces network-specific optimizations from
// BIN metadata and interchange schedules.
type NetworkIntelligenceAgent struct{ baseAgent }

func NewNetworkIntelligenceAgent(client llm.Client, model string) *NetworkIntelligenceAgent {
	return &NetworkIntelligenceAgent{baseAgent{client: client, model: model}}
}

func (a *NetworkIntelligenceAgent) Name() string { return AgentNetworkIntelligence }

func (a *NetworkIntelligenceAgent) Run(ctx context.Context, bundle map[string]interface{}) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`You are a Network Intelligence Agent for a payment system.
Analyze the card BIN metadata and interchange fee schedules for network-specific routing optimizations.

BIN METADATA: %s
INTERCHANGE FEES: %s
PAYMENT: %s

Return a JSON object: {"analysis": "...", "preferred_networks": ["..."], "routing_advice": "..."}`,
		bundleJSON(bundle, "bin_metadata"), bundleJSON(bundle, "interchange_fees"), bundleJSON(bundle, "payment"))
	return a.completeJSON(ctx, prompt)
}

// HealthSentinelAgent assesses the real-time provider health snapshot and
// flags providers that must not receive traffic.
type HealthSentinelAgent struct{ baseAgent }

func NewHealthSentinelAgent(client llm.Client, model string) *HealthSentinelAgent {
	return &HealthSentinelAgent{baseAgent{client: client, model: model}}
}

func (a *HealthSentinelAgent) Name() string { return AgentHealthSentinel }

func (a *HealthSentinelAgent) Run(ctx context.Context, bundle map[string]interface{}) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`You are a Health Sentinel Agent for a payment system.
Assess the real-time provider health snapshot. Any provider with status "down" is unhealthy and must not receive traffic.

PROVIDER HEALTH: %s

Return a JSON object: {"analysis": "...", "unhealthy_providers": ["..."], "critical_alerts": ["..."]}`,
		bundleJSON(bundle, "provider_health"))
	return a.completeJSON(ctx, prompt)
}

// CriticVerdict is the critic's structured review of a proposed decision.
type CriticVerdict struct {
	IsValid             bool   `json:"is_valid"`
	Feedback            string `json:"feedback"`
	RecommendedOverride string `json:"recommended_override,omitempty"`
}

// CriticAgent reviews the supervisor's proposal against hard safety rules.
// It runs last in every planner pipeline.
type CriticAgent struct{ baseAgent }

func NewCriticAgent(client llm.Client, model string) *CriticAgent {
	return &CriticAgent{baseAgent{client: client, model: model}}
}

func (a *CriticAgent) Name() string { return AgentCritic }

func (a *CriticAgent) Review(ctx context.Context, proposal providerChoice, bundle map[string]interface{}, evidence map[string]interface{}) (CriticVerdict, error) {
	proposalJSON, _ := json.Marshal(proposal)
	evidenceJSON, _ := json.Marshal(evidence)

	prompt := fmt.Sprintf(`You are a Critic Agent reviewing a proposed payment routing decision.
Hard rules:
- Never approve a provider whose health status is "down" or that appears in any unhealthy_providers list.
- Never approve a provider outside the candidate set.
If the proposal violates a rule, reject it and recommend a safe override from the candidates.

PROPOSAL: %s
EVIDENCE: %s
PROVIDER HEALTH: %s
CANDIDATES: %s

Return a JSON object: {"is_valid": true/false, "feedback": "...", "recommended_override": "..."}`,
		proposalJSON, evidenceJSON, bundleJSON(bundle, "provider_health"), bundleJSON(bundle, "candidates"))

	content, err := a.client.Chat(ctx, a.model, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return CriticVerdict{}, err
	}
	var verdict CriticVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return CriticVerdict{}, fmt.Errorf("parse critic verdict: %w", err)
	}
	return verdict, nil
}
