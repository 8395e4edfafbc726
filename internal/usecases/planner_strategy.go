package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/internal/infrastructure/llm"
	"pay-router.backend/pkg/logger"
)

// planStep is one validated entry of the planner's execution plan.
type planStep struct {
	Agent  string `json:"agent"`
	Reason string `json:"reason"`
}

// PlannerStrategy runs a small finite pipeline: a planner prompt selects
// specialist steps, each specialist contributes a verdict to a shared
// evidence map, a supervisor prompt synthesizes a proposal, and the Critic
// reviews it last. An invalid proposal with a usable override is replaced.
// Any failure anywhere returns an error for the engine's circuit breaker.
type PlannerStrategy struct {
	client      llm.Client
	model       string
	objective   string
	fees        *FeeService
	specialists map[string]Agent
	critic      *CriticAgent
}

func NewPlannerStrategy(client llm.Client, model, objective string, fees *FeeService) *PlannerStrategy {
	if objective == "" {
		objective = ObjectiveBalanced
	}
	s := &PlannerStrategy{
		client:      client,
		model:       model,
		objective:   objective,
		fees:        fees,
		specialists: make(map[string]Agent),
		critic:      NewCriticAgent(client, model),
	}
	for _, agent := range []Agent{
		NewCostAnalystAgent(client, model),
		NewPerformanceAnalystAgent(client, model),
		NewNetworkIntelligenceAgent(client, model),
		NewHealthSentinelAgent(client, model),
	} {
		s.specialists[agent.Name()] = agent
	}
	return s
}

func (s *PlannerStrategy) Name() string { return "PlannerStrategy" }

func (s *PlannerStrategy) Decide(ctx context.Context, req *entities.ChargeRequest, candidates []entities.ResolvedProvider) (entities.Provider, error) {
	bundle := s.contextBundle(req, candidates)

	plan, err := s.generatePlan(ctx, bundle)
	if err != nil {
		return "", err
	}

	evidence := make(map[string]interface{}, len(plan))
	for _, step := range plan {
		agent := s.specialists[step.Agent]
		logger.Debug(ctx, "executing planner agent",
			zap.String("agent", step.Agent),
			zap.String("reason", step.Reason))
		verdict, err := agent.Run(ctx, bundle)
		if err != nil {
			return "", fmt.Errorf("agent %s: %w", step.Agent, err)
		}
		evidence[step.Agent] = verdict
	}

	proposal, err := s.propose(ctx, bundle, evidence)
	if err != nil {
		return "", err
	}

	verdict, err := s.critic.Review(ctx, proposal, bundle, evidence)
	if err != nil {
		return "", err
	}
	if !verdict.IsValid {
		override, err := entities.ParseProvider(verdict.RecommendedOverride)
		if err != nil {
			return "", fmt.Errorf("critic rejected proposal without usable override: %s", verdict.Feedback)
		}
		logger.Warn(ctx, "critic overrode routing proposal",
			zap.String("proposed", proposal.BestProvider),
			zap.String("override", string(override)),
			zap.String("feedback", verdict.Feedback))
		return override, nil
	}

	return entities.ParseProvider(proposal.BestProvider)
}

func (s *PlannerStrategy) contextBundle(req *entities.ChargeRequest, candidates []entities.ResolvedProvider) map[string]interface{} {
	var feeTable []entities.FeeStructure
	if s.fees != nil {
		feeTable = s.fees.AllFees()
	}
	return map[string]interface{}{
		"payment":          req,
		"candidates":       candidates,
		"fees":             feeTable,
		"bin_metadata":     req.BINMetadata,
		"interchange_fees": req.InterchangeFees,
		"provider_health":  req.ProviderHealth,
	}
}

// generatePlan asks the model for an ordered subset of the registered
// specialists. Unknown steps are dropped and duplicates collapse, so the
// plan length is bounded by the capability set. An empty plan falls back
// to all specialists in a stable order.
func (s *PlannerStrategy) generatePlan(ctx context.Context, bundle map[string]interface{}) ([]planStep, error) {
	names := make([]string, 0, len(s.specialists))
	for name := range s.specialists {
		names = append(names, name)
	}
	sort.Strings(names)

	prompt := fmt.Sprintf(`You are a Routing Planner for a payment engine.
Objective: %s
Transaction: %s

Available capabilities: %s

Generate a step-by-step execution plan to reach the routing decision.
Return a JSON object with a "plan" key containing a list of steps.
Each step must have: "agent" (name of the capability) and "reason".`,
		s.objective, bundleJSON(bundle, "payment"), strings.Join(names, ", "))

	content, err := s.client.Chat(ctx, s.model, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Plan []planStep `json:"plan"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}

	seen := make(map[string]bool, len(parsed.Plan))
	var plan []planStep
	for _, step := range parsed.Plan {
		if _, ok := s.specialists[step.Agent]; !ok || seen[step.Agent] {
			continue
		}
		seen[step.Agent] = true
		plan = append(plan, step)
	}
	if len(plan) == 0 {
		for _, name := range names {
			plan = append(plan, planStep{Agent: name, Reason: "default plan"})
		}
	}
	return plan, nil
}

func (s *PlannerStrategy) propose(ctx context.Context, bundle map[string]interface{}, evidence map[string]interface{}) (providerChoice, error) {
	evidenceJSON, err := json.Marshal(evidence)
	if err != nil {
		return providerChoice{}, fmt.Errorf("encode evidence: %w", err)
	}

	prompt := fmt.Sprintf(`You are the routing supervisor for a payment engine.
Objective: %s

Synthesize the specialist evidence below into a single routing decision.
The provider must come from the candidate set.

EVIDENCE: %s
CANDIDATES: %s
TRANSACTION: %s

Return ONLY a JSON object: {"best_provider": "...", "reasoning": "..."}`,
		s.objective, evidenceJSON, bundleJSON(bundle, "candidates"), bundleJSON(bundle, "payment"))

	content, err := s.client.Chat(ctx, s.model, []llm.Message{{Role: "user", Content: prompt}})
	if err != nil {
		return providerChoice{}, err
	}

	var proposal providerChoice
	if err := json.Unmarshal([]byte(content), &proposal); err != nil {
		return providerChoice{}, fmt.Errorf("parse supervisor proposal: %w", err)
	}
	if _, err := entities.ParseProvider(proposal.BestProvider); err != nil {
		return providerChoice{}, err
	}
	return proposal, nil
}
