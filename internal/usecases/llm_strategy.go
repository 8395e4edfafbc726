package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"pay-router.backend/internal/domain/entities"
	"pay-router.backend/internal/infrastructure/llm"
)

// Routing objectives accepted by the LLM-backed strategies.
const (
	ObjectiveLeastCost   = "least_cost"
	ObjectiveHighestAuth = "highest_auth"
	ObjectiveBalanced    = "balanced"
)

// LLMStrategy makes a single-shot routing decision by handing the request
// and the reconciled candidates to a chat model. Every failure mode
// (transport, parse, unknown provider) is returned as an error for the
// engine's circuit breaker.
type LLMStrategy struct {
	client    llm.Client
	model     string
	objective string
}

func NewLLMStrategy(client llm.Client, model, objective string) *LLMStrategy {
	if objective == "" {
		objective = ObjectiveBalanced
	}
	return &LLMStrategy{client: client, model: model, objective: objective}
}

func (s *LLMStrategy) Name() string { return "LLMStrategy" }

type providerChoice struct {
	BestProvider string `json:"best_provider"`
	Reasoning    string `json:"reasoning"`
}

func (s *LLMStrategy) Decide(ctx context.Context, req *entities.ChargeRequest, candidates []entities.ResolvedProvider) (entities.Provider, error) {
	candidatesJSON, err := json.Marshal(candidates)
	if err != nil {
		return "", fmt.Errorf("encode candidates: %w", err)
	}
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	prompt := fmt.Sprintf(`You are an intelligent payment routing engine.
Objective: %s

--- AVAILABLE DATA ---
CANDIDATE PROVIDERS (reconciled cost and performance): %s
TRANSACTION: %s

--- INSTRUCTION ---
Select the best provider according to the objective.
Least Cost: Minimize total fees (fixed_fee + amount * variable_fee_percent / 100).
Highest Auth: Maximize auth_rate.
Balanced: Optimize for both.

Return ONLY a JSON object: {"best_provider": "...", "reasoning": "..."}`,
		s.objective, candidatesJSON, requestJSON)

	content, err := s.client.Chat(ctx, s.model, []llm.Message{
		{Role: "system", Content: "You are a precise routing engine."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}

	var choice providerChoice
	if err := json.Unmarshal([]byte(content), &choice); err != nil {
		return "", fmt.Errorf("parse routing choice: %w", err)
	}
	return entities.ParseProvider(choice.BestProvider)
}
