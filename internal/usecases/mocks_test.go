package usecases

import (
	"context"
	"errors"
	"fmt"

	"pay-router.backend/internal/infrastructure/llm"
)

// scriptedLLM replays canned responses in order, recording every prompt.
type scriptedLLM struct {
	responses []string
	calls     int
	prompts   []string
}

func (s *scriptedLLM) Chat(_ context.Context, _ string, messages []llm.Message) (string, error) {
	if len(messages) > 0 {
		s.prompts = append(s.prompts, messages[len(messages)-1].Content)
	}
	if s.calls >= len(s.responses) {
		return "", fmt.Errorf("unexpected llm call %d", s.calls)
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

// failingLLM errors on every call.
type failingLLM struct{}

func (failingLLM) Chat(_ context.Context, _ string, _ []llm.Message) (string, error) {
	return "", errors.New("llm unreachable")
}
