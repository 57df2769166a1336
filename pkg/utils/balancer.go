package utils

import (
	"context"
	"fmt"
	"strings"
)

// BalancerClientInterface is the contract with the external generative model
// that smooths pacing and narrates the day plan. The model is an untrusted,
// non-deterministic collaborator: implementations guarantee the returned
// string is valid JSON, nothing more. Schema validation belongs to the
// caller.
type BalancerClientInterface interface {
	BalancePlan(ctx context.Context, prompt string, dayCount int) (string, error)
}

// NewBalancerClient creates either a Gemini or an OpenAI balancing client
// based on config.
func NewBalancerClient(provider, apiKey, model string) (BalancerClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIBalancerClient(apiKey, model), nil
	case "gemini":
		return NewGeminiBalancerClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported balancer provider: %s", provider)
	}
}
