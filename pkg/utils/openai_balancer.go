package utils

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBalancerClient implements BalancerClientInterface via chat completions.
type OpenAIBalancerClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIBalancerClient(apiKey, model string) BalancerClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIBalancerClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIBalancerClient) BalancePlan(ctx context.Context, prompt string, dayCount int) (string, error) {
	if dayCount < 1 || dayCount > 30 {
		return "", fmt.Errorf("bad dayCount: %d", dayCount)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You rebalance travel day plans. Reply with JSON only, no prose, no markdown.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated by OpenAI")
	}

	content := CleanJSONResponse(resp.Choices[0].Message.Content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("model returned invalid JSON")
	}
	return content, nil
}
