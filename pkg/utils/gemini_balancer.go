package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBalancerClient implements BalancerClientInterface using Google's Gemini models
type GeminiBalancerClient struct {
	client *genai.Client
	model  string
}

// NewGeminiBalancerClient creates a new Gemini client
func NewGeminiBalancerClient(apiKey, model string) (BalancerClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBalancerClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiBalancerClient) BalancePlan(ctx context.Context, prompt string, dayCount int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if dayCount < 1 || dayCount > 30 {
		return "", fmt.Errorf("bad dayCount: %d", dayCount)
	}

	m := c.client.GenerativeModel(c.model)
	// Force JSON-only so we can delete brace-matching hacks:
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1) // Lower temperature = faster, more deterministic
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(5000)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	// ResponseMIMEType usually yields clean JSON, but some models still wrap
	// responses in markdown fences.
	content = CleanJSONResponse(content)

	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("model returned invalid JSON")
	}
	if !strings.Contains(content, `"days"`) {
		return "", fmt.Errorf("balanced plan missing 'days' key")
	}
	return content, nil
}

// Close closes the Gemini client
func (c *GeminiBalancerClient) Close() error {
	return c.client.Close()
}

// CleanJSONResponse removes markdown formatting and extra text with improved extraction
func CleanJSONResponse(response string) string {
	// Remove markdown code blocks
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")

	// Remove common prefixes that LLMs might add
	prefixes := []string{
		"Here's the balanced plan:",
		"Here is the itinerary:",
		"The travel plan is:",
		"Travel plan:",
		"Itinerary:",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.TrimSpace(response), prefix) {
			response = strings.TrimPrefix(response, prefix)
			break
		}
	}

	response = strings.TrimSpace(response)

	// Find JSON boundaries more accurately
	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if objEnd := findMatchingDelimiter(response, objStart, '{', '}'); objEnd != -1 {
			response = response[objStart : objEnd+1]
		}
	} else if arrStart != -1 {
		if arrEnd := findMatchingDelimiter(response, arrStart, '[', ']'); arrEnd != -1 {
			response = response[arrStart : arrEnd+1]
		}
	}

	return strings.TrimSpace(response)
}

// findMatchingDelimiter finds the matching closing delimiter, string-aware.
func findMatchingDelimiter(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
