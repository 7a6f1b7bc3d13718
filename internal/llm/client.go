package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrTruncated is returned when the model stops at its output token limit,
// which leaves the JSON payload incomplete.
var ErrTruncated = errors.New("model output truncated")

// Request is one extraction call: the task instruction goes to the model as
// a system instruction, the prompt carries the output shape and the text.
type Request struct {
	Instruction string
	Prompt      string
	Tier        ModelTier
}

// Client extracts a JSON payload from résumé text
type Client interface {
	ExtractJSON(ctx context.Context, req Request) (string, error)
	Close() error
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	models Models
}

// NewGeminiClient creates a Gemini client; a nil models map uses the defaults
func NewGeminiClient(ctx context.Context, models Models, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if len(models) == 0 {
		models = DefaultModels()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, models: models}, nil
}

// ExtractJSON runs one deterministic JSON-mode generation and returns the
// payload with any markdown fence removed.
func (c *GeminiClient) ExtractJSON(ctx context.Context, req Request) (string, error) {
	name := c.models.For(req.Tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(0)
	model.SetCandidateCount(1)
	model.ResponseMIMEType = "application/json"
	if req.Instruction != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.Instruction))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with %s: %w", name, err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonMaxTokens {
		return "", ErrTruncated
	}
	if cand.Content == nil {
		return "", fmt.Errorf("no content in response (finish reason %s)", cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}
