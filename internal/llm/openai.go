package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient implements Client for OpenAI-compatible chat-completions endpoints.
type OpenAIClient struct {
	model  llms.Model
	config *Config
}

// NewOpenAIClient creates a client for config.BaseURL, or the default gateway.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultGatewayURL
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(config.GetModel(TierStandard)),
		openai.WithBaseURL(baseURL),
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return NewOpenAIClientWithModel(model, config), nil
}

// NewOpenAIClientWithModel wraps an existing langchaingo model.
func NewOpenAIClientWithModel(model llms.Model, config *Config) *OpenAIClient {
	return &OpenAIClient{model: model, config: config}
}

// GenerateContent sends the system and user messages and returns the first choice.
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt Prompt, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	var messages []llms.MessageContent
	if prompt.System != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(prompt.System)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(prompt.User)},
	})

	resp, err := c.model.GenerateContent(ctx, messages,
		llms.WithModel(modelName),
		llms.WithTemperature(c.config.Temperature),
	)
	if err != nil {
		return "", classify(ProviderOpenAI, fmt.Errorf("failed to generate content: %w", err))
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no resources.
func (c *OpenAIClient) Close() error {
	return nil
}
