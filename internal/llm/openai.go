package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/datadesk/scrub/internal/common"
)

// chatCompleter is the slice of the OpenAI SDK the client needs. Tests
// substitute a mock here.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// openAIClient implements the Client interface against the OpenAI chat
// completions API.
type openAIClient struct {
	api         chatCompleter
	model       string
	temperature float32
	maxTokens   int
}

// newOpenAIClient creates a new OpenAI-backed client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &openAIClient{
		api:         openai.NewClient(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete issues exactly one chat completion carrying the full instruction
// block as the system message, mirroring how the taxonomy prompt was
// designed to be consumed.
func (c *openAIClient) Complete(ctx context.Context, prompt string) (CompletionResponse, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: prompt,
			},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("%w: chat completion: %v", common.ErrClassificationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return CompletionResponse{}, fmt.Errorf("%w: no completion choices returned", common.ErrClassificationFailed)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return CompletionResponse{}, fmt.Errorf("%w: %w", common.ErrClassificationFailed, common.ErrEmptyResponse)
	}

	return CompletionResponse{
		Text:       text,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
