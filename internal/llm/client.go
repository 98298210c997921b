package llm

import (
	"context"
)

// Client defines the interface for text-generation providers. Requests are
// stateless: no conversation history is carried between titles.
type Client interface {
	Complete(ctx context.Context, prompt string) (CompletionResponse, error)
}

// CompletionResponse contains the provider's response text and the token
// usage reported for the single call.
type CompletionResponse struct {
	Text       string
	TokensUsed int
}
