// Package llm wraps the external text-classification capability: one
// stateless chat completion per title, with the taxonomy embedded in the
// instruction block.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/datadesk/scrub/internal/common"
	"github.com/datadesk/scrub/internal/cost"
	"github.com/datadesk/scrub/internal/taxonomy"
)

// Classifier assigns one taxonomy label per title via an LLM client.
type Classifier struct {
	client      Client
	taxonomy    taxonomy.Taxonomy
	recorder    cost.Recorder
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   common.RetryOptions
	maxAttempts int
}

// Config holds configuration for the LLM classifier.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	// MaxRetries <= 1 means a single attempt; the default policy is
	// "rerun the whole process", not automatic retry.
	MaxRetries int
	RetryDelay time.Duration
	// RateLimit is requests per minute; 0 disables rate limiting.
	RateLimit int
}

// NewClassifier creates a classifier for the given taxonomy. The recorder
// may be nil to disable cost tracking for this run variant.
func NewClassifier(cfg Config, tax taxonomy.Taxonomy, recorder cost.Recorder, logger *slog.Logger) (*Classifier, error) {
	client, err := newOpenAIClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return newClassifier(cfg, client, tax, recorder, logger), nil
}

func newClassifier(cfg Config, client Client, tax taxonomy.Taxonomy, recorder cost.Recorder, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rateLimiter
	if cfg.RateLimit > 0 {
		limiter = newRateLimiter(cfg.RateLimit)
	}

	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		taxonomy:    tax,
		recorder:    recorder,
		logger:      logger,
		rateLimiter: limiter,
		retryOpts:   retryOpts,
		maxAttempts: cfg.MaxRetries,
	}
}

// Taxonomy returns the taxonomy this classifier was built for.
func (c *Classifier) Taxonomy() taxonomy.Taxonomy {
	return c.taxonomy
}

// Classify assigns a category label to a single title. The returned label is
// the trimmed response text; it is deliberately NOT validated against the
// taxonomy's category names — label normalization is a separate downstream
// pass, not a classification-time retry.
func (c *Classifier) Classify(ctx context.Context, title string) (string, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrClassificationFailed, err)
		}
	}

	prompt := BuildPrompt(c.taxonomy, title)

	var resp CompletionResponse
	operation := func() error {
		var err error
		resp, err = c.client.Complete(ctx, prompt)
		return err
	}

	var err error
	if c.maxAttempts > 1 {
		err = common.WithRetry(ctx, operation, c.retryOpts)
	} else {
		err = operation()
	}
	if err != nil {
		return "", err
	}

	if c.recorder != nil && resp.TokensUsed > 0 {
		c.recorder.Record(resp.TokensUsed)
	}

	c.logger.Debug("classified title",
		"taxonomy", c.taxonomy.Name,
		"title", title,
		"label", resp.Text,
		"tokens", resp.TokensUsed)

	return resp.Text, nil
}

// Close stops background goroutines and cleans up resources.
func (c *Classifier) Close() error {
	if c.rateLimiter != nil {
		c.rateLimiter.Close()
	}
	return nil
}
