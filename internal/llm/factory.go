package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.1-8b-instant"

	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
)

// NewClient creates an LLM client based on the provided configuration. When a
// rate limit is configured the client is wrapped with a token-bucket limiter.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "", "groq":
		client, err = newChatClient(cfg, groqBaseURL, groqDefaultModel)
	case "openai":
		client, err = newChatClient(cfg, openAIBaseURL, openAIDefaultModel)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	if cfg.RateLimit > 0 {
		client = &rateLimitedClient{
			inner:   client,
			limiter: newRateLimiter(cfg.RateLimit),
		}
	}

	return client, nil
}

// rateLimitedClient throttles Invoke calls through a token bucket.
type rateLimitedClient struct {
	inner   Client
	limiter *rateLimiter
}

func (c *rateLimitedClient) Invoke(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}
	return c.inner.Invoke(ctx, prompt)
}
