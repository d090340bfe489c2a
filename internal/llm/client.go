// Package llm provides clients for hosted language models.
package llm

import (
	"context"
	"time"
)

// Client is the single operation the pipeline needs from a language model:
// one prompt in, generated text out. Implementations are stateless per call.
type Client interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for building a language-model client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	RateLimit   int
}
