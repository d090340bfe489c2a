package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaultsToGroq(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNewClientUnsupportedProvider(t *testing.T) {
	_, err := NewClient(Config{Provider: "carrier-pigeon", APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LLM provider")
}

func TestNewClientMissingKey(t *testing.T) {
	_, err := NewClient(Config{Provider: "groq"})
	require.Error(t, err)
}

func TestNewClientWithRateLimit(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k", RateLimit: 10})
	require.NoError(t, err)

	_, ok := client.(*rateLimitedClient)
	assert.True(t, ok, "rate limit config should wrap the client")
}
