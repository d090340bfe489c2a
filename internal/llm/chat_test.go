package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChatClient(t *testing.T, handler http.Handler) (*chatClient, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newChatClient(Config{
		APIKey:      "test-key",
		Model:       "test-model",
		Temperature: 0,
		Timeout:     5 * time.Second,
	}, server.URL, "test-model")
	require.NoError(t, err)

	return client, server
}

func TestChatClientInvoke(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	client, _ := newTestChatClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"SELECT 1"}}]}`))
	}))

	text, err := client.Invoke(context.Background(), "generate some sql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", text)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])

	// Lowest-variance sampling must survive serialization as an explicit zero.
	temp, ok := gotBody["temperature"]
	require.True(t, ok, "temperature must be sent")
	assert.InDelta(t, 0.0, temp, 0.0001)

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "generate some sql", msg["content"])
}

func TestChatClientInvokeAPIError(t *testing.T) {
	client, _ := newTestChatClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit reached"}}`))
	}))

	_, err := client.Invoke(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestChatClientInvokeNoChoices(t *testing.T) {
	client, _ := newTestChatClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))

	_, err := client.Invoke(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}

func TestChatClientRequiresAPIKey(t *testing.T) {
	_, err := newChatClient(Config{}, groqBaseURL, groqDefaultModel)
	require.Error(t, err)
}

func TestChatClientContextCancellation(t *testing.T) {
	client, _ := newTestChatClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read; without it
		// the client disconnect is never detected and r.Context() never fires.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Invoke(ctx, "prompt")
	require.Error(t, err)
}
