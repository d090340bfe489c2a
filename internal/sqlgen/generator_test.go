package sqlgen

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salescope/salescope/internal/model"
)

// mockClient is a test implementation of the llm.Client interface.
type mockClient struct {
	response string
	err      error
	prompts  []string
}

func (m *mockClient) Invoke(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestGeneratePromptEmbedsSchemaAndQuestion(t *testing.T) {
	client := &mockClient{response: "SELECT * FROM sales_data"}
	gen := New(client, model.SalesSchema(), nil)

	question := "Tell me the top 5 days with the highest daily units sold?"
	statement, err := gen.Generate(context.Background(), question)
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM sales_data", statement)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "sales_data (columns: date (date), channel (string), product_name (string), city (string), quantity (integer), sales (float))")
	assert.Contains(t, prompt, fmt.Sprintf("%q", question))
}

func TestGenerateWrapsClientError(t *testing.T) {
	transportErr := errors.New("connection refused")
	gen := New(&mockClient{err: transportErr}, model.SalesSchema(), nil)

	_, err := gen.Generate(context.Background(), "total sales by city")
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, transportErr)
}

func TestGenerateRejectsEmptyOutput(t *testing.T) {
	gen := New(&mockClient{response: "```\n```"}, model.SalesSchema(), nil)

	_, err := gen.Generate(context.Background(), "total sales by city")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain statement",
			raw:  "SELECT city FROM sales_data",
			want: "SELECT city FROM sales_data",
		},
		{
			name: "surrounding whitespace",
			raw:  "  \n SELECT city FROM sales_data \n",
			want: "SELECT city FROM sales_data",
		},
		{
			name: "sql code fence",
			raw:  "```sql\nSELECT city FROM sales_data\n```",
			want: "SELECT city FROM sales_data",
		},
		{
			name: "bare code fence",
			raw:  "```\nSELECT city FROM sales_data\n```",
			want: "SELECT city FROM sales_data",
		},
		{
			name: "double quoted statement",
			raw:  `"SELECT city FROM sales_data"`,
			want: "SELECT city FROM sales_data",
		},
		{
			name: "single quoted statement",
			raw:  "'SELECT city FROM sales_data'",
			want: "SELECT city FROM sales_data",
		},
		{
			name: "interior quotes survive",
			raw:  `SELECT * FROM sales_data WHERE channel = 'Channel 1'`,
			want: `SELECT * FROM sales_data WHERE channel = 'Channel 1'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.raw))
		})
	}
}
