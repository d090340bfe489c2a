// Package summarize renders query results as short business-analyst prose
// via a language model.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/salescope/salescope/internal/llm"
	"github.com/salescope/salescope/internal/model"
)

// maxRows caps how many rows are surfaced to the model regardless of how
// many the statement produced.
const maxRows = 10

const promptTemplate = `You are a business analyst.
Summarize the following SQL results in 2-3 executive-friendly sentences.
Focus on the numbers, trends and comparisons present in the results; do not invent figures.
Results: %s`

// SummarizationError reports a model or transport failure while summarizing.
// It is terminal for the pipeline run.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed: %v", e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// Summarizer turns row sets into natural-language summaries.
type Summarizer struct {
	client llm.Client
	logger *slog.Logger
}

// New creates a summarizer.
func New(client llm.Client, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{client: client, logger: logger}
}

// Summarize serializes at most 10 rows to compact JSON records, embeds them
// in the analyst prompt, and returns the model's trimmed response. The row
// set is never mutated.
func (s *Summarizer) Summarize(ctx context.Context, rows *model.RowSet) (string, error) {
	payload, err := encodeRows(rows.Head(maxRows))
	if err != nil {
		return "", &SummarizationError{Err: err}
	}

	text, err := s.client.Invoke(ctx, fmt.Sprintf(promptTemplate, payload))
	if err != nil {
		return "", &SummarizationError{Err: err}
	}

	summary := strings.TrimSpace(text)
	s.logger.Debug("summarized result set", "rows", rows.Len(), "surfaced", rows.Head(maxRows).Len())
	return summary, nil
}

// encodeRows marshals rows as a compact JSON array of records, keeping the
// result set's column order within each record.
func encodeRows(rs *model.RowSet) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range rs.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return "", err
			}
			value, err := json.Marshal(row[col])
			if err != nil {
				return "", fmt.Errorf("failed to encode column %s: %w", col, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}

	buf.WriteByte(']')
	return buf.String(), nil
}
