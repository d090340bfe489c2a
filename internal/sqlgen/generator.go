// Package sqlgen turns in-domain questions into SQL statements via a
// language model.
//
// The generator performs no validation, sandboxing, or injection defense on
// the returned text: whatever the model produces is handed to the execution
// gateway as-is. The gateway's statement guard is the only control between
// model output and the database.
package sqlgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/salescope/salescope/internal/llm"
	"github.com/salescope/salescope/internal/model"
)

const promptTemplate = `You are a SQL generator.
Table: %s.
User query: %q
Write a valid MySQL query.
Note: Try to keep the SQL query as simple as possible, don't make it complex.
Respond with the SQL statement only, no markdown formatting and no explanation.`

// GenerationError reports a model or transport failure while generating SQL.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("sql generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generator produces one SQL statement per in-domain question.
type Generator struct {
	client llm.Client
	schema model.TableSchema
	logger *slog.Logger
}

// New creates a generator bound to a fixed table schema.
func New(client llm.Client, schema model.TableSchema, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, schema: schema, logger: logger}
}

// Generate builds the schema-embedding prompt for the verbatim question,
// invokes the model, and returns the sanitized statement text.
func (g *Generator) Generate(ctx context.Context, question string) (string, error) {
	prompt := fmt.Sprintf(promptTemplate, g.schema.Describe(), question)

	raw, err := g.client.Invoke(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	statement := Sanitize(raw)
	if statement == "" {
		return "", &GenerationError{Err: fmt.Errorf("model returned an empty statement")}
	}

	g.logger.Debug("generated sql", "question", question, "statement", statement)
	return statement, nil
}

// Sanitize trims whitespace, markdown code fences, and one layer of wrapping
// quote characters from model output.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```sql")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	return s
}
