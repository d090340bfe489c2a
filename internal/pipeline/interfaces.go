package pipeline

import (
	"context"

	"github.com/salescope/salescope/internal/model"
)

// Classifier decides whether a question is answerable from the sales dataset.
type Classifier interface {
	Classify(question string) model.Classification
}

// Generator produces one SQL statement for an in-domain question.
type Generator interface {
	Generate(ctx context.Context, question string) (string, error)
}

// Executor runs one generated statement and materializes its rows.
type Executor interface {
	Query(ctx context.Context, statement string) (*model.RowSet, error)
}

// Summarizer renders a row set as short natural-language prose.
type Summarizer interface {
	Summarize(ctx context.Context, rows *model.RowSet) (string, error)
}
