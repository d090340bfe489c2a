// Package pipeline sequences the four query-resolution stages as an explicit
// state machine: classify, generate SQL, execute, summarize.
//
// The original flow encoded this control logic in free-form agent prompt
// text; here every transition is checkable code and the retry bound is a
// hard mechanical guarantee rather than an instruction the model may or may
// not follow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/observability"
)

// RejectionMessage is the fixed final answer for out-of-domain questions.
const RejectionMessage = "not related to Sales Data"

// maxGenerationAttempts bounds total SQL generation attempts per run,
// including the first one.
const maxGenerationAttempts = 3

// Fallback answers for non-retried failures. Every failure path still yields
// a final answer string; nothing escapes to the surface as a fault.
const (
	generationFailedMessage    = "I was unable to generate a SQL query for that question. Please try again."
	summarizationFailedMessage = "I retrieved the results but could not produce a summary. Please try again."
)

// ErrRunCompleted reports a contract violation: driving a Run that has
// already produced its final answer.
var ErrRunCompleted = errors.New("pipeline: run already completed")

// Pipeline wires the four stage collaborators together. It holds no
// per-request state; each request gets its own Run.
type Pipeline struct {
	classifier Classifier
	generator  Generator
	executor   Executor
	summarizer Summarizer
	logger     *slog.Logger
}

// New creates a pipeline from its stage collaborators.
func New(classifier Classifier, generator Generator, executor Executor, summarizer Summarizer, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		classifier: classifier,
		generator:  generator,
		executor:   executor,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Answer resolves one question end to end. It always returns a final answer
// string; a non-nil error only ever signals a programming-contract
// violation, never a stage failure.
func (p *Pipeline) Answer(ctx context.Context, question string) (string, error) {
	return p.NewRun(question).Execute(ctx)
}

// Run is the per-request state machine. A Run executes exactly once and
// retains no state usable by later requests.
type Run struct {
	pipeline *Pipeline
	question string
	state    State
	outcome  string
	attempts int
	mu       sync.Mutex
}

// NewRun creates a run in StateStart for one question.
func (p *Pipeline) NewRun(question string) *Run {
	return &Run{pipeline: p, question: question, state: StateStart}
}

// State reports the run's current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Attempts reports how many generation attempts the run has made.
func (r *Run) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

// Execute drives the state machine to completion and returns the final
// answer. Executing a completed run fails with ErrRunCompleted; the machine
// never silently restarts.
func (r *Run) Execute(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateStart {
		return "", fmt.Errorf("%w (state %s)", ErrRunCompleted, r.state)
	}

	answer := r.resolve(ctx)
	r.state = StateDone

	observability.PipelineRunsTotal.WithLabelValues(r.outcome).Inc()
	r.pipeline.logger.Info("pipeline run complete",
		"outcome", r.outcome,
		"attempts", r.attempts)

	return answer, nil
}

// resolve walks the stages. It is only ever called once per run, under the
// run's lock.
func (r *Run) resolve(ctx context.Context) string {
	p := r.pipeline

	r.state = StateClassifying
	classStart := time.Now()
	classification := p.classifier.Classify(r.question)
	observability.PipelineStageSeconds.WithLabelValues("classify").Observe(time.Since(classStart).Seconds())

	if classification == model.OutOfDomain {
		r.state = StateRejected
		r.outcome = "rejected"
		p.logger.Info("question rejected as out-of-domain")
		return RejectionMessage
	}

	var lastExecErr error
	for {
		if r.attempts == 0 {
			r.state = StateGenerating
		} else {
			r.state = StateRetryGenerating
		}
		r.attempts++
		observability.GenerationAttemptsTotal.Inc()

		genStart := time.Now()
		statement, err := p.generator.Generate(ctx, r.question)
		observability.PipelineStageSeconds.WithLabelValues("generate").Observe(time.Since(genStart).Seconds())
		if err != nil {
			// Generation failures are not retried in the baseline behavior.
			r.state = StateFailed
			r.outcome = "failed"
			p.logger.Error("sql generation failed", "attempt", r.attempts, "error", err)
			return generationFailedMessage
		}

		r.state = StateExecuting
		execStart := time.Now()
		rows, err := p.executor.Query(ctx, statement)
		observability.PipelineStageSeconds.WithLabelValues("execute").Observe(time.Since(execStart).Seconds())
		if err != nil {
			lastExecErr = err
			p.logger.Warn("sql execution failed",
				"attempt", r.attempts,
				"max_attempts", maxGenerationAttempts,
				"error", err)

			if r.attempts >= maxGenerationAttempts {
				r.state = StateFailed
				r.outcome = "failed"
				return fmt.Sprintf("SQL Error: %v", lastExecErr)
			}
			continue
		}

		r.state = StateSummarizing
		sumStart := time.Now()
		summary, err := p.summarizer.Summarize(ctx, rows)
		observability.PipelineStageSeconds.WithLabelValues("summarize").Observe(time.Since(sumStart).Seconds())
		if err != nil {
			// Terminal: summarization is never retried.
			r.state = StateFailed
			r.outcome = "failed"
			p.logger.Error("summarization failed", "error", err)
			return summarizationFailedMessage
		}

		r.outcome = "answered"
		return summary
	}
}
