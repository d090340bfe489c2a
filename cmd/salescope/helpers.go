package main

import (
	"context"
	"time"

	"github.com/salescope/salescope/internal/classify"
	"github.com/salescope/salescope/internal/common"
	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/llm"
	"github.com/salescope/salescope/internal/model"
	"github.com/salescope/salescope/internal/pipeline"
	"github.com/salescope/salescope/internal/sqlgen"
	"github.com/salescope/salescope/internal/storage"
	"github.com/salescope/salescope/internal/summarize"
)

// buildLLMClient constructs the configured language-model client.
// Shared by the commands that run the pipeline.
func buildLLMClient(cfg *config.Config) (llm.Client, error) {
	return llm.NewClient(llm.Config{
		Provider:    cfg.LLM.Provider,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
		RateLimit:   cfg.LLM.RateLimit,
	})
}

// openStore connects to MySQL, retrying briefly so a database that is still
// starting up does not kill the process.
func openStore(ctx context.Context, cfg *config.Config) (*storage.Store, error) {
	var store *storage.Store
	err := common.WithRetry(ctx, func() error {
		s, err := storage.New(cfg.Database.DSN(), storage.WithQueryTimeout(cfg.Database.QueryTimeout))
		if err != nil {
			return err
		}
		store = s
		return nil
	}, common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second})
	if err != nil {
		return nil, common.NewUserError("could not reach the sales database", err)
	}
	return store, nil
}

// buildPipeline wires the four stages around a store and LLM client.
func buildPipeline(cfg *config.Config, store *storage.Store) (*pipeline.Pipeline, error) {
	client, err := buildLLMClient(cfg)
	if err != nil {
		return nil, err
	}

	return pipeline.New(
		classify.New(),
		sqlgen.New(client, model.SalesSchema(), nil),
		store,
		summarize.New(client, nil),
		nil,
	), nil
}
