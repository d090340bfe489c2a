package main

import (
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/config"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask \"question\"",
		Short: "Answer one question about the sales data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			p, err := buildPipeline(cfg, store)
			if err != nil {
				return err
			}

			answer, err := p.Answer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cmd.Println(answer)
			return nil
		},
	}
}
