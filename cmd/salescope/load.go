package main

import (
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/ingest"
)

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.xlsx|file.csv>",
		Short: "Append rows from a tabular file to sales_data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateDatabase(); err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			loader := ingest.NewLoader(store, nil)

			bar := progressbar.Default(-1, "loading sales rows")
			loader.Progress = func(n int) { _ = bar.Add(n) }

			count, err := loader.Load(cmd.Context(), args[0])
			_ = bar.Finish()
			if err != nil {
				return err
			}

			cmd.Printf("loaded %d rows into sales_data\n", count)
			return nil
		},
	}
}
