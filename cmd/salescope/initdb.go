package main

import (
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/config"
)

func initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the sales_data table if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if err := store.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			cmd.Println("sales_data table ready")
			return nil
		},
	}
}
