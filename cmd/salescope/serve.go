package main

import (
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP chat surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Credentials are validated before the first request, not during one.
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

			srv := server.New(p, nil, cfg.Server.AllowedOrigins)
			return srv.Start(cmd.Context(), cfg.Server.Addr)
		},
	}
	return cmd
}
