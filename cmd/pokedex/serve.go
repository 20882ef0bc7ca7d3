package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve it as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			rt, err := app.NewRuntime(cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Fprintf(cmd.ErrOrStderr(), "serving on %s (logs: %s)\n", cfg.Server.Addr, cfg.LogFile)
			return app.Serve(cmd.Context(), rt, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
