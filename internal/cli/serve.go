package cli

import (
	"os/signal"
	"syscall"

	"invoice-bookkeeping-backend/internal/app"
	"invoice-bookkeeping-backend/internal/logging"
	"invoice-bookkeeping-backend/internal/routes"
	"invoice-bookkeeping-backend/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the invoice HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}

			log, closer, err := logging.New(cfg.LogLevel, cfg.LogFilePath)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, log, closer, opts.serviceOpts...)
			if err != nil {
				closer.Close()
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			router := routes.NewRouter(cfg.AllowedOrigins, a.Service, a.Log)
			return server.Run(ctx, addr, router, a.Log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :$PORT)")
	return cmd
}
