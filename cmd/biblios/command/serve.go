package command

import (
	"os/signal"
	"syscall"

	"biblios/internal/app"
	"biblios/internal/infrastructure/logging"

	"github.com/spf13/cobra"
)

func newServeCmd(f *rootFlags) *cobra.Command {
	var port, sweep string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := f.config()
			if port != "" {
				cfg.AppPort = port
			}
			if sweep != "" {
				cfg.OverdueSweep = sweep
			}
			log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, log, app.Options{Migrate: true})
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default APP_PORT)")
	cmd.Flags().StringVar(&sweep, "overdue-sweep", "", `cron spec for the overdue sweep, e.g. "@every 5m"`)
	return cmd
}
