// Package command holds the biblios admin CLI: serving the API and the
// maintenance chores that are easier run against the store directly.
package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"biblios/internal/app"
	"biblios/internal/config"
	"biblios/internal/infrastructure/logging"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	driver   string
	sqlite   string
	logLevel string
}

func NewRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:   "biblios",
		Short: "biblios - library inventory and lending ledger",
		Long: `biblios keeps the books, members and loans of one or more libraries.

Configuration comes from the environment (and an optional .env file);
the flags below override the storage settings for a single run.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&f.driver, "driver", "", "storage driver (sqlite, mysql, postgres)")
	root.PersistentFlags().StringVar(&f.sqlite, "sqlite", "", "sqlite database path")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newServeCmd(f),
		newMigrateCmd(f),
		newOverdueCmd(f),
		newStatsCmd(f),
		newLibraryCmd(f),
	)
	return root
}

// Execute is called by main.main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (f *rootFlags) config() *config.Config {
	cfg := config.Load()
	if f.driver != "" {
		cfg.DBDriver = f.driver
	}
	if f.sqlite != "" {
		cfg.SQLitePath = f.sqlite
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg
}

// open builds an App for one-shot commands: migrated, no redis.
func (f *rootFlags) open(cmd *cobra.Command) (*app.App, error) {
	cfg := f.config()
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return app.New(cmd.Context(), cfg, log, app.Options{Migrate: true, SkipRedis: true})
}

func withApp(f *rootFlags, fn func(ctx context.Context, a *app.App, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := f.open(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd.Context(), a, cmd.OutOrStdout(), args)
	}
}
