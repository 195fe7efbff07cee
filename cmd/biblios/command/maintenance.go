package command

import (
	"context"
	"io"
	"time"

	"biblios/internal/app"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMigrateCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(_ context.Context, a *app.App, out io.Writer, _ []string) error {
			success(out, "schema up to date (%s)", a.Config.DBDriver)
			return nil
		}),
	}
}

func newOverdueCmd(f *rootFlags) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Mark every active loan past its due date as overdue",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return errors.Wrap(err, "--at")
				}
				now = t
			}
			n, err := a.Ledger.RecomputeOverdue(ctx, now)
			if err != nil {
				return err
			}
			success(out, "%d loan(s) marked overdue", n)
			return nil
		}),
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate as of this RFC3339 instant")
	return cmd
}

func newStatsCmd(f *rootFlags) *cobra.Command {
	var libraryID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show counters for a library (default: the active one)",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			s, err := a.Ledger.Stats(ctx, libraryID)
			if err != nil {
				return err
			}
			row(out, "library", s.LibraryID)
			row(out, "books", s.TotalBooks)
			row(out, "copies", s.TotalCopies)
			row(out, "available copies", s.AvailableCopies)
			row(out, "members", s.TotalMembers)
			row(out, "active members", s.ActiveMembers)
			row(out, "active loans", s.ActiveLoans)
			row(out, "overdue loans", s.OverdueLoans)
			row(out, "completed loans", s.CompletedLoans)
			row(out, "cancelled loans", s.CancelledLoans)
			return nil
		}),
	}
	cmd.Flags().StringVar(&libraryID, "library", "", "library id")
	return cmd
}
