package command

import (
	"context"
	"fmt"
	"io"

	"biblios/internal/app"
	"biblios/internal/usecase/library"

	"github.com/spf13/cobra"
)

func newLibraryCmd(f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage libraries and the active selection",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List libraries; the active one is starred",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			libs, err := a.Libraries.List(ctx)
			if err != nil {
				return err
			}
			if len(libs) == 0 {
				warn(out, "no libraries yet; create one with `biblios library create NAME`")
				return nil
			}
			for _, l := range libs {
				mark := " "
				if l.Active {
					mark = colorGreen.Sprint("*")
				}
				fmt.Fprintf(out, "%s %s  %s\n", mark, l.ID, l.Name)
			}
			return nil
		}),
	}

	var address string
	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a library (the first one becomes active)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			l, err := a.Libraries.Create(ctx, library.CreateInput{Name: args[0], Address: address})
			if err != nil {
				return err
			}
			success(out, "created %s (%s)", l.Name, l.ID)
			if l.Active {
				row(out, "active", "yes")
			}
			return nil
		}),
	}
	create.Flags().StringVar(&address, "address", "", "street address")

	activate := &cobra.Command{
		Use:   "activate ID",
		Short: "Make a library the active one",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, a *app.App, out io.Writer, args []string) error {
			l, err := a.Libraries.Activate(ctx, args[0])
			if err != nil {
				return err
			}
			success(out, "%s is now active", l.Name)
			return nil
		}),
	}

	current := &cobra.Command{
		Use:   "current",
		Short: "Show the active library",
		Args:  cobra.NoArgs,
		RunE: withApp(f, func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			l, err := a.Libraries.Current(ctx)
			if err != nil {
				return err
			}
			row(out, "id", l.ID)
			row(out, "name", l.Name)
			if l.Address != "" {
				row(out, "address", l.Address)
			}
			return nil
		}),
	}

	cmd.AddCommand(list, create, activate, current)
	return cmd
}
