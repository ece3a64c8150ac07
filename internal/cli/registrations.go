package cli

import (
	"fmt"
	"text/tabwriter"

	"campusEvents/internal/views"

	"github.com/spf13/cobra"
)

func registrationsCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"history"},
		Short:   "Show your registration history",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			f, err := views.ParseHistoryFilter(filter)
			if err != nil {
				return err
			}

			snap, err := views.NewHistory(app.regs).Load(cmd.Context(), f)
			if err != nil {
				return failure(err, views.FailedRegistrations)
			}

			app.printHistory(snap)

			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(views.HistoryAll), "all, upcoming, past or cancelled")

	return cmd
}

func (a *App) printHistory(snap *views.HistorySnapshot) {
	if len(snap.Registrations) == 0 {
		a.printf("No %s registrations.\n", snap.Filter)
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EVENT\tTITLE\tSTARTS\tPHASE\tSTATUS")

	for _, r := range snap.Registrations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Event.ID, r.Event.Title, a.date(r.Event.StartAt), phaseLabel(r.Phase), statusLabel(r.Status))
	}

	_ = tw.Flush()

	a.printf("%d of %d registrations\n", len(snap.Registrations), snap.Total)
}

func registerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register <event-id>",
		Short: "Register for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.regs.Register(cmd.Context(), args[0]); err != nil {
				return failure(err, views.FailedRegister)
			}

			app.success(views.MsgRegistered)

			return nil
		},
	}
}

func cancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <event-id>",
		Short: "Cancel your registration for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.regs.Cancel(cmd.Context(), args[0]); err != nil {
				return failure(err, views.FailedCancel)
			}

			app.success(views.MsgCancelled)

			return nil
		},
	}
}
