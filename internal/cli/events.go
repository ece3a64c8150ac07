package cli

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"campusEvents/internal/api"
	"campusEvents/internal/forms"
	"campusEvents/internal/models"
	"campusEvents/internal/views"

	"github.com/spf13/cobra"
)

func eventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse, create and manage events",
	}

	cmd.AddCommand(
		eventsListCmd(app),
		eventsShowCmd(app),
		eventsCreateCmd(app),
		eventsEditCmd(app),
		eventsDeleteCmd(app),
		eventsAttendeesCmd(app),
	)

	return cmd
}

func eventsListCmd(app *App) *cobra.Command {
	var (
		filters api.EventFilters
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events page by page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := views.NewEventsList(app.client, app.regs, app.pageSize)
			list.SetFilters(filters)
			list.SetPage(page)

			snap, err := list.Refresh(cmd.Context())
			if err != nil {
				return failure(err, views.FailedListEvents)
			}

			app.printEvents(snap)

			return nil
		},
	}

	cmd.Flags().StringVarP(&filters.Search, "query", "q", "", "search text")
	cmd.Flags().BoolVar(&filters.Upcoming, "upcoming", false, "only events that have not started")
	cmd.Flags().StringVar(&filters.Tags, "tags", "", "comma separated tags")
	cmd.Flags().StringVar(&filters.Organizer, "organizer", "", "organizer id")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func (a *App) printEvents(snap *views.EventsSnapshot) {
	if len(snap.Events) == 0 {
		a.printf("No events found.\n")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTARTS\tPHASE\tLOCATION\tREGISTERED")

	for _, e := range snap.Events {
		registered := ""
		switch {
		case e.InFlight:
			registered = "..."
		case e.Registered:
			registered = "yes"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Title, a.date(e.StartAt), phaseLabel(e.Phase), e.Location, registered)
	}

	_ = tw.Flush()

	a.printf("Page %d of %d (%d events)\n", snap.Query.Page, max(snap.TotalPages, 1), snap.TotalItems)
}

func eventsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail := views.NewEventDetail(app.client, app.regs, app.session.Viewer())

			snap, err := detail.Open(cmd.Context(), args[0])
			if err != nil {
				return failure(err, views.FailedGetEvent)
			}

			app.printDetail(snap)

			return nil
		},
	}
}

func (a *App) printDetail(snap *views.DetailSnapshot) {
	e := snap.Event

	a.printf("%s  [%s]\n\n%s\n\n", e.Title, phaseLabel(snap.Phase), e.Description)
	a.printf("Starts:    %s\n", a.date(e.StartAt))

	if e.EndAt != nil {
		a.printf("Ends:      %s\n", a.date(*e.EndAt))
	}
	if e.Location != "" {
		a.printf("Location:  %s\n", e.Location)
	}
	if e.Capacity != nil {
		a.printf("Capacity:  %d\n", *e.Capacity)
	}
	if len(e.Tags) > 0 {
		a.printf("Tags:      %s\n", forms.JoinTags(e.Tags))
	}

	a.printf("Organizer: %s\n", e.Organizer.Name)
	a.printf("Views:     %d\n", e.Meta.Views)

	if a.session.Authenticated() {
		a.printf("Registered: %t\n", snap.Registered)
	}
	if snap.CanEdit {
		a.printf("You can edit this event: eventsctl events edit %s\n", e.ID)
	}
}

// formFlags binds one flag per form field. Only the flags given on the command line are
// applied, so an edit leaves the other fields as loaded.
type formFlags struct {
	title, description, location, capacity string
	start, end, tags, image                string
	published                              bool
}

func (f *formFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "event title")
	cmd.Flags().StringVar(&f.description, "description", "", "event description")
	cmd.Flags().StringVar(&f.location, "location", "", "where it happens")
	cmd.Flags().StringVar(&f.capacity, "capacity", "", "maximum attendees")
	cmd.Flags().StringVar(&f.start, "start", "", "start, as "+forms.InputLayout)
	cmd.Flags().StringVar(&f.end, "end", "", "end, as "+forms.InputLayout)
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma separated tags")
	cmd.Flags().BoolVar(&f.published, "published", true, "publish the event")
	cmd.Flags().StringVar(&f.image, "image", "", "path to a cover image")
}

func (f *formFlags) apply(cmd *cobra.Command, form *forms.EventForm) error {
	fields := []struct {
		flag, field, value string
	}{
		{"title", forms.FieldTitle, f.title},
		{"description", forms.FieldDescription, f.description},
		{"location", forms.FieldLocation, f.location},
		{"capacity", forms.FieldCapacity, f.capacity},
		{"start", forms.FieldStartAt, f.start},
		{"end", forms.FieldEndAt, f.end},
		{"tags", forms.FieldTags, f.tags},
		{"published", forms.FieldIsPublished, strconv.FormatBool(f.published)},
	}

	for _, fl := range fields {
		if !cmd.Flags().Changed(fl.flag) {
			continue
		}

		if err := form.Set(fl.field, fl.value); err != nil {
			return err
		}
	}

	if f.image == "" {
		return nil
	}

	b, err := os.ReadFile(f.image)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	form.Image = &api.File{
		Name:        filepath.Base(f.image),
		ContentType: mime.TypeByExtension(filepath.Ext(f.image)),
		Content:     bytes.NewReader(b),
	}

	return nil
}

func (a *App) submit(form *forms.EventForm, mode forms.Mode) (api.EventInput, error) {
	if errs := form.Validate(a.now(), mode, a.loc); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		msgs := make([]string, 0, len(fields))
		for _, field := range fields {
			msgs = append(msgs, fmt.Sprintf("%s: %s", field, errs[field]))
		}

		return api.EventInput{}, fmt.Errorf("invalid event form\n  %s", strings.Join(msgs, "\n  "))
	}

	return form.ToInput(a.loc)
}

func eventsCreateCmd(app *App) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			form := forms.New()
			if err := flags.apply(cmd, form); err != nil {
				return err
			}

			in, err := app.submit(form, forms.ModeCreate)
			if err != nil {
				return err
			}

			e, err := app.client.CreateEvent(cmd.Context(), in)
			if err != nil {
				return failure(err, "Failed to create event")
			}

			app.success(views.MsgEventCreated)
			app.printf("id: %s\n", e.ID)

			return nil
		},
	}

	flags.bind(cmd)

	return cmd
}

func eventsEditCmd(app *App) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an event you organize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			e, err := app.client.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return failure(err, views.FailedGetEvent)
			}

			if !app.session.Viewer().CanEdit(e) {
				return views.ErrNotOwner
			}

			form := forms.FromEvent(e, app.loc)
			if err = flags.apply(cmd, form); err != nil {
				return err
			}

			in, err := app.submit(form, forms.ModeEdit)
			if err != nil {
				return err
			}

			if _, err = app.client.UpdateEvent(cmd.Context(), e.ID, in); err != nil {
				return failure(err, "Failed to update event")
			}

			app.success(views.MsgEventUpdated)

			return nil
		},
	}

	flags.bind(cmd)

	return cmd
}

func eventsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event you organize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			detail := views.NewEventDetail(app.client, app.regs, app.session.Viewer())

			if _, err := detail.Open(cmd.Context(), args[0]); err != nil {
				return failure(err, views.FailedGetEvent)
			}

			if err := detail.Delete(cmd.Context()); err != nil {
				return failure(err, views.FailedDelete)
			}

			app.success(views.MsgEventDeleted)

			return nil
		},
	}
}

func eventsAttendeesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attendees <id>",
		Short: "List who registered for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			if !app.session.Viewer().CanCreateEvents() {
				return errors.New("only organizers and admins can see attendees")
			}

			attendees, err := app.client.EventRegistrations(cmd.Context(), args[0])
			if err != nil {
				return failure(err, "Failed to fetch attendees")
			}

			app.printAttendees(attendees)

			return nil
		},
	}
}

func (a *App) printAttendees(attendees []models.Attendee) {
	if len(attendees) == 0 {
		a.printf("No registrations yet.\n")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tSTATUS\tREGISTERED AT")

	for _, at := range attendees {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", at.User.Name, at.User.Email, statusLabel(at.Status), a.date(at.CreatedAt))
	}

	_ = tw.Flush()
}
