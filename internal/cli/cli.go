// Package cli is the terminal front-end: the same views and actions as the web front-end,
// with the session kept in a YAML file between invocations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"campusEvents/internal/api"
	"campusEvents/internal/lib/logger/handlers/slogdiscard"
	"campusEvents/internal/lib/logger/handlers/slogpretty"
	"campusEvents/internal/models"
	"campusEvents/internal/regstate"
	"campusEvents/internal/session"
	"campusEvents/internal/views"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	envAPIURL      = "CAMPUS_API_URL"
	envSessionPath = "CAMPUS_SESSION"

	defaultAPIURL = "http://localhost:5000/api"
	dateLayout    = "Mon 02 Jan 2006 15:04"
)

// App is the state one command runs against.
type App struct {
	out      io.Writer
	log      *slog.Logger
	files    *session.FileStore
	session  *session.Session
	client   *api.Client
	regs     *regstate.Store
	loc      *time.Location
	pageSize int
	now      func() time.Time
}

type options struct {
	apiURL      string
	sessionPath string
	timeout     time.Duration
	timeZone    string
	pageSize    int
	debug       bool
	noColor     bool
}

// NewRootCmd builds the eventsctl command tree.
func NewRootCmd() *cobra.Command {
	var (
		opts options
		app  = &App{now: time.Now}
	)

	cmd := &cobra.Command{
		Use:           "eventsctl",
		Short:         "Browse and manage campus events from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api", envOr(envAPIURL, defaultAPIURL), "backend API base URL")
	flags.StringVar(&opts.sessionPath, "session", envOr(envSessionPath, defaultSessionPath()), "session file")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (0 waits indefinitely)")
	flags.StringVar(&opts.timeZone, "tz", "Local", "time zone for dates shown and entered")
	flags.IntVar(&opts.pageSize, "page-size", 12, "events per page")
	flags.BoolVar(&opts.debug, "debug", false, "log requests to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		loginCmd(app),
		signupCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		eventsCmd(app),
		registrationsCmd(app),
		registerCmd(app),
		cancelCmd(app),
	)

	return cmd
}

// Execute runs the command tree and reports the failure, if any, on stderr.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("Error:"), err)
		return 1
	}

	return 0
}

func (a *App) setup(out, errOut io.Writer, opts options) error {
	const op = "cli.App.setup"

	if opts.noColor {
		color.NoColor = true
	}

	a.out = out
	a.pageSize = opts.pageSize

	a.log = slogdiscard.NewDiscardLogger()
	if opts.debug {
		a.log = slog.New(slogpretty.PrettyHandlerOptions{
			SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
		}.NewPrettyHandler(errOut))
	}

	loc := time.Local
	if opts.timeZone != "" && opts.timeZone != "Local" {
		var err error
		if loc, err = time.LoadLocation(opts.timeZone); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	a.loc = loc

	a.files = session.NewFileStore(opts.sessionPath)

	s, err := a.files.Load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a.session = s

	clientOpts := []api.Option{}
	if opts.timeout > 0 {
		clientOpts = append(clientOpts, api.WithTimeout(opts.timeout))
	}

	a.client = api.New(opts.apiURL, a.session, clientOpts...)
	a.regs = regstate.New(a.client, a.session, a.log)

	return nil
}

// requireLogin mirrors the web route guard: only token presence is checked. A token that
// looks expired is still sent, with a warning.
func (a *App) requireLogin() error {
	if !a.session.Authenticated() {
		return errors.New("login required: run 'eventsctl login'")
	}

	if a.session.ExpiredAt(a.now()) {
		fmt.Fprintln(a.out, color.YellowString("Your session token has expired; run 'eventsctl login' if the backend refuses it."))
	}

	return nil
}

func (a *App) saveSession() error {
	if err := a.files.Save(a.session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) success(msg string) {
	fmt.Fprintln(a.out, color.GreenString(msg))
}

func (a *App) date(t time.Time) string {
	return t.In(a.loc).Format(dateLayout)
}

func phaseLabel(p models.Phase) string {
	switch p {
	case models.PhaseUpcoming:
		return color.GreenString(string(p))
	case models.PhaseLive:
		return color.YellowString(string(p))
	default:
		return color.HiBlackString(string(p))
	}
}

func statusLabel(s models.RegistrationStatus) string {
	switch s {
	case models.RegistrationRegistered:
		return color.GreenString(string(s))
	case models.RegistrationCancelled:
		return color.RedString(string(s))
	default:
		return color.CyanString(string(s))
	}
}

// failure turns err into the single line the web front-end would show.
func failure(err error, fallback string) error {
	return errors.New(views.ErrorMessage(err, fallback))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "campus-events", "session.yaml")
}
