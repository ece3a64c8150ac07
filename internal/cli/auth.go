package cli

import (
	"errors"
	"fmt"

	"campusEvents/internal/api"
	"campusEvents/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
)

var validate = validator.New()

func loginCmd(app *App) *cobra.Command {
	var in api.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validate.Var(in.Email, "required,email"); err != nil {
				return errors.New("a valid --email is required")
			}
			if in.Password == "" {
				return errors.New("--password is required")
			}

			res, err := app.client.Login(cmd.Context(), in)
			if err != nil {
				return failure(err, "Login failed")
			}

			return app.signIn(res)
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")

	return cmd
}

func signupCmd(app *App) *cobra.Command {
	var (
		in   api.SignUp
		role string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Name == "" || in.Password == "" {
				return errors.New("--name and --password are required")
			}
			if err := validate.Var(in.Email, "required,email"); err != nil {
				return errors.New("a valid --email is required")
			}
			if err := validate.Var(role, "omitempty,oneof=student organizer"); err != nil {
				return fmt.Errorf("--role must be student or organizer, got %q", role)
			}
			in.Role = models.Role(role)

			res, err := app.client.Register(cmd.Context(), in)
			if err != nil {
				return failure(err, "Registration failed")
			}

			return app.signIn(res)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&role, "role", "", "student or organizer (backend default when empty)")

	return cmd
}

func (a *App) signIn(res *api.AuthResult) error {
	a.session.SignIn(res.Token, res.User)

	if err := a.saveSession(); err != nil {
		return err
	}

	a.printf("Signed in as %s <%s> (%s)\n", res.User.Name, res.User.Email, res.User.Role)

	return nil
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app.session.SignOut()

			if err := app.files.Clear(); err != nil {
				return err
			}

			app.success("Signed out")

			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile, refreshed from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			u, err := app.client.Profile(cmd.Context())
			if err != nil {
				return failure(err, "Failed to fetch profile")
			}

			app.session.SignIn(app.session.AccessToken, *u)
			if err = app.saveSession(); err != nil {
				return err
			}

			app.printf("%s <%s>\nrole: %s\nid:   %s\n", u.Name, u.Email, u.Role, u.ID)

			return nil
		},
	}
}
