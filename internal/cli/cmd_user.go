package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/randalmurphal/scope/internal/auth"
	"github.com/randalmurphal/scope/internal/db"
	"github.com/randalmurphal/scope/internal/db/driver"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// newUserCmd creates the user command group
func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a login account",
		Long: `Create a user that can log in through POST /api/auth/login.

Without --password the password is read from the terminal without echo.

Example:
  scope user add --username admin --email admin@example.com --full-name "Admin"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			fullName, _ := cmd.Flags().GetString("full-name")
			password, _ := cmd.Flags().GetString("password")

			username = strings.TrimSpace(username)
			if username == "" {
				return scopeerrors.ErrMissingFields("", "username")
			}
			if password == "" {
				p, err := readPassword(cmd)
				if err != nil {
					return err
				}
				password = p
			}
			if password == "" {
				return scopeerrors.ErrMissingFields("", "password")
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return scopeerrors.Wrap(err, "hash password")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			u := &db.User{
				ID:           uuid.NewString(),
				Username:     username,
				Email:        email,
				PasswordHash: hash,
				FullName:     fullName,
				IsActive:     true,
			}
			if err := store.CreateUser(cmd.Context(), u); err != nil {
				if driver.IsUniqueViolation(err) {
					return &scopeerrors.ScopeError{
						Code: scopeerrors.CodeConflict,
						What: fmt.Sprintf("user %s already exists", username),
					}
				}
				return scopeerrors.Wrap(err, "create user")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().String("username", "", "login name (required)")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("full-name", "", "display name")
	cmd.Flags().String("password", "", "password (prompted when omitted)")

	return cmd
}

// readPassword prompts twice on the terminal without echo.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", scopeerrors.ErrValidation("password required").WithCause(
			fmt.Errorf("stdin is not a terminal; pass --password"))
	}

	out := cmd.ErrOrStderr()
	fmt.Fprint(out, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", scopeerrors.ErrValidation("passwords do not match")
	}
	return string(first), nil
}
