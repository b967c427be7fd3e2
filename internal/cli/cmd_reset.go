package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// newResetCmd creates the reset-db command
func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-db",
		Short: "Drop all tables and recreate the schema",
		Long: `Drop every scope table and apply the schema again.

All users, projects and project data are permanently deleted.
Pass --yes to confirm.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return &scopeerrors.ScopeError{
					Code: scopeerrors.CodeValidation,
					What: "refusing to reset the database",
					Why:  "This deletes all data. Re-run with --yes to confirm.",
				}
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

			if err := store.Reset(cmd.Context()); err != nil {
				return scopeerrors.Wrap(err, "Database reset failed")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Database reset and initialized successfully")
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "confirm deleting all data")

	return cmd
}
