package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/scope/internal/db"
	scopeerrors "github.com/randalmurphal/scope/internal/errors"
)

// newGenerateIDCmd creates the generate-id command
func newGenerateIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-id <prefix>",
		Short: "Print the next free identifier for an entity type",
		Long: `Print the next free identifier for an entity type.

Prefixes: P (project), T (task), S (sprint), R (risk), M (minutes).
With --project the numbering of T, S, R and M is limited to that project.

Example:
  scope generate-id P
  scope generate-id T --project P1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := strings.ToUpper(args[0])
			if !db.ValidPrefix(prefix) {
				return scopeerrors.ErrInvalidPrefix(args[0])
			}
			project, _ := cmd.Flags().GetString("project")

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id, err := store.NextID(cmd.Context(), prefix, project)
			if errors.Is(err, db.ErrInvalidPrefix) {
				return scopeerrors.ErrInvalidPrefix(prefix)
			}
			if err != nil {
				return scopeerrors.Wrap(err, "Failed to generate ID")
			}

			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().String("project", "", "limit numbering to this project")

	return cmd
}
