package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newMigrateCmd creates the migrate command
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply pending schema migrations to the configured database and exit.

Migrations are embedded in the binary and tracked in the _migrations table,
so running this repeatedly is safe. serve applies them on startup too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(), "Database migrated (%s)\n", store.Dialect())
			return nil
		},
	}
}
