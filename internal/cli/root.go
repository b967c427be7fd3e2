// Package cli implements the scope command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randalmurphal/scope/internal/config"
	"github.com/randalmurphal/scope/internal/db"
	"github.com/randalmurphal/scope/internal/db/driver"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scope",
		Short: "Project management API server",
		Long: `scope serves a REST API for projects, sprints, tasks, risks,
meeting minutes and kanban boards.

Quick start:
  scope user add --username admin     Create a login
  scope serve                         Start the API server
  scope generate-id T --project P1    Suggest the next task id`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return initConfig() },
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./scope.yaml, $HOME/.scope/scope.yaml or /etc/scope/scope.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded into the environment if present")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newGenerateIDCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

// initConfig loads the dotenv file and locates the config file.
func initConfig() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.scope")
		v.AddConfigPath("/etc/scope")
		v.SetConfigType("yaml")
		v.SetConfigName("scope")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	configPath = v.ConfigFileUsed()
	if verbose && configPath != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", configPath)
	}
	return nil
}

// configPath is the config file found by initConfig, empty for defaults only.
var configPath string

// loadConfig returns the effective configuration: defaults, the config
// file, then environment overrides.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// openDB opens and migrates the configured database.
func openDB(cmd *cobra.Command, cfg *config.Config) (*db.DB, error) {
	dialect, err := driver.ParseDialect(cfg.Database.EffectiveDriver())
	if err != nil {
		return nil, err
	}

	store, err := db.OpenWithDialect(cfg.Database.DSN(), dialect, db.Options{
		MaxOpenConns: cfg.Database.Postgres.PoolMax,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := store.Ping(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return store, nil
}
