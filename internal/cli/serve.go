package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/scope/internal/api"
	"github.com/randalmurphal/scope/internal/auth"
	"github.com/randalmurphal/scope/internal/logging"
)

// newServeCmd creates the serve command for the API server
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the scope API server.

The database is migrated on startup. The server runs until SIGINT or
SIGTERM, then drains in-flight requests for server.shutdown_timeout.

A signing secret is required (auth.jwt_secret or SCOPE_JWT_SECRET).

Example:
  scope serve              # Start on the configured port (default 3001)
  scope serve --port 8080  # Start on a custom port`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port, _ = cmd.Flags().GetInt("port")
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host, _ = cmd.Flags().GetString("host")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := logging.New(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()
			slog.SetDefault(logger)

			tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := openDB(cmd, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("close database", "error", err)
				}
			}()
			logger.Info("database ready", "driver", store.Dialect())

			server, err := api.New(&api.Config{
				Addr:            cfg.Server.Addr(),
				Logger:          logger,
				Store:           store,
				Tokens:          tokens,
				CORSOrigin:      cfg.Server.CORSOrigin,
				AdminEndpoints:  cfg.Server.AdminEndpoints,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Starting API server on %s\n", cfg.Server.Addr())
			fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

			return server.StartContext(ctx)
		},
	}

	cmd.Flags().IntP("port", "p", 3001, "port to listen on")
	cmd.Flags().String("host", "0.0.0.0", "address to bind")

	return cmd
}
