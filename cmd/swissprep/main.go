// Command swissprep manages the local study store from the shell: facts,
// import and export, progress and the building catalog.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/swisscitizen/prep/internal/app"
	"github.com/swisscitizen/prep/internal/config"
)

var version = "0.1.0-dev"

type rootFlags struct {
	dbPath  string
	verbose bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "swissprep",
		Short:         "Study tool for the Swiss citizenship interview",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "Path to the SQLite store (default: $DB_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log to stderr")

	rootCmd.AddCommand(
		newServeCmd(&flags),
		newFactsCmd(&flags),
		newExportCmd(&flags),
		newImportCmd(&flags),
		newProgressCmd(&flags),
		newBuildingsCmd(&flags),
		newStoreCmd(&flags),
	)

	return rootCmd
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}
	return cfg, nil
}

// withApp opens the store, runs fn and closes the store again.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(*app.App) error) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = cfg.LogLevel
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a, err := app.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the web app",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			logger := slog.New(slog.NewJSONHandler(cmd.OutOrStdout(), &slog.HandlerOptions{
				Level: cfg.LogLevel,
			}))
			a, err := app.Open(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.Serve(cmd.Context(), cfg.HTTPAddr, cfg.SPADir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: $HTTP_ADDR)")

	return cmd
}
