package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/healthvibe/internal/app"
	"github.com/MrSnakeDoc/healthvibe/internal/config"
	"github.com/MrSnakeDoc/healthvibe/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "healthvibe",
	Short: "Natural remedy catalog and wellness API",
	Long: `healthvibe serves a catalog of natural remedies, per-client bookmarks,
ratings, activity and settings, and template-generated remedy suggestions.

Running it without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, exportCmd, generateCmd, versionCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		log.Error("startup failed", logger.Error(err))
		return err
	}
	return a.Run(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ healthvibe: %v\n", err)
		os.Exit(1)
	}
}
