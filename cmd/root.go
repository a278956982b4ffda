package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/deckhubapp/deckhub/deckhub/logger"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "deckhub",
	Short: "DeckHub administrative tooling",
	Long:  "Offline tooling for the DeckHub platform: legacy data migration and catalog ingestion.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

// Execute runs the CLI with signal-aware cancellation.
func Execute() {
	slog.SetDefault(slog.New(logger.NewHandler("DeckHub-CLI")))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
