package cmd

import (
	"fmt"
	"log/slog"

	"github.com/deckhubapp/deckhub/deckhub"
	"github.com/deckhubapp/deckhub/deckhub/catalog"
	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/database/repositories"
	"github.com/deckhubapp/deckhub/deckhub/services"
	"github.com/spf13/cobra"
)

var checkArtwork bool

var importCMD = &cobra.Command{
	Use:   "import <drop.json>",
	Short: "ingest a catalog drop file into the cards table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := deckhub.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		db, err := database.New(ctx, database.DBConfig{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Database,
			PoolSize: cfg.DB.PoolSize,
		})
		if err != nil {
			slog.Error("Failed to connect to database", slog.Any("error", err))
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		cards := repositories.NewCardRepository(db.BunDB())

		var spaces *services.SpacesService
		if checkArtwork {
			spaces, err = services.NewSpacesService(
				cfg.Spaces.Key,
				cfg.Spaces.Secret,
				cfg.Spaces.Region,
				cfg.Spaces.Bucket,
				cfg.Spaces.CardRoot,
			)
			if err != nil {
				return err
			}
		}

		importer := services.NewCardImportService(cards, catalog.NewService(cards), spaces)

		result, err := importer.ImportFile(ctx, args[0])
		if err != nil {
			slog.Error("Import failed", slog.Any("error", err))
			return err
		}

		for _, id := range result.MissingArtwork {
			slog.Warn("Card has no artwork in bucket", slog.Int64("card_id", id))
		}
		return nil
	},
}

func init() {
	importCMD.Flags().BoolVar(&checkArtwork, "check-artwork", false, "verify each card's artwork object exists in Spaces")
	rootCmd.AddCommand(importCMD)
}
