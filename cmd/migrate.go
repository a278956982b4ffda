package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deckhubapp/deckhub/deckhub"
	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/migration"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoURI  string
	mongoName string
	batchSize int
	useCopy   bool
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "migrate the legacy Mongoose database into Postgres",
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

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			slog.Error("Failed to connect to Mongo", slog.Any("error", err))
			return err
		}
		defer client.Disconnect(ctx)

		migrator := migration.NewMigrator(db.BunDB(), client, mongoName)
		migrator.SetBatchSize(batchSize)
		if useCopy {
			migrator.SetUseCopy(true)
			migrator.UsePool(db.GetPool())
		}

		if err := migrator.MigrateAll(ctx); err != nil {
			slog.Error("Migration failed", slog.Any("error", err))
			return err
		}

		slog.Info("Migration completed successfully!")
		return nil
	},
}

func init() {
	migrateCMD.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "legacy Mongo connection URI")
	migrateCMD.Flags().StringVar(&mongoName, "mongo-db", "deckhub", "legacy Mongo database name")
	migrateCMD.Flags().IntVar(&batchSize, "batch-size", 1000, "insert batch size")
	migrateCMD.Flags().BoolVar(&useCopy, "use-copy", false, "use COPY FROM for user inserts (fresh tables only)")
	rootCmd.AddCommand(migrateCMD)
}
