package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/gunceblog/gunce-backend/gunce"
	"github.com/gunceblog/gunce-backend/gunce/database"
	"github.com/gunceblog/gunce-backend/gunce/migration"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	migrateConfigPath string
	migrateDataDir    string
	migrateFromMongo  bool
	migrateBatchSize  int
	migrateSleepMS    int
	migrateInsertMode string
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "import legacy profiles from the old platform into Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := gunce.LoadConfig(migrateConfigPath)
		if err != nil {
			slog.Error("Failed to load config", "error", err)
			return err
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
			slog.Error("Failed to connect to database", "error", err)
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			slog.Error("Failed to initialize schema", "error", err)
			return err
		}

		migrator := migration.NewMigrator(db.BunDB(), migrateDataDir)
		migrator.SetBatchSize(migrateBatchSize)
		migrator.SetSleepBetween(migrateSleepMS)
		migrator.SetInsertMode(migrateInsertMode)

		if migrateFromMongo {
			connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Legacy.MongoURI))
			if err != nil {
				slog.Error("Failed to connect to legacy MongoDB", "error", err)
				return err
			}
			defer client.Disconnect(ctx)

			migrator.UseMongo(client, cfg.Legacy.Database)
			if err := migrator.MigrateAllFromMongo(ctx); err != nil {
				slog.Error("Migration failed", "error", err)
				return err
			}
		} else {
			if err := migrator.MigrateAll(ctx); err != nil {
				slog.Error("Migration failed", "error", err)
				return err
			}
		}

		slog.Info("Migration completed successfully!")
		return nil
	},
}

func init() {
	migrateCMD.Flags().StringVar(&migrateConfigPath, "config", "config.toml", "path to config")
	migrateCMD.Flags().StringVar(&migrateDataDir, "data-dir", "data", "directory holding the mongodump BSON files")
	migrateCMD.Flags().BoolVar(&migrateFromMongo, "from-mongo", false, "import directly from the live legacy MongoDB")
	migrateCMD.Flags().IntVar(&migrateBatchSize, "batch-size", 1000, "rows per insert batch")
	migrateCMD.Flags().IntVar(&migrateSleepMS, "sleep-ms", 0, "sleep between batches in milliseconds")
	migrateCMD.Flags().StringVar(&migrateInsertMode, "insert-mode", "batch", "insert mode: batch or single")

	rootCmd.AddCommand(migrateCMD)
}
