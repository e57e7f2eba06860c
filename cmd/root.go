package cmd

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	config "task-marketplace.com/task-marketplace/internal/configs"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "task-marketplace",
	Short:         "Task marketplace service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file; env vars are used otherwise")
}

func loadConfig() (config.Config, *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg := config.Load(configPath)
	return cfg, config.NewLogger(cfg.LogLevel)
}

// openStore connects to the configured database and migrates the schema.
func openStore(cfg config.Config, logger *slog.Logger) (*gorm.DB, *repository.Store, error) {
	db, err := config.NewDatabase(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Migrate(db); err != nil {
		return nil, nil, err
	}

	logger.Debug("database ready", "driver", cfg.DBDriver)
	return db, repository.NewStore(db), nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("closing database failed", "error", err)
	}
}
