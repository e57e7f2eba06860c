package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := loadConfig()

		db, _, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB(db, logger)

		logger.Info("schema migrated", "driver", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
