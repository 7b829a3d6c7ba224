package main

import (
	"log"

	"github.com/spf13/cobra"

	"commandapi/config"
	"commandapi/db"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			dbConn, err := db.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			if err := db.ApplyMigrations(cmd.Context(), dbConn, cfg.DatabaseSchema); err != nil {
				return err
			}

			log.Printf("✅ Migrations applied to schema %s", cfg.DatabaseSchema)
			return nil
		},
	}
}
