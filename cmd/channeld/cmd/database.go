package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateTrack bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, application, err := setupApp()
		if err != nil {
			return err
		}
		defer application.Release()

		if err := application.MigrateDB(migrateTrack); err != nil {
			return err
		}
		zap.L().Info("database migrated")
		return nil
	},
}

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Drop and recreate all tables (destroys data)",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, application, err := setupApp()
		if err != nil {
			return err
		}
		defer application.Release()

		if err := application.InitDb(); err != nil {
			return err
		}
		zap.L().Info("database initialized")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateTrack, "track", false, "log every migration statement")
}
