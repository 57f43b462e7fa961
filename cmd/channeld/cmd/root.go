package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talkincode/channelhub/config"
	"github.com/talkincode/channelhub/internal/app"
)

var (
	cfgFile string
	version string
)

var rootCmd = &cobra.Command{
	Use:   "channeld",
	Short: "Channel registry admin API server",
	Long: `channeld serves the channel registry REST API under /api/channels,
backed by sqlite or postgres.`,
	SilenceUsage: true,
	RunE:         serve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(initdbCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute executes the root command.
func Execute(v string) {
	version = v

	if err := rootCmd.Execute(); err != nil {
		zap.S().Error(err)
		os.Exit(1)
	}
}

// setupApp loads configuration and opens the database
func setupApp() (*config.AppConfig, *app.Application, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, application, nil
}
