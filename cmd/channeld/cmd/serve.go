package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talkincode/channelhub/internal/adminapi"
	"github.com/talkincode/channelhub/internal/webserver"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin API server (default)",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, application, err := setupApp()
	if err != nil {
		return err
	}
	defer application.Release()

	zap.S().Infof("starting channeld %s", version)

	srv := webserver.NewAdminServer(cfg)
	adminapi.Init(srv, application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		zap.L().Info("signal received, shutting down", zap.String("signal", sig.String()))
	}

	if err := srv.Shutdown(shutdownTimeout); err != nil {
		zap.L().Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	zap.L().Info("server stopped")
	return nil
}
