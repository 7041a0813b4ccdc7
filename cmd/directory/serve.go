package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kapu/senate-directory-go/internal/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the directory page, JSON API and live endpoint",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	container, logger, err := setup("")
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer container.Close()

	logger.Info("Senate directory starting...",
		zap.String("addr", container.Config.Server.Addr),
		zap.String("log_level", container.Config.Logging.Level),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 첫 로드 실패는 치명적이지 않음: "Data unavailable" 상태로 서비스
	if _, err := container.Store.Load(ctx); err != nil {
		logger.Warn("Initial dataset load failed, serving unavailable state", zap.Error(err))
	}

	if container.Watcher != nil {
		go func() {
			if err := container.Watcher.Run(ctx); err != nil {
				logger.Error("Dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := container.NewServer()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err = <-errCh:
		logger.Error("Server error", zap.Error(err))
	}

	logger.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ServerConfig.ShutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Error during shutdown", zap.Error(shutdownErr))
	}

	logger.Info("Shutdown complete")
	return err
}
