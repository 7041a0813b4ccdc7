package main

import (
	"fmt"
	"os"

	"github.com/kapu/senate-directory-go/internal/app"
	"github.com/kapu/senate-directory-go/internal/config"
	"github.com/kapu/senate-directory-go/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "directory",
	Short: "Senate directory: list, filter and serve legislator records",
	Long: `directory loads the legislator dataset configured by DATASET_URL or
DATASET_FILE (the embedded sample when neither is set) and either serves the
directory over HTTP or prints projections of it to the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at the configured LOG_LEVEL in query commands")
	rootCmd.AddCommand(serveCmd, listCmd, partiesCmd, leadersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, creates the logger and assembles services.
// levelOverride replaces LOG_LEVEL when non-empty.
func setup(levelOverride string) (*app.Container, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logging.Level
	if levelOverride != "" {
		level = levelOverride
	}
	logger, err := util.NewLogger(level, cfg.Logging.File)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := app.Build(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("failed to assemble application services: %w", err)
	}
	return container, logger, nil
}
