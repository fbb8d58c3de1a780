package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethanbaker/til/internal/api"
	"github.com/ethanbaker/til/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Start the API server
func main() {
	// Load global config
	cfg := utils.NewConfigFromEnv(utils.EnvFile())

	logger, err := utils.NewLogger(cfg, os.Stderr)
	if err != nil {
		logrus.WithError(err).Fatal("[API-MAIN]: failed to create logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start
	if err := api.Start(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("[API-MAIN]: server stopped")
	}
}
