package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger from LOG_LEVEL, LOG_FORMAT and LOG_FILE.
// When LOG_FILE is set, output is appended to that file; otherwise it goes to fallback
func NewLogger(cfg *Config, fallback io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.GetWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.GetWithDefault("LOG_FORMAT", "text")) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT '%s', expected text or json", cfg.Get("LOG_FORMAT"))
	}

	if path := cfg.Get("LOG_FILE"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.SetOutput(file)
	} else if fallback != nil {
		logger.SetOutput(fallback)
	}

	return logger, nil
}

// NewNopLogger returns a logger that discards everything, for tests and quiet commands
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
