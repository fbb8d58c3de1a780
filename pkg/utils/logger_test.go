package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("defaults to info text on fallback writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(NewConfig(nil), &buf)
		require.NoError(t, err)

		assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
		logger.WithField("module", "TEST").Info("hello")
		assert.Contains(t, buf.String(), "hello")
		assert.Contains(t, buf.String(), "module=TEST")
	})

	t.Run("json format", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewLogger(NewConfig(map[string]string{"LOG_FORMAT": "json", "LOG_LEVEL": "debug"}), &buf)
		require.NoError(t, err)

		logger.Debug("details")
		assert.Contains(t, buf.String(), `"msg":"details"`)
	})

	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "til.log")
		logger, err := NewLogger(NewConfig(map[string]string{"LOG_FILE": path}), nil)
		require.NoError(t, err)

		logger.Warn("to file")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to file")
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := NewLogger(NewConfig(map[string]string{"LOG_LEVEL": "loud"}), nil)
		assert.Error(t, err)

		_, err = NewLogger(NewConfig(map[string]string{"LOG_FORMAT": "xml"}), nil)
		assert.Error(t, err)
	})
}
