package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogging(t *testing.T) {
	// not parallel: swaps the global logger

	t.Run("creates_log_directory", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "nested", "logs")

		require.NoError(t, InitLogging(logDir, nil))

		info, err := os.Stat(logDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("writes_to_extra_writers", func(t *testing.T) {
		logDir := t.TempDir()
		var buf bytes.Buffer

		require.NoError(t, InitLogging(logDir, []io.Writer{&buf}))
		log.Info().Msg("hello from test")

		assert.Contains(t, buf.String(), "hello from test")
	})
}
