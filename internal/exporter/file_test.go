package exporter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gasviz/internal/config"
	"gasviz/internal/infrastructure"
	"gasviz/internal/shared/testutil"
)

func TestFileWriter_Replace(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	w := NewFileWriter(logger)
	path := filepath.Join(t.TempDir(), "nested", "out.html")

	require.NoError(t, w.Replace(context.Background(), path, func(out io.Writer) error {
		_, err := io.WriteString(out, "first")
		return err
	}))
	testutil.AssertNoLogContains(t, handler, slog.LevelInfo, "Deleted existing file")

	require.NoError(t, w.Replace(context.Background(), path, func(out io.Writer) error {
		_, err := io.WriteString(out, "second")
		return err
	}))
	testutil.AssertLogContains(t, handler, slog.LevelInfo, "Deleted existing file")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestFileWriter_ReplaceFailureRemovesPartialFile(t *testing.T) {
	w := NewFileWriter(nil)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	boom := errors.New("encoder failed")
	err := w.Replace(context.Background(), path, func(out io.Writer) error {
		_, _ = io.WriteString(out, "partial")
		return boom
	})

	require.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file should remain after a failed write")
}

func TestFileWriter_ReplaceUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewFileWriter(nil).Replace(context.Background(), filepath.Join(blocker, "out.html"), func(io.Writer) error { return nil })
	assert.Error(t, err)
}

func TestFileWriter_ReplaceLogsRunID(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "run.log")
	logger, err := infrastructure.InitializeLogger(config.LoggingConfig{Level: "debug", Output: "file", FilePath: logFile})
	require.NoError(t, err)

	w := NewFileWriter(logger)
	ctx := infrastructure.WithRunID(context.Background(), "run-42")
	path := filepath.Join(t.TempDir(), "out.html")
	for i := 0; i < 2; i++ {
		require.NoError(t, w.Replace(ctx, path, func(out io.Writer) error {
			_, err := io.WriteString(out, "page")
			return err
		}))
	}
	require.NoError(t, infrastructure.CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Deleted existing file file_path="+path+" run_id=run-42")
	assert.Contains(t, string(content), "Wrote file file_path="+path+" bytes=4 run_id=run-42")
}
