package exporter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// RenderFunc streams an artifact into w
type RenderFunc func(w io.Writer) error

// FileWriter replaces output files
type FileWriter struct {
	logger *slog.Logger
}

// NewFileWriter creates a file writer. A nil logger uses slog.Default.
func NewFileWriter(logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWriter{logger: logger}
}

// Replace deletes any existing file at filePath and writes a new one with
// render. On failure no file is left at filePath. Log records carry ctx.
func (w *FileWriter) Replace(ctx context.Context, filePath string, render RenderFunc) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.Remove(filePath); err == nil {
		w.logger.InfoContext(ctx, "Deleted existing file", slog.String("file_path", filePath))
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete existing file: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	buf := bufio.NewWriter(file)
	writeErr := render(buf)
	if writeErr == nil {
		writeErr = buf.Flush()
	}
	closeErr := file.Close()

	if writeErr == nil && closeErr != nil {
		writeErr = fmt.Errorf("failed to close file: %w", closeErr)
	}
	if writeErr != nil {
		if rmErr := os.Remove(filePath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			w.logger.WarnContext(ctx, "Failed to remove partial file",
				slog.String("file_path", filePath),
				slog.String("error", rmErr.Error()))
		}
		return writeErr
	}

	info, err := os.Stat(filePath)
	if err == nil {
		w.logger.DebugContext(ctx, "Wrote file",
			slog.String("file_path", filePath),
			slog.Int64("bytes", info.Size()))
	}
	return nil
}
