package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "gasviz/internal/errors"
)

// workbookExtensions are the spreadsheet formats excelize can open
var workbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// FileValidator checks the input workbook and output directories before a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputWorkbook checks that path is a non-empty spreadsheet file
func (v *FileValidator) ValidateInputWorkbook(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		v.logger.Error("Input workbook does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("input workbook", err).WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input workbook",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("failed to stat input workbook", err).WithContext("path", path)
	}
	if info.IsDir() {
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a workbook", path))
	}
	if info.Size() == 0 {
		return apperrors.NewValidationError(fmt.Sprintf("input workbook %s is empty", path))
	}

	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range workbookExtensions {
		if ext == e {
			supported = true
			break
		}
	}
	if !supported {
		return apperrors.NewValidationError(fmt.Sprintf("unsupported workbook extension %q", ext)).
			WithContext("path", path)
	}

	v.logger.Debug("Input workbook validated",
		slog.String("file", path),
		slog.Int64("bytes", info.Size()))
	return nil
}

// ValidateOutputDirectory ensures dir exists and is writable
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateOutputs checks the parent directory of every output path once.
// All directories are checked; the returned error joins the failures.
func (v *FileValidator) ValidateOutputs(paths ...string) error {
	seen := make(map[string]bool, len(paths))
	var errs []error
	for _, p := range paths {
		dir := filepath.Dir(p)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := v.ValidateOutputDirectory(dir); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
