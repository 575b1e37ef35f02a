package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/loader"
)

// SourceValidator preflights the files a pipeline run reads and the
// directory it publishes into, so misconfigured paths surface before
// any load work starts.
type SourceValidator struct {
	logger *slog.Logger
}

// NewSourceValidator creates a new source validator
func NewSourceValidator(logger *slog.Logger) *SourceValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceValidator{
		logger: logger,
	}
}

// ValidateStagingDir ensures the staging directory exists or can be
// created, and is writable.
func (v *SourceValidator) ValidateStagingDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create staging directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("create staging directory %s", dir), err)
	}

	// Verify it's writable by creating a probe file
	probe := filepath.Join(dir, ".write_probe")
	file, err := os.Create(probe)
	if err != nil {
		v.logger.Error("Staging directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("staging directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(probe)

	v.logger.Debug("Staging directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateSourceFile checks that path names an existing, readable,
// non-empty regular file.
func (v *SourceValidator) ValidateSourceFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Source file does not exist",
			slog.String("file", path))
		return apperrors.NewStorageError(fmt.Sprintf("source file %s does not exist", path), err)
	}
	if err != nil {
		v.logger.Error("Failed to stat source file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("stat source file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Source path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}
	if info.Size() == 0 {
		v.logger.Error("Source file is empty",
			slog.String("file", path))
		return apperrors.NewValidationError(fmt.Sprintf("source file %s is empty", path))
	}

	// Excel lock files from an open workbook
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Source file is an Excel lock file",
			slog.String("file", path))
		return apperrors.NewValidationError(fmt.Sprintf("%s is an Excel lock file", path))
	}

	// Check the file is readable by opening it
	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Source file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("source file %s is not readable", path), err)
	}
	file.Close()

	v.logger.Debug("Source file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateSource checks the file itself and that its format is either
// explicitly configured or inferable from the file extension.
func (v *SourceValidator) ValidateSource(path string, format loader.Format) error {
	if err := v.ValidateSourceFile(path); err != nil {
		return err
	}

	switch format {
	case loader.FormatCSV, loader.FormatTSV, loader.FormatJSON, loader.FormatXLSX:
		return nil
	case "":
		_, err := loader.DetectFormat(path)
		return err
	}

	v.logger.Error("Unsupported source format",
		slog.String("file", path),
		slog.String("format", string(format)))
	return apperrors.NewValidationError(fmt.Sprintf("unsupported source format %q for %s", string(format), path))
}
