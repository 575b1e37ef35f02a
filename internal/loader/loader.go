package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// Format identifies a supported source file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// Options configures how a single source file is read.
type Options struct {
	// Format selects the reader. When empty the format is inferred
	// from the file extension.
	Format Format

	// Delimiter overrides the field separator for csv and tsv files.
	Delimiter rune

	// Sheet names the worksheet to read from an xlsx file. The first
	// sheet is used when empty.
	Sheet string
}

// Loader reads source files into tables.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader that logs through the given logger.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the file at path into a table using the given options.
func (l *Loader) Load(path string, opts Options) (*tabular.Table, error) {
	format := opts.Format
	if format == "" {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	l.logger.Info("loading source file",
		slog.String("path", path),
		slog.String("format", string(format)))

	var (
		table *tabular.Table
		err   error
	)
	switch format {
	case FormatCSV:
		table, err = l.readDelimited(path, delimiterOrDefault(opts.Delimiter, ','))
	case FormatTSV:
		table, err = l.readDelimited(path, delimiterOrDefault(opts.Delimiter, '\t'))
	case FormatJSON:
		table, err = l.readJSON(path)
	case FormatXLSX:
		table, err = l.readExcel(path, opts.Sheet)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported file format %q", format))
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("source file loaded",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", len(table.Columns())))
	return table, nil
}

// DetectFormat infers the file format from the path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", apperrors.NewValidationError(fmt.Sprintf("cannot infer file format of %q", filepath.Base(path)))
}

func delimiterOrDefault(delimiter, fallback rune) rune {
	if delimiter == 0 {
		return fallback
	}
	return delimiter
}

// newTable builds an empty table from a header row, rejecting duplicate
// column names because rows are keyed by name.
func newTable(path string, header []string) (*tabular.Table, error) {
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		if seen[col] {
			return nil, apperrors.NewParsingError(fmt.Sprintf("%s: duplicate column %q", path, col), nil)
		}
		seen[col] = true
	}
	return tabular.New(header...), nil
}
