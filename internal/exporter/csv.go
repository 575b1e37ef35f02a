package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
)

// CSVWriter dumps tables as CSV files for debugging intermediate
// pipeline state.
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer rooted at the given directory.
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes the table to <dir>/<name>.csv with the column order
// as header. It returns the path written.
func (w *CSVWriter) WriteTable(name string, t *tabular.Table, options WriteOptions) (string, error) {
	path := filepath.Join(w.dir, name+".csv")
	cols := t.Columns()

	w.logger.Info("writing debug CSV",
		slog.String("dataset", name),
		slog.String("path", path),
		slog.Int("rows", t.NumRows()))

	stream, err := w.CreateStreamWriter(path, cols, options)
	if err != nil {
		return "", err
	}

	record := make([]string, len(cols))
	for _, row := range t.Rows() {
		for i, col := range cols {
			record[i] = formatCell(row[col])
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return "", apperrors.NewStorageError(fmt.Sprintf("write %s", path), err)
		}
	}
	if err := stream.Close(); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("close %s", path), err)
	}
	return path, nil
}

// StreamWriter provides streaming CSV writing for large dumps.
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter opens a CSV file under the writer's directory and
// emits the header row.
func (w *CSVWriter) CreateStreamWriter(path string, headers []string, options WriteOptions) (*StreamWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, apperrors.NewStorageError("create output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("create %s", path), err)
	}

	// BOM helps Excel recognize UTF-8.
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError(fmt.Sprintf("write BOM to %s", path), err)
		}
	}

	writer := csv.NewWriter(file)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError(fmt.Sprintf("write header of %s", path), err)
		}
	}

	return &StreamWriter{file: file, writer: writer}, nil
}

// WriteRecord writes a single record to the stream.
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
