package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/tabular"
	"portaletl/pkg/contracts/domain"
)

// Publisher writes transformed datasets to the staging directory as
// JSON, one <name>.json file per dataset.
type Publisher struct {
	stagingDir string
	logger     *slog.Logger
}

// NewPublisher creates a publisher rooted at the staging directory.
func NewPublisher(stagingDir string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{stagingDir: stagingDir, logger: logger}
}

// StagingDir returns the directory files are published into.
func (p *Publisher) StagingDir() string {
	return p.stagingDir
}

// PublishTable writes the table as a JSON array of records, keys in
// column order. It returns the path written.
func (p *Publisher) PublishTable(name string, t *tabular.Table) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrTypeValue,
			fmt.Sprintf("encode dataset %s", name), err)
	}
	return p.write(name, data, t.NumRows())
}

// PublishDistributions writes the ordered metric mapping wrapped in a
// single-element JSON array, the shape the portal ingests.
func (p *Publisher) PublishDistributions(name string, set *domain.DistributionSet) (string, error) {
	data, err := json.Marshal([]*domain.DistributionSet{set})
	if err != nil {
		return "", apperrors.NewAppError(apperrors.ErrTypeValue,
			fmt.Sprintf("encode dataset %s", name), err)
	}
	return p.write(name, data, set.Len())
}

func (p *Publisher) write(name string, data []byte, records int) (string, error) {
	if err := os.MkdirAll(p.stagingDir, 0755); err != nil {
		return "", apperrors.NewStorageError("create staging directory", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return "", apperrors.NewAppError(apperrors.ErrTypeValue,
			fmt.Sprintf("indent dataset %s", name), err)
	}
	pretty.WriteByte('\n')

	path := filepath.Join(p.stagingDir, name+".json")
	if err := os.WriteFile(path, pretty.Bytes(), 0644); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("write %s", path), err)
	}

	p.logger.Info("published dataset",
		slog.String("dataset", name),
		slog.String("path", path),
		slog.Int("records", records),
		slog.Int("bytes", pretty.Len()))
	return path, nil
}
