package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"

	"portaletl/internal/config"
	apperrors "portaletl/internal/errors"
	"portaletl/internal/exporter"
	"portaletl/internal/infrastructure"
	"portaletl/internal/loader"
	"portaletl/internal/tabular"
	"portaletl/internal/transform"
	"portaletl/internal/validation"
)

// Orchestrator drives configured datasets through load, normalize,
// transform, and publish.
type Orchestrator struct {
	cfg       *config.Config
	loader    *loader.Loader
	validator *validation.SourceValidator
	publisher *exporter.Publisher
	debug     *exporter.CSVWriter
	tracer    *Tracer
	logger    *slog.Logger
}

// New creates an orchestrator for the given configuration. A nil
// logger falls back to slog.Default, a nil tracer to span-only
// instrumentation.
func New(cfg *config.Config, logger *slog.Logger, tracer *Tracer) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = &Tracer{tracer: otel.Tracer(TracerName)}
	}

	o := &Orchestrator{
		cfg:       cfg,
		loader:    loader.New(logger),
		validator: validation.NewSourceValidator(logger),
		publisher: exporter.NewPublisher(cfg.Staging.Dir, logger),
		tracer:    tracer,
		logger:    infrastructure.WithComponent(logger, "pipeline"),
	}
	if cfg.Staging.DebugCSV {
		o.debug = exporter.NewCSVWriter(filepath.Join(cfg.Staging.Dir, "debug"), logger)
	}

	return o
}

// DatasetResult reports the outcome of one dataset build.
type DatasetResult struct {
	Name     string
	Path     string
	Records  int
	Duration time.Duration
	Err      error
}

// RunReport summarizes a pipeline run.
type RunReport struct {
	RunID     string
	Succeeded int
	Failed    int
	Duration  time.Duration
	Results   []DatasetResult
}

// Run processes every configured dataset.
func (o *Orchestrator) Run(ctx context.Context) (*RunReport, error) {
	return o.RunDatasets(ctx, nil)
}

// RunDatasets processes the named subset of configured datasets, in
// configuration order for an empty names list and in the given order
// otherwise. Dataset failures are isolated: a failed dataset lands in
// the report and the rest proceed. Only context cancellation aborts
// the run.
func (o *Orchestrator) RunDatasets(ctx context.Context, names []string) (*RunReport, error) {
	datasets, err := o.selectDatasets(names)
	if err != nil {
		return nil, err
	}
	if err := o.validator.ValidateStagingDir(o.publisher.StagingDir()); err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	ctx, span := o.tracer.TraceRun(ctx, runID, len(datasets))
	defer span.End()

	start := time.Now()
	report := &RunReport{RunID: runID}

	o.logger.InfoContext(ctx, "run_started",
		slog.Int("datasets", len(datasets)),
		slog.String("staging_dir", o.publisher.StagingDir()))

	for _, ds := range datasets {
		select {
		case <-ctx.Done():
			o.logger.WarnContext(ctx, "run_cancelled",
				slog.String("next_dataset", ds.Name),
				slog.Int("succeeded", report.Succeeded),
				slog.Int("failed", report.Failed))
			report.Duration = time.Since(start)
			o.tracer.RecordRunCompletion(ctx, span, report.Succeeded, report.Failed, report.Duration)
			return report, ctx.Err()
		default:
		}

		res := o.runDataset(ctx, ds)
		report.Results = append(report.Results, res)
		if res.Err != nil {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}

	report.Duration = time.Since(start)
	o.tracer.RecordRunCompletion(ctx, span, report.Succeeded, report.Failed, report.Duration)

	o.logger.InfoContext(ctx, "run_completed",
		slog.Int("succeeded", report.Succeeded),
		slog.Int("failed", report.Failed),
		slog.Duration("duration", report.Duration))

	return report, nil
}

// selectDatasets resolves the requested subset against the
// configuration
func (o *Orchestrator) selectDatasets(names []string) ([]config.DatasetConfig, error) {
	if len(names) == 0 {
		return o.cfg.Datasets, nil
	}

	byName := make(map[string]config.DatasetConfig, len(o.cfg.Datasets))
	for _, ds := range o.cfg.Datasets {
		byName[ds.Name] = ds
	}

	selected := make([]config.DatasetConfig, 0, len(names))
	for _, name := range names {
		ds, ok := byName[name]
		if !ok {
			return nil, apperrors.NewValueError(fmt.Sprintf("dataset %s is not configured", name))
		}
		selected = append(selected, ds)
	}

	return selected, nil
}

// runDataset builds and publishes one dataset. The error lands in the
// returned result instead of propagating, so one dataset cannot abort
// the run.
func (o *Orchestrator) runDataset(ctx context.Context, ds config.DatasetConfig) DatasetResult {
	ctx, span := o.tracer.TraceDataset(ctx, ds.Name)
	defer span.End()

	start := time.Now()
	logger := o.logger.With(slog.String("dataset", ds.Name))

	logger.InfoContext(ctx, "dataset_started",
		slog.Int("sources", len(ds.Sources)))

	res := DatasetResult{Name: ds.Name}
	path, records, rowsRead, err := o.buildDataset(ctx, ds)
	res.Path = path
	res.Records = records
	res.Duration = time.Since(start)
	res.Err = err

	o.tracer.RecordDatasetCompletion(ctx, span, ds.Name, rowsRead, int64(records), res.Duration, err)

	if err != nil {
		logger.ErrorContext(ctx, "dataset_failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", res.Duration))
		return res
	}

	logger.InfoContext(ctx, "dataset_completed",
		slog.String("path", res.Path),
		slog.Int("records", res.Records),
		slog.Duration("duration", res.Duration))

	return res
}

// buildDataset runs the load, transform, and publish sequence.
func (o *Orchestrator) buildDataset(ctx context.Context, ds config.DatasetConfig) (path string, records int, rowsRead int64, err error) {
	data, rowsRead, err := o.loadSources(ctx, ds)
	if err != nil {
		return "", 0, rowsRead, err
	}

	result, err := transform.Apply(data, ds.Name, ds.TransformOptions())
	if err != nil {
		return "", 0, rowsRead, err
	}

	path, records, err = o.publish(ctx, ds, data, result)
	return path, records, rowsRead, err
}

// loadSources reads every configured source into a keyed collection,
// standardizing column names and values and applying per-source
// renames.
func (o *Orchestrator) loadSources(ctx context.Context, ds config.DatasetConfig) (*tabular.Collection, int64, error) {
	data := tabular.NewCollection()
	var rowsRead int64

	for _, src := range ds.Sources {
		if err := o.validator.ValidateSource(src.Path, loader.Format(src.Format)); err != nil {
			return nil, rowsRead, err
		}

		t, err := o.loader.Load(src.Path, src.LoaderOptions())
		if err != nil {
			return nil, rowsRead, err
		}
		rowsRead += int64(t.NumRows())
		o.tracer.RecordFileLoaded(ctx, ds.Name, sourceFormat(src))

		t = transform.StandardizeColumnNames(t)
		t = transform.StandardizeValues(t)
		if len(src.ColumnRenames) > 0 {
			t = transform.RenameColumns(t, src.ColumnRenames)
		}

		data.Set(src.CollectionKey(ds.Name), t)
	}

	return data, rowsRead, nil
}

// publish writes the transform output, or the loaded table unchanged
// when the dataset has no registered transform.
func (o *Orchestrator) publish(ctx context.Context, ds config.DatasetConfig, data *tabular.Collection, result *transform.Result) (string, int, error) {
	if result != nil && result.Distributions != nil {
		path, err := o.publisher.PublishDistributions(ds.Name, result.Distributions)
		if err != nil {
			return "", 0, err
		}
		infrastructure.AddSpanEvent(ctx, "dataset.published", map[string]interface{}{
			"dataset": ds.Name,
			"path":    path,
			"records": result.Distributions.Len(),
		})
		return path, result.Distributions.Len(), nil
	}

	var table *tabular.Table
	if result != nil {
		table = result.Table
	} else {
		// Pass-through. Config validation guarantees a single source.
		name := data.Names()[0]
		table, _ = data.Get(name)
		o.logger.InfoContext(ctx, "dataset_passthrough",
			slog.String("dataset", ds.Name))
	}

	path, err := o.publisher.PublishTable(ds.Name, table)
	if err != nil {
		return "", 0, err
	}

	infrastructure.AddSpanEvent(ctx, "dataset.published", map[string]interface{}{
		"dataset": ds.Name,
		"path":    path,
		"records": table.NumRows(),
	})

	if o.debug != nil {
		if _, err := o.debug.WriteTable(ds.Name, table, exporter.WriteOptions{BOMPrefix: true}); err != nil {
			// A failed debug dump does not fail the dataset.
			o.logger.WarnContext(ctx, "debug_csv_failed",
				slog.String("dataset", ds.Name),
				slog.String("error", err.Error()))
		}
	}

	return path, table.NumRows(), nil
}

// sourceFormat resolves the format label recorded in metrics
func sourceFormat(src config.SourceConfig) string {
	if src.Format != "" {
		return src.Format
	}
	if f, err := loader.DetectFormat(src.Path); err == nil {
		return string(f)
	}
	return "unknown"
}
