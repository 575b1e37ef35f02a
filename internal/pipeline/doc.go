// Package pipeline orchestrates dataset builds from configuration to
// published files.
//
// A run takes each configured dataset through the same sequence:
//
//   - Validate each source file and the staging directory
//   - Load every source file into a keyed collection
//   - Standardize column names and missing-value sentinels
//   - Apply per-source column renames
//   - Dispatch the collection to the dataset's transform
//   - Publish the result to the staging directory
//
// Dataset failures are isolated. A dataset that fails to load,
// transform, or publish is reported in the run's results and the
// remaining datasets proceed; only a cancelled context stops the run.
//
// Core Components:
//
// Orchestrator: Drives a run over a loaded configuration. It owns the
// loader, the source validator, the publisher, and the optional debug
// CSV writer, and emits one result per dataset.
//
// Tracer: OpenTelemetry instrumentation for runs. Every run gets a
// span with one child span per dataset, and the pipeline metrics
// (datasets processed and failed, rows read and published, durations)
// are recorded against the configured meter.
//
// Example usage:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//		return err
//	}
//
//	tracer, err := pipeline.NewTracer(providers)
//	if err != nil {
//		return err
//	}
//
//	orch := pipeline.New(cfg, logger, tracer)
//	report, err := orch.Run(ctx)
//	if err != nil {
//		return err
//	}
//	if report.Failed > 0 {
//		// Inspect report.Results for the failures.
//	}
//
// Every log record inside a run carries the run ID, generated when the
// run starts unless the caller seeded one with infrastructure.WithRunID.
package pipeline
