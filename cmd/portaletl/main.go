package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"portaletl/internal/config"
	"portaletl/internal/infrastructure"
	"portaletl/internal/pipeline"
	"portaletl/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (defaults to config.yaml)")
	logLevel := flag.String("log-level", "", "override configured log level (debug|info|warn|error)")
	datasets := flag.String("datasets", "", "comma-separated subset of datasets to build (defaults to all)")
	stagingDir := flag.String("staging-dir", "", "override configured staging directory")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Flag overrides apply after file and environment
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *stagingDir != "" {
		cfg.Staging.Dir = *stagingDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting portal ETL",
		slog.String("version", contracts.Version),
		slog.String("staging_dir", cfg.Staging.Dir),
		slog.Int("datasets", len(cfg.Datasets)))

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tracer, err := pipeline.NewTracer(providers)
	if err != nil {
		logger.Error("Failed to initialize pipeline tracer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warn("Received interrupt signal", slog.String("signal", sig.String()))
		cancel()
	}()

	orch := pipeline.New(cfg, logger, tracer)
	report, runErr := orch.RunDatasets(ctx, splitDatasets(*datasets))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Warn("OpenTelemetry shutdown failed", slog.String("error", err.Error()))
	}

	if runErr != nil {
		logger.Error("Run aborted", slog.String("error", runErr.Error()))
		os.Exit(1)
	}

	for _, res := range report.Results {
		if res.Err != nil {
			logger.Error("Dataset failed",
				slog.String("dataset", res.Name),
				slog.String("error", res.Err.Error()))
		}
	}

	if report.Failed > 0 {
		logger.Error("Run finished with failures",
			slog.String("run_id", report.RunID),
			slog.Int("succeeded", report.Succeeded),
			slog.Int("failed", report.Failed),
			slog.Duration("duration", report.Duration))
		os.Exit(1)
	}

	logger.Info("Run finished",
		slog.String("run_id", report.RunID),
		slog.Int("succeeded", report.Succeeded),
		slog.Duration("duration", report.Duration))
}

// splitDatasets parses the -datasets flag into a name list, nil when
// the flag is empty.
func splitDatasets(s string) []string {
	if s == "" {
		return nil
	}

	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
