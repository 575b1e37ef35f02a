// Package config provides centralized configuration management for the
// portal ETL pipeline. It handles loading configuration from multiple
// sources, validation, and a type-safe API for the rest of the
// application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PORTAL_* for
// namespacing:
//
//	PORTAL_STAGING_DIR=staging
//	PORTAL_STAGING_DEBUG_CSV=true
//	PORTAL_LOGGING_LEVEL=debug
//	PORTAL_LOGGING_OUTPUT=both
//
// Dataset definitions are structural and come from the YAML file only.
//
// # Configuration File
//
// The YAML file lists the datasets to process, each with its source
// files and transform parameters:
//
//	staging:
//	  dir: staging
//	logging:
//	  level: info
//	datasets:
//	  - name: gene_info
//	    sources:
//	      - key: gene_metadata
//	        path: data/gene_metadata.json
//	      - key: igap
//	        path: data/igap.csv
//	    parameters:
//	      adjusted_p_value_threshold: 0.05
//
// # Validation
//
// All configuration is validated at load time: dataset and source key
// names must be lowercase identifiers (they become file names and
// collection keys), file formats must be ones the loader supports, and
// a dataset with several sources must name a registered transform able
// to combine them.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load(configPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
