package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "portaletl/internal/errors"
	"portaletl/internal/loader"
	"portaletl/internal/transform"
)

// Config represents the complete pipeline configuration
type Config struct {
	Staging  StagingConfig   `yaml:"staging" envconfig:"STAGING"`
	Logging  LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Datasets []DatasetConfig `yaml:"datasets" ignored:"true" validate:"required,min=1,dive"`
}

// StagingConfig contains output staging configuration
type StagingConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" validate:"required"`
	DebugCSV bool   `yaml:"debug_csv" envconfig:"DEBUG_CSV"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"required,oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"required,oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"required,oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DatasetConfig describes one output dataset: the source files feeding
// it and the parameters its transform takes. The name doubles as the
// published file name.
type DatasetConfig struct {
	Name       string           `yaml:"name" validate:"required,dataset_name"`
	Sources    []SourceConfig   `yaml:"sources" validate:"required,min=1,dive"`
	Parameters ParametersConfig `yaml:"parameters"`
}

// SourceConfig describes one input file of a dataset.
type SourceConfig struct {
	Key           string            `yaml:"key" validate:"omitempty,dataset_name"`
	Path          string            `yaml:"path" validate:"required"`
	Format        string            `yaml:"format" validate:"omitempty,file_format"`
	Delimiter     string            `yaml:"delimiter" validate:"omitempty,len=1"`
	Sheet         string            `yaml:"sheet"`
	ColumnRenames map[string]string `yaml:"column_renames"`
}

// ParametersConfig carries the numeric knobs of the parameterized
// transforms. Zero values fall back to the package defaults.
type ParametersConfig struct {
	AdjustedPValueThreshold float64 `yaml:"adjusted_p_value_threshold"`
	ProteinLevelThreshold   float64 `yaml:"protein_level_threshold"`
	OverallMaxScore         float64 `yaml:"overall_max_score"`
	GeneticsMaxScore        float64 `yaml:"genetics_max_score"`
	OmicsMaxScore           float64 `yaml:"omics_max_score"`
	LiteratureMaxScore      float64 `yaml:"lit_max_score"`
}

// Load reads configuration from the given YAML file, applies PORTAL_*
// environment overrides, fills defaults, and validates the result. An
// empty path probes the default locations and falls back to env-only
// configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = findConfigFile()
	} else if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("config file %s", path), err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("read config file %s", path), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, apperrors.NewConfigError(fmt.Sprintf("parse config file %s", path), err)
		}
	}

	// Environment overrides file values. envconfig default tags are
	// not used here: they would overwrite file values whenever the
	// variable is unset.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills whatever the file and environment left unset.
func (c *Config) applyDefaults() {
	if c.Staging.Dir == "" {
		c.Staging.Dir = DefaultStagingDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.Output == "" {
		c.Logging.Output = DefaultLogOutput
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFilePath
	}

	for i := range c.Datasets {
		p := &c.Datasets[i].Parameters
		if p.AdjustedPValueThreshold == 0 {
			p.AdjustedPValueThreshold = DefaultAdjustedPValueThreshold
		}
		if p.ProteinLevelThreshold == 0 {
			p.ProteinLevelThreshold = DefaultProteinLevelThreshold
		}
		if p.OverallMaxScore == 0 {
			p.OverallMaxScore = DefaultOverallMaxScore
		}
		if p.GeneticsMaxScore == 0 {
			p.GeneticsMaxScore = DefaultGeneticsMaxScore
		}
		if p.OmicsMaxScore == 0 {
			p.OmicsMaxScore = DefaultOmicsMaxScore
		}
		if p.LiteratureMaxScore == 0 {
			p.LiteratureMaxScore = DefaultLiteratureMaxScore
		}
	}
}

// Validate checks the configuration: struct-tag validation first, then
// the cross-field pipeline rules.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var fields []string
		for _, fe := range err.(validator.ValidationErrors) {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
		return apperrors.NewConfigError(fmt.Sprintf("invalid configuration: %s", strings.Join(fields, ", ")), err)
	}

	seen := make(map[string]bool)
	for _, ds := range c.Datasets {
		if seen[ds.Name] {
			return apperrors.NewConfigError(fmt.Sprintf("dataset %s is configured twice", ds.Name), nil)
		}
		seen[ds.Name] = true

		keys := make(map[string]bool)
		for _, src := range ds.Sources {
			key := src.CollectionKey(ds.Name)
			if keys[key] {
				return apperrors.NewConfigError(
					fmt.Sprintf("dataset %s: source key %s is configured twice", ds.Name, key), nil)
			}
			keys[key] = true
		}

		// A dataset without a registered transform publishes its
		// loaded table as-is; that only makes sense for one source.
		if len(ds.Sources) > 1 && !transform.Registered(ds.Name) {
			return apperrors.NewConfigError(
				fmt.Sprintf("dataset %s has %d sources but no transform to combine them", ds.Name, len(ds.Sources)), nil)
		}
	}

	return nil
}

// CollectionKey returns the key this source is stored under in the
// dataset collection. It defaults to the dataset name.
func (s *SourceConfig) CollectionKey(datasetName string) string {
	if s.Key != "" {
		return s.Key
	}
	return datasetName
}

// LoaderOptions maps the source settings onto loader options.
func (s *SourceConfig) LoaderOptions() loader.Options {
	opts := loader.Options{
		Format: loader.Format(s.Format),
		Sheet:  s.Sheet,
	}
	if s.Delimiter != "" {
		opts.Delimiter = []rune(s.Delimiter)[0]
	}
	return opts
}

// TransformOptions maps the dataset parameters onto the dispatcher's
// option structs.
func (d *DatasetConfig) TransformOptions() transform.Options {
	return transform.Options{
		GeneInfo: transform.GeneInfoParams{
			AdjustedPValueThreshold: d.Parameters.AdjustedPValueThreshold,
			ProteinLevelThreshold:   d.Parameters.ProteinLevelThreshold,
		},
		Distribution: transform.DistributionParams{
			OverallMaxScore:    d.Parameters.OverallMaxScore,
			GeneticsMaxScore:   d.Parameters.GeneticsMaxScore,
			OmicsMaxScore:      d.Parameters.OmicsMaxScore,
			LiteratureMaxScore: d.Parameters.LiteratureMaxScore,
		},
	}
}

// newValidator builds the struct validator with the pipeline's custom
// rules registered.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("dataset_name", isDatasetName)
	v.RegisterValidation("file_format", isFileFormat)

	// Use YAML tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// isDatasetName accepts lowercase identifiers. Dataset and source names
// become file names and collection keys, so separators and case
// variants are rejected.
func isDatasetName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return false
	}
	for _, ch := range name {
		if !((ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_') {
			return false
		}
	}
	return true
}

// isFileFormat accepts the loader's format names.
func isFileFormat(fl validator.FieldLevel) bool {
	switch loader.Format(fl.Field().String()) {
	case loader.FormatCSV, loader.FormatTSV, loader.FormatJSON, loader.FormatXLSX:
		return true
	}
	return false
}

// findConfigFile returns the first config file present in the common
// locations
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns the configuration defaults with no datasets
// configured.
func Default() *Config {
	return &Config{
		Staging: StagingConfig{
			Dir: DefaultStagingDir,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFilePath,
		},
	}
}
