package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "portaletl/internal/errors"
)

// minimalDatasets is the smallest valid dataset section.
const minimalDatasets = `
datasets:
  - name: team_info
    sources:
      - path: data/team_info.csv
      - key: team_member_info
        path: data/team_member_info.csv
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	// Save original environment to restore later
	originalEnv := make(map[string]string)
	envVars := []string{
		"PORTAL_STAGING_DIR", "PORTAL_STAGING_DEBUG_CSV",
		"PORTAL_LOGGING_LEVEL", "PORTAL_LOGGING_FORMAT",
		"PORTAL_LOGGING_OUTPUT", "PORTAL_LOGGING_FILE_PATH",
	}

	// Save original values
	for _, envVar := range envVars {
		originalEnv[envVar] = os.Getenv(envVar)
	}

	// Clean up environment variables
	defer func() {
		for _, envVar := range envVars {
			if val, exists := originalEnv[envVar]; exists && val != "" {
				os.Setenv(envVar, val)
			} else {
				os.Unsetenv(envVar)
			}
		}
	}()

	clearEnv := func() {
		for _, envVar := range envVars {
			os.Unsetenv(envVar)
		}
	}

	tests := []struct {
		name        string
		setupEnv    func()
		content     string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name:     "defaults fill what the file omits",
			setupEnv: clearEnv,
			content:  minimalDatasets,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "staging", cfg.Staging.Dir)
				assert.False(t, cfg.Staging.DebugCSV)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, "logs/portaletl.log", cfg.Logging.FilePath)

				require.Len(t, cfg.Datasets, 1)
				ds := cfg.Datasets[0]
				assert.Equal(t, "team_info", ds.Name)
				require.Len(t, ds.Sources, 2)
				assert.Equal(t, "team_info", ds.Sources[0].CollectionKey(ds.Name))
				assert.Equal(t, "team_member_info", ds.Sources[1].CollectionKey(ds.Name))

				// Parameter defaults
				assert.Equal(t, 0.05, ds.Parameters.AdjustedPValueThreshold)
				assert.Equal(t, 0.05, ds.Parameters.ProteinLevelThreshold)
				assert.Equal(t, 5.0, ds.Parameters.OverallMaxScore)
				assert.Equal(t, 3.0, ds.Parameters.GeneticsMaxScore)
				assert.Equal(t, 2.0, ds.Parameters.OmicsMaxScore)
				assert.Equal(t, 2.0, ds.Parameters.LiteratureMaxScore)
			},
		},
		{
			name: "environment overrides file",
			setupEnv: func() {
				clearEnv()
				os.Setenv("PORTAL_STAGING_DIR", "env_staging")
				os.Setenv("PORTAL_LOGGING_LEVEL", "debug")
				os.Setenv("PORTAL_STAGING_DEBUG_CSV", "true")
			},
			content: `
staging:
  dir: file_staging
logging:
  level: warn
` + minimalDatasets,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env_staging", cfg.Staging.Dir)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.True(t, cfg.Staging.DebugCSV)
			},
		},
		{
			name:     "file values survive when no env is set",
			setupEnv: clearEnv,
			content: `
staging:
  dir: file_staging
logging:
  level: warn
  output: both
` + minimalDatasets,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "file_staging", cfg.Staging.Dir)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
			},
		},
		{
			name: "invalid logging level",
			setupEnv: func() {
				clearEnv()
				os.Setenv("PORTAL_LOGGING_LEVEL", "verbose")
			},
			content: minimalDatasets,
			wantErr: true,
		},
		{
			name:     "no datasets",
			setupEnv: clearEnv,
			content: `
staging:
  dir: staging
`,
			wantErr: true,
		},
		{
			name:     "dataset name with separators rejected",
			setupEnv: clearEnv,
			content: `
datasets:
  - name: Gene Info
    sources:
      - path: data/gene_info.json
`,
			wantErr: true,
		},
		{
			name:     "unsupported file format rejected",
			setupEnv: clearEnv,
			content: `
datasets:
  - name: gene_info
    sources:
      - path: data/gene_info.parquet
        format: parquet
`,
			wantErr: true,
		},
		{
			name:     "custom parameters survive and gaps get defaults",
			setupEnv: clearEnv,
			content: `
datasets:
  - name: gene_info
    sources:
      - path: data/gene_info.json
    parameters:
      adjusted_p_value_threshold: 0.01
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				p := cfg.Datasets[0].Parameters
				assert.Equal(t, 0.01, p.AdjustedPValueThreshold)
				assert.Equal(t, 0.05, p.ProteinLevelThreshold)
				assert.Equal(t, 2.0, p.OmicsMaxScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()

			cfg, err := Load(writeConfigFile(t, tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfigFile(t, "datasets: [unclosed"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestValidateCrossFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name: "duplicate dataset names",
			content: `
datasets:
  - name: gene_info
    sources:
      - path: a.json
  - name: gene_info
    sources:
      - path: b.json
`,
			wantMsg: "configured twice",
		},
		{
			name: "duplicate source keys",
			content: `
datasets:
  - name: gene_info
    sources:
      - key: igap
        path: a.csv
      - key: igap
        path: b.csv
`,
			wantMsg: "source key igap",
		},
		{
			name: "multiple sources without a transform",
			content: `
datasets:
  - name: metabolomics
    sources:
      - key: one
        path: a.csv
      - key: two
        path: b.csv
`,
			wantMsg: "no transform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMultiSourceRegisteredTransformAccepted(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
datasets:
  - name: gene_info
    sources:
      - key: gene_metadata
        path: data/gene_metadata.json
      - key: igap
        path: data/igap.csv
`))
	require.NoError(t, err)
	require.Len(t, cfg.Datasets, 1)
	assert.Len(t, cfg.Datasets[0].Sources, 2)
}

func TestPassthroughSingleSourceAccepted(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
datasets:
  - name: metabolomics
    sources:
      - path: data/metabolomics.csv
`))
	require.NoError(t, err)
	assert.Equal(t, "metabolomics", cfg.Datasets[0].Name)
}

func TestSourceLoaderOptions(t *testing.T) {
	src := SourceConfig{
		Path:      "data/scores.txt",
		Format:    "csv",
		Delimiter: ";",
		Sheet:     "Scores",
	}

	opts := src.LoaderOptions()
	assert.Equal(t, "csv", string(opts.Format))
	assert.Equal(t, ';', opts.Delimiter)
	assert.Equal(t, "Scores", opts.Sheet)

	empty := SourceConfig{Path: "data/x.csv"}
	assert.Equal(t, rune(0), empty.LoaderOptions().Delimiter)
}

func TestTransformOptions(t *testing.T) {
	ds := DatasetConfig{
		Name: "distribution_data",
		Parameters: ParametersConfig{
			AdjustedPValueThreshold: 0.05,
			ProteinLevelThreshold:   0.05,
			OverallMaxScore:         5,
			GeneticsMaxScore:        3,
			OmicsMaxScore:           2,
			LiteratureMaxScore:      2,
		},
	}

	opts := ds.TransformOptions()
	assert.Equal(t, 0.05, opts.GeneInfo.AdjustedPValueThreshold)
	assert.Equal(t, 5.0, opts.Distribution.OverallMaxScore)
	assert.Equal(t, 2.0, opts.Distribution.LiteratureMaxScore)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultStagingDir, cfg.Staging.Dir)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.Empty(t, cfg.Datasets)
}
