package config

// Application constants for the portal ETL pipeline
const (
	// Application Info
	AppName = "Portal ETL"

	// EnvPrefix namespaces environment overrides: PORTAL_STAGING_DIR,
	// PORTAL_LOGGING_LEVEL, and so on.
	EnvPrefix = "PORTAL"

	// Staging Defaults
	DefaultStagingDir = "staging"

	// Log Settings
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultLogOutput   = "console"
	DefaultLogFilePath = "logs/portaletl.log"
)

// Transform parameter defaults, applied when a dataset omits them.
// They match the published portal configuration.
const (
	DefaultAdjustedPValueThreshold = 0.05
	DefaultProteinLevelThreshold   = 0.05
	DefaultOverallMaxScore         = 5
	DefaultGeneticsMaxScore        = 3
	DefaultOmicsMaxScore           = 2
	DefaultLiteratureMaxScore      = 2
)
