package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/calderasa/tablequal/schema"
)

// Default values for configuration.
const (
	DefaultSampleSize   = 100
	DefaultSampleSeed   = 42
	MaxSampleSize       = 100000
	DefaultThreshold    = 3.0
	DefaultHistoryLimit = 25
	MaxHistoryLimit     = 1000
	DefaultAdviseModel  = "gpt-4o-mini"
	DefaultAdviseScore  = 3
)

// DefaultAdviseTimeout bounds a single advisor request.
const DefaultAdviseTimeout = 60 * time.Second

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a quality run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath  string
	Separator  string // CSV separator override ("" = sniff)
	SampleSize int
	SampleSeed int64

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	Threshold float64 // Minimum acceptable overall score for the check command

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	HistoryLimit     int

	AdviseModel   string
	AdviseBaseURL string
	AdviseAPIKey  string // Please use env var as this is plaintext
	AdviseScore   int    // Criteria scoring at or below this get advice
	AdviseTimeout time.Duration

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Separator        string `mapstructure:"separator"`
	SampleSize       int    `mapstructure:"sample-size"`
	SampleSeed       int64  `mapstructure:"sample-seed"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from checkCmd.Flags() ---
	Threshold float64 `mapstructure:"threshold"`

	// --- Fields from historyCmd.Flags() ---
	Limit int `mapstructure:"limit"`

	// --- Fields from adviseCmd.Flags() ---
	AdviseModel   string `mapstructure:"advise-model"`
	AdviseBaseURL string `mapstructure:"advise-base-url"`
	AdviseAPIKey  string `mapstructure:"advise-api-key"`
	AdviseScore   int    `mapstructure:"advise-score"`
	AdviseTimeout string `mapstructure:"advise-timeout"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processAdvisorConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- 1. Separator Validation ---
	switch input.Separator {
	case "", ",", ";", "\t", "|":
		cfg.Separator = input.Separator
	default:
		return fmt.Errorf("invalid separator %q. must be one of ',' ';' tab '|'", input.Separator)
	}

	// --- 2. Sampling Validation ---
	if input.SampleSize <= 0 || input.SampleSize > MaxSampleSize {
		return fmt.Errorf("sample-size must be greater than 0 and cannot exceed %d (received %d)", MaxSampleSize, input.SampleSize)
	}
	cfg.SampleSize = input.SampleSize
	cfg.SampleSeed = input.SampleSeed

	// --- 3. Output Validation ---
	output, ok := schema.ParseOutputMode(strings.ToLower(input.Output))
	if !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}
	cfg.Output = output

	// --- 4. Threshold Validation ---
	if input.Threshold < float64(schema.ScoreFloor) || input.Threshold > float64(schema.ScoreCeiling) {
		return fmt.Errorf("threshold must be between %d.0 and %d.0 (received %.1f)", schema.ScoreFloor, schema.ScoreCeiling, input.Threshold)
	}
	cfg.Threshold = input.Threshold

	// --- 5. History Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxHistoryLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryLimit, input.Limit)
	}
	cfg.HistoryLimit = input.Limit

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	backend, ok := schema.ParseDatabaseBackend(strings.ToLower(input.HistoryBackend))
	if !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// processAdvisorConfig handles the advisor model parameters.
func processAdvisorConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.AdviseModel = strings.TrimSpace(input.AdviseModel)
	if cfg.AdviseModel == "" {
		cfg.AdviseModel = DefaultAdviseModel
	}
	cfg.AdviseBaseURL = strings.TrimSpace(input.AdviseBaseURL)
	cfg.AdviseAPIKey = strings.TrimSpace(input.AdviseAPIKey)

	if input.AdviseScore < schema.ScoreFloor || input.AdviseScore > schema.ScoreCeiling {
		return fmt.Errorf("advise-score must be between %d and %d (received %d)", schema.ScoreFloor, schema.ScoreCeiling, input.AdviseScore)
	}
	cfg.AdviseScore = input.AdviseScore

	cfg.AdviseTimeout = DefaultAdviseTimeout
	if input.AdviseTimeout != "" {
		d, err := time.ParseDuration(input.AdviseTimeout)
		if err != nil {
			return fmt.Errorf("invalid advise-timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("advise-timeout must be positive (received %s)", d)
		}
		cfg.AdviseTimeout = d
	}

	return nil
}

// RevalidateEvaluate re-checks the fields an MCP tool call may have
// overridden on a cloned Config before an evaluation runs.
func RevalidateEvaluate(cfg *Config) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return fmt.Errorf("path is required")
	}
	switch cfg.Separator {
	case "", ",", ";", "\t", "|":
	default:
		return fmt.Errorf("invalid separator %q. must be one of ',' ';' tab '|'", cfg.Separator)
	}
	if cfg.SampleSize <= 0 || cfg.SampleSize > MaxSampleSize {
		return fmt.Errorf("sample-size must be greater than 0 and cannot exceed %d (received %d)", MaxSampleSize, cfg.SampleSize)
	}
	return nil
}

// RevalidateCheck re-checks the threshold on top of the evaluation fields.
func RevalidateCheck(cfg *Config) error {
	if err := RevalidateEvaluate(cfg); err != nil {
		return err
	}
	if cfg.Threshold < float64(schema.ScoreFloor) || cfg.Threshold > float64(schema.ScoreCeiling) {
		return fmt.Errorf("threshold must be between %d.0 and %d.0 (received %.1f)", schema.ScoreFloor, schema.ScoreCeiling, cfg.Threshold)
	}
	return nil
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
