package cmd

import (
	"fmt"
	"strings"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/internal/history"
	"github.com/calderasa/tablequal/internal/runner"
	"github.com/calderasa/tablequal/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, ok := schema.ParseDatabaseBackend(strings.ToLower(viper.GetString("history-backend")))
	if !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", viper.GetString("history-backend"))
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")

	limit := viper.GetInt("limit")
	if limit <= 0 || limit > contract.MaxHistoryLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", contract.MaxHistoryLimit, limit)
	}
	cfg.HistoryLimit = limit

	output, ok := schema.ParseOutputMode(strings.ToLower(viper.GetString("output")))
	if !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", viper.GetString("output"))
	}
	cfg.Output = output

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	store, err := history.NewStore(backend, connStr, version)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	historyStore = store

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This specialized setup does NOT open the store or create tables, allowing
// migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, ok := schema.ParseDatabaseBackend(strings.ToLower(viper.GetString("history-backend")))
	if !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", viper.GetString("history-backend"))
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage persisted run history and exports",
	Long: `Manage the historical record of scoring runs.

When enabled, tablequal tracks every scoring run, storing:
- Run metadata (source file, timestamps, configuration, duration)
- The overall score and full report
- Per-criterion scores and diagnostics

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  list    - Show the most recent runs
  export  - Export history to Parquet for analytics
  clear   - Remove all run history
  migrate - Run database schema migrations

Examples:
  # Show recent runs
  tablequal history list

  # Export for analysis in pandas/DuckDB
  tablequal history export --output-file history-data`,
}

// historyListCmd shows recent runs.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent scoring runs",
	Long: `List persisted scoring runs, newest first.

Displays run ID, source file, start time, overall score, dataset shape
and duration. Use --limit to control how many runs are shown and
--output to emit csv or json instead of a table.

Examples:
  # Show the last 25 runs
  tablequal history list

  # Show the last 5 runs as JSON
  tablequal history list --limit 5 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runner.ExecuteHistoryList(cfg, historyStore); err != nil {
			contract.LogFatal("Failed to list run history", err)
		}
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all stored run history to Parquet format.

Exports two datasets:
- Runs - metadata and overall score for each scoring run
- Criterion scores - per-criterion scores and diagnostics

Requires: --output-file parameter, used as the prefix for both files.

Examples:
  # Export all data
  tablequal history export --output-file tablequal-data

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('tablequal-data.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runner.ExecuteHistoryExport(cfg, historyStore); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted run history",
	Long: `Delete all stored runs and criterion scores.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  tablequal history export --output-file backup
  tablequal history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.ClearRuns(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  tablequal history migrate

  # Migrate to specific version
  tablequal history migrate --target-version 1

  # Rollback to initial state
  tablequal history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
