// Package history persists quality runs to a SQL backend so scores can be
// tracked over time.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for run tracking.
const (
	runsTable            = "tablequal_runs"
	criterionScoresTable = "tablequal_criterion_scores"
)

// StoreImpl implements the HistoryStore interface.
type StoreImpl struct {
	db          *sql.DB
	backend     schema.DatabaseBackend
	driverName  string
	toolVersion string
}

var _ contract.HistoryStore = &StoreImpl{} // Compile-time check

// NewStore creates a new HistoryStore with the specified backend.
func NewStore(backend schema.DatabaseBackend, connStr, toolVersion string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &StoreImpl{backend: backend, toolVersion: toolVersion}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the database server is running and accessible", backend, err)
	}

	// Create the table schemas
	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &StoreImpl{
		db:          db,
		backend:     backend,
		driverName:  driverName,
		toolVersion: toolVersion,
	}, nil
}

// createHistoryTables creates the run tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{criterionScoresTable, getCreateCriterionScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for tablequal_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				source VARCHAR(512) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				row_count INT NOT NULL DEFAULT 0,
				column_count INT NOT NULL DEFAULT 0,
				overall DOUBLE NOT NULL DEFAULT 0,
				config_json TEXT,
				report_json TEXT,
				duration_ms BIGINT,
				tool_version VARCHAR(50) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				source TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				row_count INT NOT NULL DEFAULT 0,
				column_count INT NOT NULL DEFAULT 0,
				overall DOUBLE PRECISION NOT NULL DEFAULT 0,
				config_json TEXT,
				report_json TEXT,
				duration_ms BIGINT,
				tool_version TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				source TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				row_count INTEGER NOT NULL DEFAULT 0,
				column_count INTEGER NOT NULL DEFAULT 0,
				overall REAL NOT NULL DEFAULT 0,
				config_json TEXT,
				report_json TEXT,
				duration_ms INTEGER,
				tool_version TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateCriterionScoresQuery returns the CREATE TABLE query for tablequal_criterion_scores.
func getCreateCriterionScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(criterionScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				criterion VARCHAR(50) NOT NULL,
				score INT NOT NULL,
				diagnostic TEXT,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, criterion)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				criterion TEXT NOT NULL,
				score INT NOT NULL,
				diagnostic TEXT,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, criterion)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				criterion TEXT NOT NULL,
				score INTEGER NOT NULL,
				diagnostic TEXT,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (run_id, criterion)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new run row and returns its unique ID.
func (s *StoreImpl) BeginRun(source string, startTime time.Time, configJSON string) (int64, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(runsTable, s.backend)

	var runID int64
	var err error
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (source, start_time, config_json, tool_version) VALUES ($1, $2, $3, $4) RETURNING run_id`, quotedTableName)
		err = s.db.QueryRow(query, source, startTime, configJSON, s.toolVersion).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (source, start_time, config_json, tool_version) VALUES (?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = s.db.Exec(query, source, formatTime(startTime, s.backend), configJSON, s.toolVersion)
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return runID, nil
}

// EndRun updates the run with completion data and the final report.
func (s *StoreImpl) EndRun(runID int64, endTime time.Time, report *schema.QualityReport, reportJSON string) error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, s.backend)

	startTime, err := s.runStartTime(runID)
	if err != nil {
		return err
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var query string
	var args []any
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, row_count = $2, column_count = $3, overall = $4, report_json = $5, duration_ms = $6 WHERE run_id = $7`, quotedTableName)
		args = []any{endTime, report.Rows, report.ColumnCount, report.Overall, reportJSON, durationMs, runID}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, row_count = ?, column_count = ?, overall = ?, report_json = ?, duration_ms = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, s.backend), report.Rows, report.ColumnCount, report.Overall, reportJSON, durationMs, runID}
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// runStartTime fetches the stored start time for a run.
func (s *StoreImpl) runStartTime(runID int64) (time.Time, error) {
	quotedTableName := quoteTableName(runsTable, s.backend)

	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	row := s.db.QueryRow(query, runID)
	if s.backend == schema.SQLiteBackend {
		var raw string
		if err := row.Scan(&raw); err != nil {
			return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse start_time: %w", err)
		}
		return t, nil
	}

	var t time.Time
	if err := row.Scan(&t); err != nil {
		return time.Time{}, fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	return t, nil
}

// RecordCriterionScore stores one criterion's score for a run.
func (s *StoreImpl) RecordCriterionScore(runID int64, result schema.CriterionResult) error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(criterionScoresTable, s.backend)
	recordedAt := time.Now().UTC()
	diagnostic := joinDiagnostic(result.Diagnostic)

	var query string
	var args []any
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, criterion, score, diagnostic, recorded_at) VALUES ($1, $2, $3, $4, $5)`, quotedTableName)
		args = []any{runID, string(result.Criterion), result.Score, diagnostic, recordedAt}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (run_id, criterion, score, diagnostic, recorded_at) VALUES (?, ?, ?, ?, ?)`, quotedTableName)
		args = []any{runID, string(result.Criterion), result.Score, diagnostic, formatTime(recordedAt, s.backend)}
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert criterion score: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *StoreImpl) ListRuns(limit int) ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT run_id, source, start_time, end_time, row_count, column_count, overall, config_json, report_json, duration_ms, tool_version FROM %s ORDER BY run_id DESC LIMIT $1`, quotedTableName)
	default:
		query = fmt.Sprintf(`SELECT run_id, source, start_time, end_time, row_count, column_count, overall, config_json, report_json, duration_ms, tool_version FROM %s ORDER BY run_id DESC LIMIT ?`, quotedTableName)
	}

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord

		if s.backend == schema.SQLiteBackend {
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.Source, &startTimeStr, &endTimeStr, &record.Rows, &record.Columns,
				&record.Overall, &record.ConfigJSON, &record.ReportJSON, &record.DurationMs, &record.ToolVersion); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
			record.StartTime, err = time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		} else {
			if err := rows.Scan(&record.RunID, &record.Source, &record.StartTime, &record.EndTime, &record.Rows, &record.Columns,
				&record.Overall, &record.ConfigJSON, &record.ReportJSON, &record.DurationMs, &record.ToolVersion); err != nil {
				return nil, fmt.Errorf("failed to scan run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return results, nil
}

// ListCriterionScores returns all criterion scores for a run.
func (s *StoreImpl) ListCriterionScores(runID int64) ([]schema.CriterionScoreRecord, error) {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(criterionScoresTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT run_id, criterion, score, diagnostic, recorded_at FROM %s WHERE run_id = $1 ORDER BY criterion`, quotedTableName)
	default:
		query = fmt.Sprintf(`SELECT run_id, criterion, score, diagnostic, recorded_at FROM %s WHERE run_id = ? ORDER BY criterion`, quotedTableName)
	}

	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query criterion scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CriterionScoreRecord
	for rows.Next() {
		var record schema.CriterionScoreRecord

		if s.backend == schema.SQLiteBackend {
			var recordedAtStr string
			if err := rows.Scan(&record.RunID, &record.Criterion, &record.Score, &record.Diagnostic, &recordedAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan criterion score: %w", err)
			}
			record.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
		} else {
			if err := rows.Scan(&record.RunID, &record.Criterion, &record.Score, &record.Diagnostic, &record.RecordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan criterion score: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating criterion scores: %w", err)
	}

	return results, nil
}

// ClearRuns deletes all persisted runs and their criterion scores.
func (s *StoreImpl) ClearRuns() error {
	// Skip for NoneBackend
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	// Scores first so a failure between the deletes leaves no orphans.
	if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s`, quoteTableName(criterionScoresTable, s.backend))); err != nil {
		return fmt.Errorf("failed to clear criterion scores: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf(`DELETE FROM %s`, quoteTableName(runsTable, s.backend))); err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// quoteTableName quotes a table identifier for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}

// joinDiagnostic flattens a diagnostic list for a single text column.
func joinDiagnostic(diag []string) string {
	return strings.Join(diag, "; ")
}
