// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/calderasa/tablequal/schema"
)

// HistoryStore defines the interface for persisting quality runs.
// This allows the history layer to be mocked for testing.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its unique ID.
	BeginRun(source string, startTime time.Time, configJSON string) (int64, error)

	// EndRun updates the run with completion data and the final report.
	EndRun(runID int64, endTime time.Time, report *schema.QualityReport, reportJSON string) error

	// RecordCriterionScore stores one criterion's score for a run.
	RecordCriterionScore(runID int64, result schema.CriterionResult) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.RunRecord, error)

	// ListCriterionScores returns all criterion scores for a run.
	ListCriterionScores(runID int64) ([]schema.CriterionScoreRecord, error)

	// ClearRuns deletes all persisted runs and their criterion scores.
	ClearRuns() error

	// Close closes the underlying connection.
	Close() error
}
