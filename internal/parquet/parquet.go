// Package parquet provides data structures and functions for exporting run
// history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/calderasa/tablequal/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single quality run with metadata.
// This struct maps to the tablequal_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Source is the input file the run evaluated
	Source string `parquet:"source,snappy"`

	// StartTime is when the evaluation began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the evaluation completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// Rows is the dataset row count
	Rows int32 `parquet:"row_count,snappy"`

	// Columns is the dataset column count
	Columns int32 `parquet:"column_count,snappy"`

	// Overall is the final quality score, one decimal
	Overall float64 `parquet:"overall,snappy"`

	// ConfigJSON contains the JSON-encoded run configuration (nullable)
	ConfigJSON *string `parquet:"config_json,optional,snappy"`

	// DurationMs is the run duration in milliseconds (nullable)
	DurationMs *int64 `parquet:"duration_ms,optional,snappy"`

	// ToolVersion is the tool version that produced the run
	ToolVersion string `parquet:"tool_version,snappy"`
}

// CriterionScore represents one criterion's score within a run.
// This struct maps to the tablequal_criterion_scores database table.
type CriterionScore struct {
	// RunID references the parent run
	RunID int64 `parquet:"run_id,snappy"`

	// Criterion is the quality criterion name
	Criterion string `parquet:"criterion,snappy"`

	// Score is the integer score in [1,5]
	Score int32 `parquet:"score,snappy"`

	// Diagnostic holds the flattened diagnostic findings
	Diagnostic string `parquet:"diagnostic,snappy"`

	// RecordedAt is when the score was persisted
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteCriterionScoresParquet writes a slice of CriterionScore structs to a Parquet file.
func WriteCriterionScoresParquet(data []CriterionScore, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[CriterionScore](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:       record.RunID,
			Source:      record.Source,
			StartTime:   record.StartTime,
			EndTime:     record.EndTime,
			Rows:        int32(record.Rows),
			Columns:     int32(record.Columns),
			Overall:     record.Overall,
			ConfigJSON:  record.ConfigJSON,
			DurationMs:  record.DurationMs,
			ToolVersion: record.ToolVersion,
		}
	}
	return result
}

// ConvertCriterionScoreRecords converts schema.CriterionScoreRecord to CriterionScore for Parquet export.
func ConvertCriterionScoreRecords(records []schema.CriterionScoreRecord) []CriterionScore {
	result := make([]CriterionScore, len(records))
	for i, record := range records {
		result[i] = CriterionScore{
			RunID:      record.RunID,
			Criterion:  record.Criterion,
			Score:      int32(record.Score),
			Diagnostic: record.Diagnostic,
			RecordedAt: record.RecordedAt,
		}
	}
	return result
}
