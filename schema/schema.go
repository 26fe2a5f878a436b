package schema

import (
	"math"
	"time"
)

// Score bounds for every criterion. A computed score never leaves this range:
// the linear mappings are clamped at ScoreFloor rather than reaching 0.
const (
	ScoreFloor   = 1
	ScoreCeiling = 5
)

// CriterionResult is the outcome of evaluating one criterion: an integer
// score in [1,5] and the diagnostic payload (offending column names or
// human-readable findings, depending on the criterion).
type CriterionResult struct {
	Criterion  Criterion `json:"criterion"`
	Score      int       `json:"score"`
	Diagnostic []string  `json:"diagnostic"`
}

// QualityReport maps each of the five criteria to its result, plus the
// derived overall score (mean of the five, one decimal). A report is computed
// once per dataset and never mutated afterwards.
type QualityReport struct {
	Results     map[Criterion]CriterionResult `json:"results"`
	Overall     float64                       `json:"overall"`
	Rows        int                           `json:"rows"`
	ColumnCount int                           `json:"columns"`
	GeneratedAt time.Time                     `json:"generated_at"`
}

// Result returns the result for a criterion, with ok=false when missing.
func (r *QualityReport) Result(c Criterion) (CriterionResult, bool) {
	res, ok := r.Results[c]
	return res, ok
}

// WeakCriteria returns the criteria with score <= threshold, in canonical
// order. The advisor prompts only about these.
func (r *QualityReport) WeakCriteria(threshold int) []CriterionResult {
	var weak []CriterionResult
	for _, c := range AllCriteria {
		if res, ok := r.Results[c]; ok && res.Score <= threshold {
			weak = append(weak, res)
		}
	}
	return weak
}

// RoundHalfEven rounds to the nearest integer, ties to even. The original
// scoring formulas were calibrated with this rounding mode, so it is part of
// the behavioral contract (round(2.5) == 2, not 3).
func RoundHalfEven(v float64) int {
	return int(math.RoundToEven(v))
}

// RoundOverall rounds an overall score to one decimal place, ties to even.
func RoundOverall(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

// ClampScore applies the score floor and ceiling to a rounded score.
func ClampScore(score int) int {
	if score < ScoreFloor {
		return ScoreFloor
	}
	if score > ScoreCeiling {
		return ScoreCeiling
	}
	return score
}

// RunRecord is a persisted quality run, mapping to the tablequal_runs table.
type RunRecord struct {
	RunID       int64      `json:"run_id"`
	Source      string     `json:"source"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Rows        int        `json:"rows"`
	Columns     int        `json:"columns"`
	Overall     float64    `json:"overall"`
	ConfigJSON  *string    `json:"config_json,omitempty"`
	ReportJSON  *string    `json:"report_json,omitempty"`
	DurationMs  *int64     `json:"duration_ms,omitempty"`
	ToolVersion string     `json:"tool_version"`
}

// CriterionScoreRecord is one criterion's score within a persisted run,
// mapping to the tablequal_criterion_scores table.
type CriterionScoreRecord struct {
	RunID      int64     `json:"run_id"`
	Criterion  string    `json:"criterion"`
	Score      int       `json:"score"`
	Diagnostic string    `json:"diagnostic"`
	RecordedAt time.Time `json:"recorded_at"`
}
