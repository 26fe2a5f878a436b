package core

import (
	"regexp"

	"github.com/calderasa/tablequal/schema"
)

// Patterns describing what the cell content of each declared type should
// look like. These are matched against trimmed, stringified values.
var (
	numericPattern = regexp.MustCompile(`^-?\d+([.,]\d+)?$`)
	datePattern    = regexp.MustCompile(`^\d{2}[/-]\d{2}[/-]\d{4}$|^\d{4}[/-]\d{2}[/-]\d{2}$`)
)

// Consistency thresholds. A typed column tolerates up to 10% of values that
// do not match its declared type; a textual column is considered mistyped
// when more than half of its values look numeric or date-like.
const (
	consistencyMismatchThreshold = 0.1
	consistencyMistypeThreshold  = 0.5
)

// evaluateConsistency compares each column's declared type against its
// actual string content. Columns with only null cells are skipped (they can
// neither pass nor fail) but still count toward the column total.
func evaluateConsistency(ds *schema.Dataset, _ Options) schema.CriterionResult {
	var flagged []string

	for _, col := range ds.Columns {
		values := col.NonNull()
		if len(values) == 0 {
			continue
		}
		if columnInconsistent(&col, values) {
			flagged = append(flagged, col.Name)
		}
	}

	typedFraction := 1 - float64(len(flagged))/float64(len(ds.Columns))
	score := schema.ClampScore(schema.RoundHalfEven(typedFraction * 5))

	return schema.CriterionResult{
		Criterion:  schema.Consistency,
		Score:      score,
		Diagnostic: flagged,
	}
}

// columnInconsistent applies the type-specific mismatch rule to one column.
func columnInconsistent(col *schema.Column, values []string) bool {
	switch col.Type {
	case schema.NumericColumn:
		return mismatchFraction(values, numericPattern) > consistencyMismatchThreshold
	case schema.TemporalColumn:
		return mismatchFraction(values, datePattern) > consistencyMismatchThreshold
	case schema.TextualColumn:
		numeric := matchFraction(values, numericPattern)
		dates := matchFraction(values, datePattern)
		return numeric > consistencyMistypeThreshold || dates > consistencyMistypeThreshold
	}
	return false
}

// matchFraction returns the fraction of values matching the pattern.
func matchFraction(values []string, pattern *regexp.Regexp) float64 {
	matched := 0
	for _, v := range values {
		if pattern.MatchString(v) {
			matched++
		}
	}
	return float64(matched) / float64(len(values))
}

// mismatchFraction returns the fraction of values NOT matching the pattern.
func mismatchFraction(values []string, pattern *regexp.Regexp) float64 {
	return 1 - matchFraction(values, pattern)
}
