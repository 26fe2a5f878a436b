package core

import (
	"math"
	"sort"

	"github.com/calderasa/tablequal/schema"
)

// Accuracy (outlier) tuning.
const (
	iqrMultiplier          = 1.5 // Tukey fence width
	accuracyFlagThreshold  = 0.3 // per-column outlier fraction that lands in diagnostics
	accuracyTrivialPassing = 5   // score when no numeric columns exist
)

// evaluateAccuracy detects numeric outliers via the interquartile range.
// Each numeric column contributes (1 - outlierFraction) credit; the mean
// credit across numeric columns is scaled onto 1-5. Datasets without numeric
// columns pass trivially.
func evaluateAccuracy(ds *schema.Dataset, _ Options) schema.CriterionResult {
	var flagged []string
	var credit float64
	numericCols := 0

	for _, col := range ds.Columns {
		if col.Type != schema.NumericColumn {
			continue
		}
		numericCols++

		frac := outlierFraction(&col)
		if frac > accuracyFlagThreshold {
			flagged = append(flagged, col.Name)
		}
		credit += 1 - frac
	}

	if numericCols == 0 {
		return schema.CriterionResult{
			Criterion:  schema.Accuracy,
			Score:      accuracyTrivialPassing,
			Diagnostic: nil,
		}
	}

	score := schema.ClampScore(schema.RoundHalfEven(credit / float64(numericCols) * 5))

	return schema.CriterionResult{
		Criterion:  schema.Accuracy,
		Score:      score,
		Diagnostic: flagged,
	}
}

// outlierFraction computes the fraction of a column's rows falling outside
// the Tukey fences [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Null and unparseable cells
// never count as outliers, but the denominator is the full row count so a
// sparse column cannot inflate its outlier share.
func outlierFraction(col *schema.Column) float64 {
	values := col.Floats()
	if len(values) == 0 || len(col.Cells) == 0 {
		return 0
	}

	q1 := quantile(values, 0.25)
	q3 := quantile(values, 0.75)
	iqr := q3 - q1
	lo := q1 - iqrMultiplier*iqr
	hi := q3 + iqrMultiplier*iqr

	outliers := 0
	for _, v := range values {
		if v < lo || v > hi {
			outliers++
		}
	}
	return float64(outliers) / float64(len(col.Cells))
}

// quantile computes the q-quantile of values using linear interpolation
// between closest ranks, the same method the calibration assumed.
func quantile(values []float64, q float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
