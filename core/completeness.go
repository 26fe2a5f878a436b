package core

import "github.com/calderasa/tablequal/schema"

// completenessFlagThreshold is the per-column null fraction above which a
// column lands in the diagnostic list.
const completenessFlagThreshold = 0.3

// evaluateCompleteness scores the fraction of filled-in cells. The mean null
// fraction across all columns is mapped linearly onto 1-5: a fully populated
// dataset scores 5, a fully null one floors at 1.
func evaluateCompleteness(ds *schema.Dataset, _ Options) schema.CriterionResult {
	var sumNull float64
	var flagged []string

	for _, col := range ds.Columns {
		nf := col.NullFraction()
		sumNull += nf
		if nf > completenessFlagThreshold {
			flagged = append(flagged, col.Name)
		}
	}

	meanNull := sumNull / float64(len(ds.Columns))
	score := schema.ClampScore(schema.RoundHalfEven((1 - meanNull) * 100 / 20))

	return schema.CriterionResult{
		Criterion:  schema.Completeness,
		Score:      score,
		Diagnostic: flagged,
	}
}
