package core

import (
	"strings"

	"github.com/calderasa/tablequal/schema"
)

// uniquenessFlagThreshold is the duplicate-row fraction above which the
// report carries the duplicate warning.
const uniquenessFlagThreshold = 0.2

// duplicateWarning is the single diagnostic message for heavy duplication.
const duplicateWarning = "muitos registros duplicados"

// evaluateUniqueness scores the fraction of fully duplicated rows. A row is
// a duplicate when every cell (including nulls) matches an earlier row.
func evaluateUniqueness(ds *schema.Dataset, _ Options) schema.CriterionResult {
	rows := ds.Rows()
	seen := make(map[string]bool, rows)
	duplicates := 0

	var key strings.Builder
	for r := 0; r < rows; r++ {
		key.Reset()
		for _, col := range ds.Columns {
			cell := col.Cells[r]
			if cell.Null {
				key.WriteString("\x00")
			} else {
				key.WriteString(cell.Raw)
			}
			key.WriteString("\x1f")
		}
		k := key.String()
		if seen[k] {
			duplicates++
		} else {
			seen[k] = true
		}
	}

	dupFraction := float64(duplicates) / float64(rows)
	score := schema.ClampScore(schema.RoundHalfEven((1 - dupFraction) * 100 / 20))

	var diagnostic []string
	if dupFraction > uniquenessFlagThreshold {
		diagnostic = []string{duplicateWarning}
	}

	return schema.CriterionResult{
		Criterion:  schema.Uniqueness,
		Score:      score,
		Diagnostic: diagnostic,
	}
}
