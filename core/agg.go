package core

import (
	"fmt"
	"time"

	"github.com/calderasa/tablequal/schema"
)

// Aggregate combines the five criterion results into a QualityReport. The
// overall score is the arithmetic mean of the five integer scores, rounded
// to one decimal. An incomplete or out-of-range result set is a hard error:
// publishing a misleading overall score is worse than halting.
func Aggregate(ds *schema.Dataset, results []schema.CriterionResult) (*schema.QualityReport, error) {
	byName := make(map[schema.Criterion]schema.CriterionResult, len(results))
	for _, res := range results {
		if !res.Criterion.IsValid() {
			return nil, fmt.Errorf("aggregation: unknown criterion %q", res.Criterion)
		}
		if _, dup := byName[res.Criterion]; dup {
			return nil, fmt.Errorf("aggregation: duplicate result for criterion %q", res.Criterion)
		}
		if res.Score < schema.ScoreFloor || res.Score > schema.ScoreCeiling {
			return nil, fmt.Errorf("aggregation: criterion %q score %d out of range [%d,%d]",
				res.Criterion, res.Score, schema.ScoreFloor, schema.ScoreCeiling)
		}
		byName[res.Criterion] = res
	}

	var sum float64
	for _, c := range schema.AllCriteria {
		res, ok := byName[c]
		if !ok {
			return nil, fmt.Errorf("aggregation: missing result for criterion %q", c)
		}
		sum += float64(res.Score)
	}

	return &schema.QualityReport{
		Results:     byName,
		Overall:     schema.RoundOverall(sum / float64(len(schema.AllCriteria))),
		Rows:        ds.Rows(),
		ColumnCount: len(ds.Columns),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
