package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/calderasa/tablequal/schema"
)

// Evaluate runs the five criterion evaluators against the dataset and
// aggregates their results. The evaluators are independent pure functions,
// so each runs in its own goroutine over the same immutable snapshot; no
// locking is needed because every goroutine writes a unique result slot.
//
// The work is CPU-bound and does not block, so ctx is only consulted
// between phases: a cancelled context still yields a consistent error
// instead of a partial report.
func Evaluate(ctx context.Context, ds *schema.Dataset, opts Options) (*schema.QualityReport, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	results := make([]schema.CriterionResult, len(schema.AllCriteria))
	var wg sync.WaitGroup
	for i, criterion := range schema.AllCriteria {
		eval := evaluatorFor(criterion)
		wg.Go(func() {
			results[i] = eval(ds, opts)
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}

	return Aggregate(ds, results)
}
