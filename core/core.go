// Package core implements the scoring engine: five independent criterion
// evaluators (completeness, uniqueness, consistency, accuracy, integrity)
// and the aggregator that combines them into a QualityReport.
//
// Every evaluator is a pure function over an immutable dataset snapshot.
// The numeric calibration (the /20 and *5 linear mappings, the 0.3/0.2/0.1/
// 0.5 thresholds) is preserved exactly as a behavioral contract and is not
// up for tuning.
package core

import (
	"github.com/calderasa/tablequal/schema"
)

// Default evaluation parameters.
const (
	DefaultSampleSeed = 42  // fixed seed so repeated runs are byte-identical
	DefaultSampleSize = 100 // max non-null textual values sampled per column
)

// Options controls the evaluation. The sampling seed is explicit rather than
// ambient so the integrity diagnostics are reproducible.
type Options struct {
	SampleSeed int64
	SampleSize int
}

// DefaultOptions returns the standard evaluation options.
func DefaultOptions() Options {
	return Options{
		SampleSeed: DefaultSampleSeed,
		SampleSize: DefaultSampleSize,
	}
}

// evaluatorFunc computes a single criterion over a dataset.
type evaluatorFunc func(ds *schema.Dataset, opts Options) schema.CriterionResult

// evaluatorFor maps each criterion to its evaluator. The criteria form a
// fixed enumeration; an unknown criterion is a programming error.
func evaluatorFor(c schema.Criterion) evaluatorFunc {
	switch c {
	case schema.Completeness:
		return evaluateCompleteness
	case schema.Uniqueness:
		return evaluateUniqueness
	case schema.Consistency:
		return evaluateConsistency
	case schema.Accuracy:
		return evaluateAccuracy
	case schema.Integrity:
		return evaluateIntegrity
	}
	return nil
}
