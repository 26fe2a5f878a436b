package core

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/calderasa/tablequal/schema"
)

// errSkipCheck marks a check that cannot be applied to a column. The check
// is dropped from the column's counters instead of failing the column.
var errSkipCheck = errors.New("check not applicable")

// integrityTrivialPassing is the score when no column has applicable checks.
const integrityTrivialPassing = 5

// evaluateIntegrity runs the keyword-driven rule table against every column.
// Each applicable rule is one check; a column's sub-score is passes/checks,
// and the criterion score is the mean sub-score scaled onto 1-5. Columns
// with no applicable checks stay out of the mean entirely.
func evaluateIntegrity(ds *schema.Dataset, opts Options) schema.CriterionResult {
	rules := defaultIntegrityRules()

	var sumSubScores float64
	checkedColumns := 0
	var diagnostic []string

	for i := range ds.Columns {
		col := &ds.Columns[i]
		in := &ruleInput{
			col:   col,
			lower: strings.ToLower(col.Name),
		}
		if col.Type == schema.TextualColumn {
			in.sample = sampleValues(col, opts)
		}

		checks, passes := 0, 0
		var problems []string

		for r := range rules {
			rule := &rules[r]
			if !rule.appliesTo(in) {
				continue
			}
			pass, problem, err := rule.check(in)
			if err != nil {
				// The check cannot run for this column; skip it locally
				// rather than aborting the evaluation.
				continue
			}
			checks++
			if pass {
				passes++
			} else if problem != "" {
				problems = append(problems, problem)
			}
		}

		if checks == 0 {
			continue
		}
		sumSubScores += float64(passes) / float64(checks)
		checkedColumns++
		if len(problems) > 0 {
			diagnostic = append(diagnostic, fmt.Sprintf("%s: %s", col.Name, strings.Join(problems, ", ")))
		}
	}

	if checkedColumns == 0 {
		return schema.CriterionResult{
			Criterion:  schema.Integrity,
			Score:      integrityTrivialPassing,
			Diagnostic: diagnostic,
		}
	}

	score := schema.ClampScore(schema.RoundHalfEven(sumSubScores / float64(checkedColumns) * 5))

	return schema.CriterionResult{
		Criterion:  schema.Integrity,
		Score:      score,
		Diagnostic: diagnostic,
	}
}

// sampleValues draws up to opts.SampleSize non-null values from a column
// using the configured seed. Columns at or under the sample size are taken
// whole in row order; larger columns are sampled without replacement via a
// seeded permutation, so identical inputs always yield identical samples.
func sampleValues(col *schema.Column, opts Options) []string {
	values := col.NonNull()
	if opts.SampleSize <= 0 || len(values) <= opts.SampleSize {
		return values
	}

	rng := rand.New(rand.NewSource(opts.SampleSeed))
	perm := rng.Perm(len(values))

	sample := make([]string, opts.SampleSize)
	for i := 0; i < opts.SampleSize; i++ {
		sample[i] = values[perm[i]]
	}
	return sample
}
