package core

import (
	"testing"

	"github.com/calderasa/tablequal/schema"
	"github.com/stretchr/testify/assert"
)

// TestConsistency covers declared-type vs content mismatches for the three
// column types, plus the all-null skip.
func TestConsistency(t *testing.T) {
	tests := []struct {
		name        string
		ds          *schema.Dataset
		wantScore   int
		wantFlagged []string
	}{
		{
			name: "valid numeric strings are consistent",
			ds: buildDataset(
				numericColumn("valor", "10", "-2", "3.5", "4,25"),
			),
			wantScore:   5,
			wantFlagged: nil,
		},
		{
			name: "half non-numeric content flags numeric column",
			ds: buildDataset(
				numericColumn("valor", "10", "abc", "20", "xyz"),
			),
			wantScore:   1,
			wantFlagged: []string{"valor"},
		},
		{
			name: "temporal column tolerates up to ten percent",
			ds: buildDataset(
				temporalColumn("data", "01/02/2020", "2020-03-04", "05-06-2021", "07/08/2022", "09/10/2023", "11/12/2024", "2021/01/02", "03/04/2021", "05/06/2022", "oops"),
			),
			// exactly 10% invalid is not above the threshold
			wantScore:   5,
			wantFlagged: nil,
		},
		{
			name: "textual column full of numbers is mistyped",
			ds: buildDataset(
				textualColumn("nome", "123", "456", "789"),
				textualColumn("cidade", "Recife", "Natal", "Belém"),
			),
			// one of two columns flagged: (1-0.5)*5 = 2.5 rounds to 2
			wantScore:   2,
			wantFlagged: []string{"nome"},
		},
		{
			name: "textual column full of dates is mistyped",
			ds: buildDataset(
				textualColumn("inicio", "01/02/2020", "03/04/2021", "2022-05-06"),
			),
			wantScore:   1,
			wantFlagged: []string{"inicio"},
		},
		{
			name: "all-null column is skipped but still counted",
			ds: buildDataset(
				numericColumn("vazio", nullValue, nullValue),
				numericColumn("cheio", "1", "2"),
			),
			wantScore:   5,
			wantFlagged: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluateConsistency(tt.ds, DefaultOptions())
			assert.Equal(t, schema.Consistency, res.Criterion)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantFlagged, res.Diagnostic)
		})
	}
}

// TestConsistencyPatterns pins the value-shape regexes, which are part of
// the observable contract.
func TestConsistencyPatterns(t *testing.T) {
	numericMatches := map[string]bool{
		"10":     true,
		"-3":     true,
		"3.14":   true,
		"2,50":   true,
		"1.2.3":  false,
		"abc":    false,
		"10 ":    false,
		"":       false,
		"1e5":    false,
		"+7":     false,
		"-10,25": true,
	}
	for input, want := range numericMatches {
		assert.Equal(t, want, numericPattern.MatchString(input), "numeric %q", input)
	}

	dateMatches := map[string]bool{
		"01/02/2020": true,
		"01-02-2020": true,
		"2020/02/01": true,
		"2020-02-01": true,
		"1/2/2020":   false,
		"2020-2-1":   false,
		"01.02.2020": false,
		"20200201":   false,
	}
	for input, want := range dateMatches {
		assert.Equal(t, want, datePattern.MatchString(input), "date %q", input)
	}
}
