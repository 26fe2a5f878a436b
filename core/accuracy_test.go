package core

import (
	"testing"

	"github.com/calderasa/tablequal/schema"
	"github.com/stretchr/testify/assert"
)

// TestAccuracy covers the IQR outlier detection, the trivial pass without
// numeric columns, and the diagnostic threshold.
func TestAccuracy(t *testing.T) {
	tests := []struct {
		name        string
		ds          *schema.Dataset
		wantScore   int
		wantFlagged []string
	}{
		{
			name: "no numeric columns passes trivially",
			ds: buildDataset(
				textualColumn("nome", "Ana", "Bia"),
			),
			wantScore:   5,
			wantFlagged: nil,
		},
		{
			name: "uniform values have no outliers",
			ds: buildDataset(
				numericColumn("valor", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"),
			),
			wantScore:   5,
			wantFlagged: nil,
		},
		{
			name: "single extreme value registers",
			ds: buildDataset(
				numericColumn("valor", "1", "2", "3", "4", "1000"),
			),
			// Q1=2, Q3=4, fences [-1,7]: one outlier in five rows,
			// credit 0.8 -> score 4, below the 0.3 diagnostic bar
			wantScore:   4,
			wantFlagged: nil,
		},
		{
			name: "heavy two-sided outliers get flagged",
			ds: buildDataset(
				numericColumn("medida", "-100", "-100", "1", "1", "1", "1", "1", "1", "100", "100"),
			),
			// IQR is zero, fences collapse to [1,1]: fraction 0.4,
			// credit 0.6 -> score 3
			wantScore:   3,
			wantFlagged: []string{"medida"},
		},
		{
			name: "all-null numeric column keeps full credit",
			ds: buildDataset(
				numericColumn("vazio", nullValue, nullValue, nullValue),
			),
			wantScore:   5,
			wantFlagged: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluateAccuracy(tt.ds, DefaultOptions())
			assert.Equal(t, schema.Accuracy, res.Criterion)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantFlagged, res.Diagnostic)
		})
	}
}

// TestQuantile pins the linear-interpolation quantile method.
func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"median of odd", []float64{3, 1, 2}, 0.5, 2},
		{"median of even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"first quartile", []float64{1, 2, 3, 4, 5}, 0.25, 2},
		{"third quartile", []float64{1, 2, 3, 4, 5}, 0.75, 4},
		{"interpolated quartile", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"single value", []float64{42}, 0.75, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.values, tt.q), 1e-9)
		})
	}
}
