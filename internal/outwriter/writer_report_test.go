package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/calderasa/tablequal/internal/contract"
	"github.com/calderasa/tablequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.QualityReport {
	return &schema.QualityReport{
		Results: map[schema.Criterion]schema.CriterionResult{
			schema.Completeness: {Criterion: schema.Completeness, Score: 4, Diagnostic: []string{"valor"}},
			schema.Uniqueness:   {Criterion: schema.Uniqueness, Score: 5},
			schema.Consistency:  {Criterion: schema.Consistency, Score: 5},
			schema.Accuracy:     {Criterion: schema.Accuracy, Score: 3, Diagnostic: []string{"saldo"}},
			schema.Integrity:    {Criterion: schema.Integrity, Score: 5},
		},
		Overall:     4.4,
		Rows:        100,
		ColumnCount: 5,
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Width: 120}

	err := writeReportTable(sampleReport(), cfg, 42*time.Millisecond, &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Completeness")
	assert.Contains(t, out, "Integrity")
	assert.Contains(t, out, "valor")
	assert.Contains(t, out, "Overall score: 4.4 across 100 rows and 5 columns")
	assert.Contains(t, out, "Evaluation completed in")
}

func TestWriteReportTableColorLabels(t *testing.T) {
	var plain, colored bytes.Buffer
	report := sampleReport()

	require.NoError(t, writeReportTable(report, &contract.Config{Width: 120}, 0, &plain))
	require.NoError(t, writeReportTable(report, &contract.Config{Width: 120, UseColors: true}, 0, &colored))

	// Both carry the plain label text either way.
	assert.Contains(t, plain.String(), contract.GoodValue)
	assert.Contains(t, colored.String(), contract.GoodValue)
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReportCSV(&buf, sampleReport()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header + five criteria + overall row.
	require.Len(t, records, 7)
	assert.Equal(t, []string{"criterion", "score", "label", "diagnostic"}, records[0])
	assert.Equal(t, []string{"Completeness", "4", "Good", "valor"}, records[1])
	assert.Equal(t, []string{"Overall", "4.4", "", ""}, records[6])
}

func TestWriteReportJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleReport()))

	var decoded schema.QualityReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 4.4, decoded.Overall, 1e-9)
	assert.Equal(t, 4, decoded.Results[schema.Completeness].Score)
}

func TestWriteRunsTable(t *testing.T) {
	ms := int64(1500)
	runs := []schema.RunRecord{
		{RunID: 2, Source: "data.csv", StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), Overall: 4.8, Rows: 100, Columns: 3, DurationMs: &ms},
		{RunID: 1, Source: "old.csv", StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), Overall: 3.2, Rows: 50, Columns: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRunsTable(runs, &buf))

	out := buf.String()
	assert.Contains(t, out, "data.csv")
	assert.Contains(t, out, "4.8")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "Showing 2 runs")
}

func TestWriteRunsCSV(t *testing.T) {
	runs := []schema.RunRecord{
		{RunID: 1, Source: "data.csv", StartTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), Overall: 5.0, Rows: 10, Columns: 2},
	}

	var buf bytes.Buffer
	require.NoError(t, writeRunsCSV(&buf, runs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "data.csv", records[1][1])
	assert.Equal(t, "5.0", records[1][3])
	assert.Equal(t, "", records[1][6])
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", truncateText("short", 10))
	assert.Equal(t, "long te...", truncateText("long text that overflows", 10))
	assert.Equal(t, "tiny", truncateText("tiny", 3))
}

func TestGetMaxDiagnosticWidth(t *testing.T) {
	assert.Equal(t, 15, getMaxDiagnosticWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 75, getMaxDiagnosticWidth(&contract.Config{Width: 120}))
	assert.Equal(t, 90, getMaxDiagnosticWidth(&contract.Config{Width: 300}))
}
