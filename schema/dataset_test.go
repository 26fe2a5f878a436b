package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func col(name string, typ ColumnType, cells ...Cell) Column {
	return Column{Name: name, Type: typ, Cells: cells}
}

func TestDatasetValidate(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		wantErr string
	}{
		{
			name: "valid",
			ds: Dataset{Columns: []Column{
				col("a", NumericColumn, NewCell("1"), NewCell("2")),
				col("b", TextualColumn, NewCell("x"), NullCell()),
			}},
		},
		{
			name:    "no columns",
			ds:      Dataset{},
			wantErr: ErrEmptyDataset.Error(),
		},
		{
			name: "no rows",
			ds: Dataset{Columns: []Column{
				col("a", NumericColumn),
			}},
			wantErr: ErrEmptyDataset.Error(),
		},
		{
			name: "ragged columns",
			ds: Dataset{Columns: []Column{
				col("a", NumericColumn, NewCell("1"), NewCell("2")),
				col("b", TextualColumn, NewCell("x")),
			}},
			wantErr: `column "b" has 1 rows, expected 2`,
		},
		{
			name: "duplicate names",
			ds: Dataset{Columns: []Column{
				col("a", NumericColumn, NewCell("1")),
				col("a", TextualColumn, NewCell("x")),
			}},
			wantErr: `duplicate column name "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestDatasetLookup(t *testing.T) {
	ds := Dataset{Columns: []Column{
		col("id", NumericColumn, NewCell("1")),
		col("nome", TextualColumn, NewCell("a")),
	}}

	assert.Equal(t, 1, ds.Rows())
	assert.Equal(t, []string{"id", "nome"}, ds.ColumnNames())
	assert.Equal(t, "nome", ds.Column("nome").Name)
	assert.Nil(t, ds.Column("missing"))

	// Column returns a live pointer into the dataset, not a copy.
	ds.Column("id").Cells[0] = NullCell()
	assert.True(t, ds.Columns[0].Cells[0].Null)
}

func TestColumnNullFraction(t *testing.T) {
	tests := []struct {
		name  string
		cells []Cell
		want  float64
	}{
		{"empty column", nil, 0},
		{"no nulls", []Cell{NewCell("a"), NewCell("b")}, 0},
		{"half nulls", []Cell{NewCell("a"), NullCell()}, 0.5},
		{"all nulls", []Cell{NullCell(), NullCell()}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := col("c", TextualColumn, tt.cells...)
			assert.InDelta(t, tt.want, c.NullFraction(), 1e-9)
		})
	}
}

func TestColumnNonNull(t *testing.T) {
	c := col("c", TextualColumn,
		NewCell("  abc  "),
		NullCell(),
		NewCell("def"),
		NewCell(""),
	)
	assert.Equal(t, []string{"abc", "def", ""}, c.NonNull())
}

func TestColumnFloats(t *testing.T) {
	c := col("c", NumericColumn,
		NewCell("1.5"),
		NewCell(" 2,5 "), // decimal comma normalized
		NullCell(),
		NewCell("abc"), // unparseable, skipped
		NewCell("-3"),
	)
	assert.Equal(t, []float64{1.5, 2.5, -3}, c.Floats())
}
