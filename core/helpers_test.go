package core

import (
	"github.com/calderasa/tablequal/schema"
)

// nullValue is the sentinel used by the test column builders below to mark
// a null cell.
const nullValue = "\x00"

func buildColumn(name string, typ schema.ColumnType, values ...string) schema.Column {
	cells := make([]schema.Cell, len(values))
	for i, v := range values {
		if v == nullValue {
			cells[i] = schema.NullCell()
		} else {
			cells[i] = schema.NewCell(v)
		}
	}
	return schema.Column{Name: name, Type: typ, Cells: cells}
}

func numericColumn(name string, values ...string) schema.Column {
	return buildColumn(name, schema.NumericColumn, values...)
}

func textualColumn(name string, values ...string) schema.Column {
	return buildColumn(name, schema.TextualColumn, values...)
}

func temporalColumn(name string, values ...string) schema.Column {
	return buildColumn(name, schema.TemporalColumn, values...)
}

func buildDataset(cols ...schema.Column) *schema.Dataset {
	return &schema.Dataset{Columns: cols}
}

// repeat returns a slice of n copies of v, for building bulk columns.
func repeat(v string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}
	return out
}
