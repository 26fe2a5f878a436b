// Package schema has the models, constants and shared helpers for all parts
// of tablequal: the dataset abstraction the evaluators consume, the report
// types they produce, and the persisted record shapes.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyDataset is returned when a dataset has zero rows or zero columns.
var ErrEmptyDataset = errors.New("dataset has no rows or no columns")

// Cell is a single nullable value. Raw preserves the stringified source form
// so that format-level checks (consistency, integrity) see what was actually
// in the file, not a lossy numeric conversion.
type Cell struct {
	Raw  string
	Null bool
}

// Column is an ordered sequence of cells with a name and a declared type.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// Dataset is an ordered set of equally sized named columns. It is treated as
// an immutable snapshot once loaded; evaluators only read from it.
type Dataset struct {
	Columns []Column
}

// NewCell returns a non-null cell holding the given raw value.
func NewCell(raw string) Cell {
	return Cell{Raw: raw}
}

// NullCell returns a null cell.
func NullCell() Cell {
	return Cell{Null: true}
}

// Rows returns the row count shared by all columns, or 0 for an empty dataset.
func (d *Dataset) Rows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Cells)
}

// Validate checks the dataset invariants: at least one row and one column,
// equal row counts across columns, and unique column names.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 || d.Rows() == 0 {
		return ErrEmptyDataset
	}

	rows := d.Rows()
	seen := make(map[string]bool, len(d.Columns))
	for _, col := range d.Columns {
		if len(col.Cells) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), rows)
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = true
	}
	return nil
}

// ColumnNames returns the column names in dataset order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or nil when absent.
func (d *Dataset) Column(name string) *Column {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i]
		}
	}
	return nil
}

// NullFraction returns the fraction of null cells, or 0 for an empty column.
func (c *Column) NullFraction() float64 {
	if len(c.Cells) == 0 {
		return 0
	}
	nulls := 0
	for _, cell := range c.Cells {
		if cell.Null {
			nulls++
		}
	}
	return float64(nulls) / float64(len(c.Cells))
}

// NonNull returns the trimmed raw values of all non-null cells, in order.
func (c *Column) NonNull() []string {
	out := make([]string, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Null {
			out = append(out, strings.TrimSpace(cell.Raw))
		}
	}
	return out
}

// Floats returns the parsed numeric values of all non-null cells. Cells that
// do not parse as numbers are skipped; the consistency evaluator is the one
// responsible for flagging them.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Null {
			continue
		}
		raw := strings.ReplaceAll(strings.TrimSpace(cell.Raw), ",", ".")
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
