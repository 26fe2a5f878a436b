// Package loader reads tabular files (CSV, JSON, Parquet) into the dataset
// model, detecting encodings, separators and column types along the way.
package loader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/calderasa/tablequal/schema"
)

// Options controls how a file is loaded.
type Options struct {
	// Separator overrides CSV separator sniffing when non-empty.
	Separator string
}

// Tokens treated as null on top of empty cells, matching how the usual
// CSV producers spell missing values.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

var (
	numericValuePattern = regexp.MustCompile(`^-?\d+([.,]\d+)?$`)
	dateValuePattern    = regexp.MustCompile(`^\d{2}[/-]\d{2}[/-]\d{4}$|^\d{4}[/-]\d{2}[/-]\d{2}$`)
)

// Load reads the file at path into a dataset, dispatching on file extension.
// Returns an error for unsupported formats (notably xlsx, which requires a
// spreadsheet engine this tool does not carry).
func Load(path string, opts Options) (*schema.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, opts)
	case ".json":
		return LoadJSON(path)
	case ".parquet":
		return LoadParquet(path)
	case ".xlsx":
		return nil, fmt.Errorf("xlsx files are not supported; export to csv, json or parquet first")
	default:
		return nil, fmt.Errorf("unsupported file extension %q. must be csv, json or parquet", filepath.Ext(path))
	}
}

// IsNullToken reports whether a raw cell value should be treated as null.
func IsNullToken(raw string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// cellFor converts a raw string into a cell, mapping null tokens to nulls.
func cellFor(raw string) schema.Cell {
	if IsNullToken(raw) {
		return schema.NullCell()
	}
	return schema.NewCell(raw)
}

// inferColumnType decides a column's declared type from its non-null values.
// Mirrors how a dataframe would type the column on read: every value must
// look numeric (or boolean) for a numeric dtype, every value must look like a
// date for a temporal dtype, anything else stays textual.
func inferColumnType(col *schema.Column) schema.ColumnType {
	values := col.NonNull()
	if len(values) == 0 {
		return schema.TextualColumn
	}

	numeric, temporal, boolean := true, true, true
	for _, v := range values {
		if !numericValuePattern.MatchString(v) {
			numeric = false
		}
		if !dateValuePattern.MatchString(v) {
			temporal = false
		}
		if !isBoolToken(v) {
			boolean = false
		}
		if !numeric && !temporal && !boolean {
			return schema.TextualColumn
		}
	}

	switch {
	case boolean:
		normalizeBoolCells(col)
		return schema.NumericColumn
	case numeric:
		return schema.NumericColumn
	case temporal:
		return schema.TemporalColumn
	default:
		return schema.TextualColumn
	}
}

func isBoolToken(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false":
		return true
	}
	return false
}

// normalizeBoolCells rewrites boolean raws as 0/1 so binary-domain checks
// and numeric evaluators see the column uniformly.
func normalizeBoolCells(col *schema.Column) {
	for i, cell := range col.Cells {
		if cell.Null {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(cell.Raw), "true") {
			col.Cells[i].Raw = "1"
		} else {
			col.Cells[i].Raw = "0"
		}
	}
}

// finalize infers types for every column and validates the dataset.
func finalize(ds *schema.Dataset) (*schema.Dataset, error) {
	for i := range ds.Columns {
		ds.Columns[i].Type = inferColumnType(&ds.Columns[i])
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}
