package loader

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/calderasa/tablequal/schema"
	"github.com/parquet-go/parquet-go"
)

// parquetReadBatch is the row batch size used when draining row groups.
const parquetReadBatch = 256

// LoadParquet reads a flat Parquet file into a dataset. Values are rendered
// to their string form and column types re-inferred, so parquet input goes
// through the same typing path as csv and json.
func LoadParquet(path string) (*schema.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("parse parquet: %w", err)
	}

	fields := pf.Schema().Fields()
	columns := make([]schema.Column, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("parse parquet: column %q is nested; only flat files are supported", field.Name())
		}
		columns[i] = schema.Column{Name: field.Name()}
	}

	buf := make([]parquet.Row, parquetReadBatch)
	for _, rowGroup := range pf.RowGroups() {
		rows := rowGroup.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, value := range row {
					ci := value.Column()
					if ci < 0 || ci >= len(columns) {
						continue
					}
					columns[ci].Cells = append(columns[ci].Cells, parquetCell(value))
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}

	return finalize(&schema.Dataset{Columns: columns})
}

// parquetCell converts a parquet value into a cell.
func parquetCell(value parquet.Value) schema.Cell {
	if value.IsNull() {
		return schema.NullCell()
	}
	switch value.Kind() {
	case parquet.Boolean:
		if value.Boolean() {
			return schema.NewCell("true")
		}
		return schema.NewCell("false")
	case parquet.Int32:
		return schema.NewCell(strconv.FormatInt(int64(value.Int32()), 10))
	case parquet.Int64:
		return schema.NewCell(strconv.FormatInt(value.Int64(), 10))
	case parquet.Float:
		return schema.NewCell(strconv.FormatFloat(float64(value.Float()), 'f', -1, 32))
	case parquet.Double:
		return schema.NewCell(strconv.FormatFloat(value.Double(), 'f', -1, 64))
	default:
		return cellFor(value.String())
	}
}
