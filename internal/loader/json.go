package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/calderasa/tablequal/schema"
)

// LoadJSON reads a JSON array of flat objects into a dataset. Column order
// follows the key order of the first record; records missing a key get a
// null cell for it.
func LoadJSON(path string) (*schema.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, fmt.Errorf("parse json: expected an array of objects: %w", err)
	}

	var order []string
	cells := make(map[string][]schema.Cell)
	rows := 0

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("parse json: record %d is not an object: %w", rows, err)
		}
		seen := make(map[string]bool, len(order))

		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse json: %w", err)
			}
			key := keyTok.(string)

			valTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse json: %w", err)
			}
			if _, isDelim := valTok.(json.Delim); isDelim {
				return nil, fmt.Errorf("parse json: field %q of record %d is nested; only flat objects are supported", key, rows)
			}

			if _, ok := cells[key]; !ok {
				order = append(order, key)
				// Backfill nulls for records that predate this key.
				cells[key] = make([]schema.Cell, rows)
				for i := range cells[key] {
					cells[key][i] = schema.NullCell()
				}
			}
			cells[key] = append(cells[key], jsonCell(valTok))
			seen[key] = true
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, fmt.Errorf("parse json: %w", err)
		}

		for _, key := range order {
			if !seen[key] {
				cells[key] = append(cells[key], schema.NullCell())
			}
		}
		rows++
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, fmt.Errorf("parse json: %w", err)
	}

	columns := make([]schema.Column, len(order))
	for i, key := range order {
		columns[i] = schema.Column{Name: key, Cells: cells[key]}
	}
	return finalize(&schema.Dataset{Columns: columns})
}

// jsonCell converts a decoded JSON scalar into a cell.
func jsonCell(tok json.Token) schema.Cell {
	switch v := tok.(type) {
	case nil:
		return schema.NullCell()
	case json.Number:
		return schema.NewCell(v.String())
	case bool:
		if v {
			return schema.NewCell("1")
		}
		return schema.NewCell("0")
	case string:
		return cellFor(v)
	default:
		return schema.NewCell(fmt.Sprint(v))
	}
}

// expectDelim consumes the next token and checks it is the given delimiter.
func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := tok.(json.Delim)
	if !ok || rune(delim) != want {
		return fmt.Errorf("got %v, want %s", tok, strconv.QuoteRune(want))
	}
	return nil
}
