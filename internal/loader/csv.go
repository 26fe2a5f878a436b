package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/calderasa/tablequal/schema"
	"golang.org/x/text/encoding/charmap"
)

// csvSeparators lists the candidate separators, tried in order against the
// header line.
var csvSeparators = []rune{',', ';', '\t', '|'}

// LoadCSV reads a CSV file into a dataset. The byte stream is decoded as
// UTF-8 when valid, falling back to Latin-1 otherwise; the separator is
// sniffed from the header line unless opts.Separator overrides it.
func LoadCSV(path string, opts Options) (*schema.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	content, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	sep := []rune(opts.Separator)
	if len(sep) == 0 {
		sep = []rune{sniffSeparator(content)}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = sep[0]
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // short rows are padded with nulls below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, schema.ErrEmptyDataset
	}

	header := records[0]
	columns := make([]schema.Column, len(header))
	for i, name := range header {
		columns[i] = schema.Column{
			Name:  strings.TrimSpace(name),
			Cells: make([]schema.Cell, 0, len(records)-1),
		}
	}

	for _, record := range records[1:] {
		for i := range columns {
			if i < len(record) {
				columns[i].Cells = append(columns[i].Cells, cellFor(record[i]))
			} else {
				columns[i].Cells = append(columns[i].Cells, schema.NullCell())
			}
		}
	}

	return finalize(&schema.Dataset{Columns: columns})
}

// decodeText returns the content as a UTF-8 string, transcoding from Latin-1
// when the bytes are not valid UTF-8. A UTF-8 BOM is stripped when present.
func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// sniffSeparator picks the first candidate separator present in the header
// line, defaulting to comma.
func sniffSeparator(content string) rune {
	header, _, _ := strings.Cut(content, "\n")
	for _, sep := range csvSeparators {
		if strings.ContainsRune(header, sep) {
			return sep
		}
	}
	return ','
}
