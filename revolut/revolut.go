// Package revolut reads Revolut transaction-history CSV exports and
// reconciles their rows into cryptotax trades. Two vintages of the export
// exist: the 2022 format, where one currency exchange spans two paired rows,
// and the 2023 format, where every row carries its own fiat legs.
package revolut

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// readRecords reads the whole CSV and returns the header index and the
// records. The exports are comma-delimited with a header row; fields may be
// padded with whitespace.
func readRecords(r io.Reader) (map[string]int, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv records: %w", err)
	}
	return index, records, nil
}

// field returns the trimmed value of the named column, or "" when the
// column or the cell is absent.
func field(index map[string]int, record []string, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// decField parses the named column as an exact decimal.
func decField(index map[string]int, record []string, name string) (decimal.Decimal, error) {
	s := field(index, record, name)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("column %q: empty", name)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("column %q: %w", name, err)
	}
	return d, nil
}
