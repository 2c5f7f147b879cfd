// =================================
// File: internal/dataset/loader.go
// =================================
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Table is a column-addressable view over a loaded CSV file. Cells are kept
// as raw strings; numeric coercion happens per column via Numeric.
type Table struct {
	headers []string
	index   map[string]int
	records [][]string
}

// percentSampleSize bounds how many cells the percent-suffix sniffer looks at.
const percentSampleSize = 100

// LoadCSV reads the file at path into a Table. Rows shorter than the header
// are padded with empty cells rather than rejected; the numeric coercion
// treats those cells as missing.
func LoadCSV(path string, logger *zap.Logger) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade data: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV %s is empty", path)
	}

	headers := rows[0]
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}

	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		records = append(records, row)
	}

	logger.Info("Trade data loaded",
		zap.String("file", path),
		zap.Int("rows", len(records)),
		zap.Int("columns", len(headers)))

	return &Table{headers: headers, index: index, records: records}, nil
}

// NewTable builds a Table from in-memory data. Used by callers that already
// hold tabular data and by tests.
func NewTable(headers []string, records [][]string) *Table {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	return &Table{headers: headers, index: index, records: records}
}

// Headers returns the column names in file order.
func (t *Table) Headers() []string {
	return t.headers
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.records)
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Numeric coerces a column to float64, one value per row. Cells that do not
// parse become NaN so that missing data stays distinguishable from zero.
// When the majority of a sample of non-empty cells carries a '%' suffix, the
// suffix is stripped column-wide first, matching how percent-formatted
// exports are usually written.
func (t *Table) Numeric(name string) ([]float64, bool) {
	col, ok := t.index[name]
	if !ok {
		return nil, false
	}

	stripPercent := t.sniffPercentColumn(col)

	values := make([]float64, len(t.records))
	for i, row := range t.records {
		cell := strings.TrimSpace(row[col])
		if stripPercent {
			cell = strings.TrimSuffix(cell, "%")
		}
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		// Tolerate thousands separators ("1,250.00") in exported data.
		cell = strings.ReplaceAll(cell, ",", "")
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = v
	}
	return values, true
}

// sniffPercentColumn samples non-empty cells and reports whether more than
// half of them end with '%'.
func (t *Table) sniffPercentColumn(col int) bool {
	sampled, suffixed := 0, 0
	for _, row := range t.records {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		sampled++
		if strings.HasSuffix(cell, "%") {
			suffixed++
		}
		if sampled == percentSampleSize {
			break
		}
	}
	if sampled == 0 {
		return false
	}
	return suffixed*2 > sampled
}
