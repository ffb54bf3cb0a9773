// Package xlsx parses the first sheet of an Excel workbook into the same
// Table shape the csv parser produces, so spreadsheet exports can be dropped
// into the input directory next to plain CSV files.
package xlsx

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	parsercsv "salesreport/internal/parser/csv"
	"salesreport/pkg/records"
)

// Parser reads workbook input. The zero value is ready to use.
type Parser struct {
	// TrimSpace trims leading/trailing spaces from each cell value.
	TrimSpace bool
}

// skipLogLimit mirrors the csv parser's cap on per-file skip logging.
const skipLogLimit = 400

// Parse reads the first sheet of the workbook from r. The first row is the
// header; excelize already truncates trailing empty cells, so short rows are
// padded and only rows wider than the header are skipped.
func (p *Parser) Parse(source string, r io.Reader) (*parsercsv.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", source, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", source)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: read sheet %q: %w", source, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", source, sheets[0])
	}

	headers := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		headers[i] = strings.TrimSpace(col)
	}

	t := &parsercsv.Table{Source: source, Headers: headers}
	for i, row := range rows[1:] {
		if len(row) > len(headers) {
			if t.Skipped < skipLogLimit {
				log.Printf("%s: skipping row %d: incorrect number of fields (expected %d, got %d)",
					source, i+2, len(headers), len(row))
			}
			t.Skipped++
			continue
		}

		rec := make(records.Record, len(headers))
		for j, h := range headers {
			val := ""
			if j < len(row) {
				val = row[j]
			}
			if p.TrimSpace {
				val = strings.TrimSpace(val)
			}
			if val == "" {
				rec[h] = nil
			} else {
				rec[h] = val
			}
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}
