// Package csv parses delimited sales files into tables of generic records.
// Header names are preserved verbatim (aside from a stripped UTF-8 BOM) so
// that schema validation can report exactly what the file contains. Rows
// whose width does not match the header are skipped softly and counted; one
// malformed row never aborts the rest of the file.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"salesreport/pkg/records"
)

// Options configures the parser. All fields are optional; sensible defaults
// are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each cell value.
	TrimSpace bool

	// HeaderMap maps source header names to canonical keys. Headers absent
	// from the map are kept verbatim.
	HeaderMap map[string]string
}

// Table is one parsed input source: its verbatim headers, its rows as
// records, and the count of rows skipped during parsing.
type Table struct {
	Source  string // base name of the originating file
	Headers []string
	Rows    []records.Record
	Skipped int
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps per-file skip logging so a pathological file cannot
// flood stderr.
const skipLogLimit = 400

// Parse consumes CSV records from r and returns the parsed table. The first
// row is the header; body rows with a different field count are skipped
// (soft-fail) and counted, as are rows the csv reader cannot decode.
func (p *Parser) Parse(source string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1 // width enforced below, per row

	h, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read csv header: %w", source, err)
	}
	headers := cleanHeaders(h, p.opt.HeaderMap)

	t := &Table{Source: source, Headers: headers}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if t.Skipped < skipLogLimit {
				log.Printf("%s: skipping row %d: %v", source, line, err)
			}
			t.Skipped++
			continue
		}
		if len(row) != len(headers) {
			if t.Skipped < skipLogLimit {
				log.Printf("%s: skipping row %d: incorrect number of fields (expected %d, got %d)",
					source, line, len(headers), len(row))
			}
			t.Skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[headers[i]] = emptyToNil(val)
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// emptyToNil converts an empty string to nil; all other values are returned
// as-is.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// cleanHeaders trims surrounding whitespace, strips a UTF-8 BOM from the
// first cell, and applies the optional HeaderMap. Header casing and spelling
// are otherwise preserved verbatim; the schema contract matches columns
// case-sensitively.
func cleanHeaders(h []string, headerMap map[string]string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if headerMap != nil {
			if m, ok := headerMap[c]; ok && m != "" {
				c = m
			}
		}
		res[i] = c
	}
	return res
}
