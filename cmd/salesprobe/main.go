// Command salesprobe inspects one input file and reports what the pipeline
// will see: the verbatim column headers, a canonical ASCII form of each, an
// inferred type from sampled values, and — most importantly for operators —
// which required sales columns are missing and what a valid file looks like.
//
// Example:
//
//	salesprobe -file=input/sales_march.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"salesreport/internal/config"
	parsercsv "salesreport/internal/parser/csv"
	"salesreport/internal/parser/xlsx"
	"salesreport/internal/schema"
	"salesreport/pkg/records"
)

func main() {
	var (
		path      string
		delimiter string
		sample    int
	)
	flag.StringVar(&path, "file", "", "input file to inspect (.csv or .xlsx)")
	flag.StringVar(&delimiter, "delimiter", ",", "CSV field delimiter")
	flag.IntVar(&sample, "rows", 50, "number of rows to sample for type inference")
	flag.Parse()

	if path == "" {
		fatalf("usage: salesprobe -file=<path>")
	}

	t, err := parse(path, delimiter)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("%s: %d column(s), %d row(s) parsed, %d skipped\n\n",
		t.Source, len(t.Headers), len(t.Rows), t.Skipped)

	rows := t.Rows
	if len(rows) > sample {
		rows = rows[:sample]
	}

	fmt.Printf("%-24s %-24s %-8s %s\n", "COLUMN", "CANONICAL", "TYPE", "EXAMPLE")
	for _, h := range t.Headers {
		values := columnValues(rows, h)
		example := ""
		if len(values) > 0 {
			example = values[0]
		}
		fmt.Printf("%-24s %-24s %-8s %s\n", h, slugify(h), inferType(values), example)
	}
	fmt.Println()

	if err := schema.Sales().ValidateColumns(t.Source, t.Headers); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("schema OK: all required sales columns are present")
}

func parse(path, delimiter string) (*parsercsv.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		p := &xlsx.Parser{TrimSpace: true}
		return p.Parse(name, f)
	}
	comma := ','
	if delimiter != "" {
		comma = []rune(delimiter)[0]
	}
	p := parsercsv.NewParser(parsercsv.Options{Comma: comma, TrimSpace: true})
	return p.Parse(name, f)
}

func columnValues(rows []records.Record, header string) []string {
	var out []string
	for _, r := range rows {
		if s, ok := r.String(header); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// inferType reports the narrowest type that fits every sampled value:
// int → real → date → text. An empty sample is text.
func inferType(values []string) string {
	if len(values) == 0 {
		return "text"
	}

	kind := "int"
	for _, v := range values {
		switch kind {
		case "int":
			if _, err := strconv.ParseInt(v, 10, 64); err == nil {
				continue
			}
			kind = "real"
			fallthrough
		case "real":
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				continue
			}
			kind = "date"
			fallthrough
		case "date":
			if isDate(v) {
				continue
			}
			return "text"
		}
	}
	return kind
}

func isDate(s string) bool {
	for _, layout := range config.DefaultDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// slugify folds a header to a canonical ASCII identifier: diacritics are
// stripped, letters lowercased, and separator runs collapse to a single
// underscore. This is what the header would look like after renaming a
// localized export to the contract's column names.
func slugify(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	ascii, _, _ := transform.String(t, strings.ToLower(s))

	var b strings.Builder
	prevUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevUnderscore = false
		case r == '_' || r == ' ' || r == '-' || r == '.':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			// drop anything else
		}
	}
	return strings.Trim(b.String(), "_")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
