package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"salesreport/internal/schema"
	"salesreport/pkg/records"
)

// RejectedRow describes one record dropped during coercion. Drops are never
// errors; the sink exists for observability (log lines, manifest counts).
type RejectedRow struct {
	Source string
	Raw    records.Record
	Reason string
}

// Coercer turns validated raw records into typed rows. A record whose
// price, quantity, or date fails to parse is dropped from the output;
// survivors are complete, typed rows tagged with their source file. An
// all-bad table coerces to an empty slice, which is a valid result.
type Coercer struct {
	// Layouts is the ordered list of accepted date layouts; the first match
	// wins. Must not be empty.
	Layouts []string

	// Reject, when set, receives every dropped record.
	Reject func(RejectedRow)
}

// Coerce converts the records of one table. source is the base name of the
// originating file and becomes the Source tag of every surviving row.
// Columns outside the sales contract are carried into Row.Extra verbatim.
func (c Coercer) Coerce(in []records.Record, source string) []Row {
	out := make([]Row, 0, len(in))
	for _, rec := range in {
		row, reason := c.coerceRecord(rec, source)
		if reason != "" {
			if c.Reject != nil {
				c.Reject(RejectedRow{Source: source, Raw: rec, Reason: reason})
			}
			continue
		}
		out = append(out, row)
	}
	return out
}

func (c Coercer) coerceRecord(rec records.Record, source string) (Row, string) {
	priceRaw, ok := rec.String(schema.ColPrice)
	if !ok {
		return Row{}, fmt.Sprintf("%s is empty", schema.ColPrice)
	}
	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return Row{}, fmt.Sprintf("%s: %q is not numeric", schema.ColPrice, priceRaw)
	}

	qtyRaw, ok := rec.String(schema.ColQuantity)
	if !ok {
		return Row{}, fmt.Sprintf("%s is empty", schema.ColQuantity)
	}
	qty, err := decimal.NewFromString(qtyRaw)
	if err != nil {
		return Row{}, fmt.Sprintf("%s: %q is not numeric", schema.ColQuantity, qtyRaw)
	}

	dateRaw, ok := rec.String(schema.ColDate)
	if !ok {
		return Row{}, fmt.Sprintf("%s is empty", schema.ColDate)
	}
	date, parsed := c.parseDate(dateRaw)
	if !parsed {
		return Row{}, fmt.Sprintf("%s: invalid date %q", schema.ColDate, dateRaw)
	}

	// The product column is guaranteed present by schema validation; an
	// empty cell stays an empty product name rather than dropping the row.
	product, _ := rec.String(schema.ColProduct)

	row := Row{
		Date:     date,
		Product:  product,
		Price:    price,
		Quantity: qty,
		Source:   source,
	}
	for k, v := range rec {
		switch k {
		case schema.ColDate, schema.ColProduct, schema.ColPrice, schema.ColQuantity:
			continue
		}
		if row.Extra == nil {
			row.Extra = make(map[string]string)
		}
		row.Extra[k] = records.Stringify(v)
	}
	return row, ""
}

// parseDate tries each configured layout in order and truncates the result
// to a calendar date in UTC, since aggregation groups by day.
func (c Coercer) parseDate(s string) (time.Time, bool) {
	for _, layout := range c.Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
