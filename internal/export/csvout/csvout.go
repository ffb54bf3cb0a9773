// Package csvout writes the run's flat CSV artifacts: the merged dataset
// and the three summaries. Every writer emits the header row even when
// there is no data, so a degenerate run still produces well-formed files.
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"salesreport/internal/report"
)

// dateLayout is the calendar-date format used in all CSV artifacts.
const dateLayout = "2006-01-02"

// WriteDataset writes the full merged dataset. Columns follow the row's
// field order: the contract columns, the computed sales column(s), the
// source tag, then any pass-through extra columns in sorted header order.
// The sales_with_tax column is present iff the run's tax rate was nonzero.
func WriteDataset(path string, ds report.Dataset, withTax bool) error {
	extras := extraColumns(ds)

	header := []string{"date", "product", "price", "quantity", "sales"}
	if withTax {
		header = append(header, "sales_with_tax")
	}
	header = append(header, "source")
	header = append(header, extras...)

	rows := make([][]string, 0, len(ds))
	for _, r := range ds {
		row := []string{
			r.Date.Format(dateLayout),
			r.Product,
			r.Price.String(),
			r.Quantity.String(),
			r.Sales.StringFixed(2),
		}
		if withTax {
			row = append(row, r.SalesWithTax.StringFixed(2))
		}
		row = append(row, r.Source)
		for _, k := range extras {
			row = append(row, r.Extra[k])
		}
		rows = append(rows, row)
	}

	return writeFile(path, header, rows)
}

// WriteDaily writes one row per distinct date, ascending.
func WriteDaily(path string, daily []report.DailyTotal) error {
	rows := make([][]string, 0, len(daily))
	for _, d := range daily {
		rows = append(rows, []string{d.Date.Format(dateLayout), d.Sales.StringFixed(2)})
	}
	return writeFile(path, []string{"date", "sales"}, rows)
}

// WriteProducts writes one row per product in the given order. It is used
// for both the full product summary and the top-N ranking, which is a
// prefix of it.
func WriteProducts(path string, products []report.ProductTotal) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.Product, p.Sales.StringFixed(2)})
	}
	return writeFile(path, []string{"product", "sales"}, rows)
}

// extraColumns returns the sorted union of pass-through column names across
// the dataset.
func extraColumns(ds report.Dataset) []string {
	set := make(map[string]struct{})
	for _, r := range ds {
		for k := range r.Extra {
			set[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func writeFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}
