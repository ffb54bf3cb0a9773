// Package xlsxout writes the run's summary workbook: one sheet per
// aggregate, so operators who live in Excel get the same numbers as the
// CSV artifacts.
package xlsxout

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"salesreport/internal/report"
)

const dateLayout = "2006-01-02"

// WriteSummary writes summary.xlsx with Daily, Products, and Top sheets.
// Empty aggregates produce header-only sheets.
func WriteSummary(path string, daily []report.DailyTotal, products, top []report.ProductTotal) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeDailySheet(f, "Daily", daily); err != nil {
		return err
	}
	if err := writeProductSheet(f, "Products", products); err != nil {
		return err
	}
	if err := writeProductSheet(f, "Top", top); err != nil {
		return err
	}

	// Drop the default sheet excelize creates.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeDailySheet(f *excelize.File, name string, daily []report.DailyTotal) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &[]any{"date", "sales"}); err != nil {
		return fmt.Errorf("sheet %s header: %w", name, err)
	}
	for i, d := range daily {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{d.Date.Format(dateLayout), d.Sales.InexactFloat64()}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+2, err)
		}
	}
	return nil
}

func writeProductSheet(f *excelize.File, name string, products []report.ProductTotal) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %s: %w", name, err)
	}
	if err := f.SetSheetRow(name, "A1", &[]any{"product", "sales"}); err != nil {
		return fmt.Errorf("sheet %s header: %w", name, err)
	}
	for i, p := range products {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{p.Product, p.Sales.InexactFloat64()}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i+2, err)
		}
	}
	return nil
}
