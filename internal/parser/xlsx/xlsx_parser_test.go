package xlsx

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParse(t *testing.T) {
	r := workbook(t, [][]any{
		{"date", "product", "price", "quantity"},
		{"2026-02-01", "Apple", "100", "2"},
		{"2026-02-02", "Banana", "50", "1"},
	})

	p := &Parser{TrimSpace: true}
	table, err := p.Parse("sales.xlsx", r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(table.Headers) != 4 || table.Headers[0] != "date" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if got, _ := table.Rows[0].String("product"); got != "Apple" {
		t.Errorf("product = %q", got)
	}
	if table.Source != "sales.xlsx" {
		t.Errorf("source = %q", table.Source)
	}
}

// Trailing empty cells are truncated by the sheet reader; short rows are
// padded back to the header width with nil cells rather than skipped.
func TestParsePadsShortRows(t *testing.T) {
	r := workbook(t, [][]any{
		{"date", "product", "price", "quantity"},
		{"2026-02-01", "Apple"},
	})

	p := &Parser{}
	table, err := p.Parse("sales.xlsx", r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(table.Rows) != 1 || table.Skipped != 0 {
		t.Fatalf("rows=%d skipped=%d", len(table.Rows), table.Skipped)
	}
	if v := table.Rows[0]["price"]; v != nil {
		t.Errorf("padded cell = %#v, want nil", v)
	}
}

func TestParseNotAWorkbook(t *testing.T) {
	p := &Parser{}
	if _, err := p.Parse("bad.xlsx", bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Fatal("expected error for non-workbook input")
	}
}

func TestParseEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	p := &Parser{}
	if _, err := p.Parse("empty.xlsx", bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected error for empty sheet")
	}
}
