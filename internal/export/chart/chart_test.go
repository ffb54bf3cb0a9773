package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/internal/report"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func day(d int) time.Time {
	return time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC)
}

func TestWriteDailyLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.png")
	daily := []report.DailyTotal{
		{Date: day(1), Sales: decimal.RequireFromString("200")},
		{Date: day(2), Sales: decimal.RequireFromString("100")},
		{Date: day(5), Sales: decimal.RequireFromString("350.50")},
	}

	written, err := WriteDailyLine(path, daily)
	require.NoError(t, err)
	assert.True(t, written)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic), "not a PNG file")
}

// A run with a single distinct date still charts; the x axis is widened so
// the renderer has a nonzero range.
func TestWriteDailyLineSinglePoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.png")
	daily := []report.DailyTotal{{Date: day(1), Sales: decimal.RequireFromString("42")}}

	written, err := WriteDailyLine(path, daily)
	require.NoError(t, err)
	assert.True(t, written)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestWriteTopBar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.png")
	top := []report.ProductTotal{
		{Product: "Apple", Sales: decimal.RequireFromString("300")},
		{Product: "Banana", Sales: decimal.RequireFromString("150")},
	}

	written, err := WriteTopBar(path, top)
	require.NoError(t, err)
	assert.True(t, written)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

// Empty aggregates skip the file instead of erroring: no partial artifacts,
// no renderer panics on zero series.
func TestWriteEmptySkipsFile(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteDailyLine(filepath.Join(dir, "daily.png"), nil)
	require.NoError(t, err)
	assert.False(t, written)

	written, err = WriteTopBar(filepath.Join(dir, "top.png"), nil)
	require.NoError(t, err)
	assert.False(t, written)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
