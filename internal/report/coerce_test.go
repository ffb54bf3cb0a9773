package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/internal/config"
	"salesreport/pkg/records"
)

func testCoercer(reject func(RejectedRow)) Coercer {
	return Coercer{Layouts: config.DefaultDateLayouts, Reject: reject}
}

// A row that fails any of the three coercions is dropped; the rest of the
// table is unaffected, and survivors come out fully typed with the source
// tag applied.
func TestCoerceDropsBadRowsOnly(t *testing.T) {
	var rejects []RejectedRow
	c := testCoercer(func(r RejectedRow) { rejects = append(rejects, r) })

	in := []records.Record{
		{"date": "2026-02-01", "product": "Apple", "price": "100", "quantity": "2"},
		{"date": "2026-02-01", "product": "Banana", "price": "50", "quantity": "bad"},
		{"date": "not-a-date", "product": "Cherry", "price": "10", "quantity": "1"},
		{"date": "2026-02-02", "product": "Durian", "price": "abc", "quantity": "1"},
		{"date": "2026-02-03", "product": "Elderberry", "price": "7.50", "quantity": "4"},
	}

	out := c.Coerce(in, "sales.csv")

	require.Len(t, out, 2)
	assert.Equal(t, "Apple", out[0].Product)
	assert.Equal(t, "Elderberry", out[1].Product)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), out[0].Date)
	assert.Equal(t, "100", out[0].Price.String())
	assert.Equal(t, "2", out[0].Quantity.String())
	for _, row := range out {
		assert.Equal(t, "sales.csv", row.Source)
	}

	require.Len(t, rejects, 3)
	for _, r := range rejects {
		assert.Equal(t, "sales.csv", r.Source)
		assert.NotEmpty(t, r.Reason)
	}
}

// Empty and nil cells for price/quantity/date are coercion failures, not
// panics or zero values.
func TestCoerceEmptyCells(t *testing.T) {
	c := testCoercer(nil)

	in := []records.Record{
		{"date": "2026-02-01", "product": "Apple", "price": nil, "quantity": "2"},
		{"date": "2026-02-01", "product": "Apple", "price": "100", "quantity": nil},
		{"date": nil, "product": "Apple", "price": "100", "quantity": "2"},
	}
	assert.Empty(t, c.Coerce(in, "a.csv"))
}

// An all-bad table coerces to an empty slice. That is a valid result and
// must not error.
func TestCoerceAllBadIsEmptyNotError(t *testing.T) {
	c := testCoercer(nil)
	in := []records.Record{
		{"date": "??", "product": "X", "price": "1", "quantity": "1"},
		{"date": "2026-01-01", "product": "X", "price": "one", "quantity": "1"},
	}
	out := c.Coerce(in, "junk.csv")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

// Columns outside the contract pass through into Extra verbatim; an empty
// product cell keeps the row with an empty product name.
func TestCoercePassthroughAndEmptyProduct(t *testing.T) {
	c := testCoercer(nil)

	in := []records.Record{
		{"date": "2026-02-01", "product": "Apple", "price": "1", "quantity": "1", "region": "west", "note": "rush"},
		{"date": "2026-02-01", "product": nil, "price": "1", "quantity": "1"},
	}
	out := c.Coerce(in, "a.csv")

	require.Len(t, out, 2)
	assert.Equal(t, map[string]string{"region": "west", "note": "rush"}, out[0].Extra)
	assert.Nil(t, out[1].Extra)
	assert.Equal(t, "", out[1].Product)
}

// Each layout of the ladder is accepted and everything normalizes to a
// date-only UTC timestamp.
func TestCoerceDateLayouts(t *testing.T) {
	c := testCoercer(nil)

	for _, raw := range []string{"2026-02-01", "2026/02/01", "01.02.2026", "2026-02-01T10:30:00Z"} {
		in := []records.Record{{"date": raw, "product": "A", "price": "1", "quantity": "1"}}
		out := c.Coerce(in, "a.csv")
		require.Len(t, out, 1, "layout input %q", raw)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), out[0].Date, "layout input %q", raw)
	}
}
