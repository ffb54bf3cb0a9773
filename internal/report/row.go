// Package report implements the core of the sales pipeline: coercing raw
// records into typed rows, merging per-file results, computing per-row
// sales amounts, and aggregating daily and per-product totals.
//
// Monetary values are shopspring decimals end to end so that summed
// aggregates are exact and invariant to input file order. Rounding is
// round-half-to-even (banker's rounding, decimal.RoundBank) at two decimal
// places for every monetary value; this is the single rounding rule of the
// whole program.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one successfully coerced sales record. Coercion either yields a
// fully typed Row or drops the input record; there is no partially typed
// state.
type Row struct {
	Date     time.Time
	Product  string
	Price    decimal.Decimal
	Quantity decimal.Decimal

	// Sales is round(Price * Quantity, 2). SalesWithTax is present (HasTax)
	// only when the run's tax rate is nonzero.
	Sales        decimal.Decimal
	SalesWithTax decimal.Decimal
	HasTax       bool

	// Source is the base name of the originating input file.
	Source string

	// Extra holds pass-through values of columns outside the contract,
	// keyed by their verbatim header names. Nil when the table had none.
	Extra map[string]string
}

// ActiveSales returns the sales column driving aggregation for this run:
// the tax-adjusted amount when useTax is set, the plain amount otherwise.
func (r Row) ActiveSales(useTax bool) decimal.Decimal {
	if useTax {
		return r.SalesWithTax
	}
	return r.Sales
}

// Dataset is the merged, ordered sequence of all rows across all input
// sources. It is built once per run and not mutated afterwards except by
// ComputeSales, which fills the Sales fields in place.
type Dataset []Row
