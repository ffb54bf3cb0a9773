package report

import "github.com/shopspring/decimal"

// moneyPlaces is the rounding scale for monetary values.
const moneyPlaces = 2

// UseTax reports whether the tax-adjusted sales column drives aggregation
// for a run with the given tax rate. The choice is made once per run, never
// per row.
func UseTax(taxRate decimal.Decimal) bool {
	return !taxRate.IsZero()
}

// ComputeSales fills the Sales fields of every row in place and returns the
// dataset: Sales = round(Price*Quantity, 2), and when taxRate is nonzero,
// SalesWithTax = round(Sales*(1+taxRate), 2). Rounding is RoundBank
// (half-to-even); see the package comment.
func ComputeSales(ds Dataset, taxRate decimal.Decimal) Dataset {
	withTax := UseTax(taxRate)
	factor := decimal.NewFromInt(1).Add(taxRate)

	for i := range ds {
		ds[i].Sales = ds[i].Price.Mul(ds[i].Quantity).RoundBank(moneyPlaces)
		if withTax {
			ds[i].SalesWithTax = ds[i].Sales.Mul(factor).RoundBank(moneyPlaces)
			ds[i].HasTax = true
		}
	}
	return ds
}
