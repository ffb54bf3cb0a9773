package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotal is the summed active sales for one calendar date.
type DailyTotal struct {
	Date  time.Time
	Sales decimal.Decimal
}

// ProductTotal is the summed active sales for one product.
type ProductTotal struct {
	Product string
	Sales   decimal.Decimal
}

// Summarize groups the dataset by date and by product over the active sales
// column and returns:
//
//   - daily totals, ascending by date, one entry per distinct date;
//   - product totals, descending by summed amount, with equal sums kept in
//     the order the product was first seen in the dataset (stable sort over
//     first-seen order, so the result is deterministic);
//   - the top-N ranking: the first min(topN, len(products)) product totals.
//
// An empty dataset yields empty slices; that is a valid degenerate result,
// not an error. Negative topN is rejected at the configuration boundary and
// must not reach this function.
func Summarize(ds Dataset, topN int, useTax bool) (daily []DailyTotal, products []ProductTotal, top []ProductTotal) {
	daily = summarizeDaily(ds, useTax)
	products = summarizeProducts(ds, useTax)

	n := topN
	if n > len(products) {
		n = len(products)
	}
	if n < 0 {
		n = 0
	}
	top = products[:n]
	return daily, products, top
}

func summarizeDaily(ds Dataset, useTax bool) []DailyTotal {
	sums := make(map[time.Time]decimal.Decimal)
	for _, r := range ds {
		sums[r.Date] = sums[r.Date].Add(r.ActiveSales(useTax))
	}

	out := make([]DailyTotal, 0, len(sums))
	for d, s := range sums {
		out = append(out, DailyTotal{Date: d, Sales: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func summarizeProducts(ds Dataset, useTax bool) []ProductTotal {
	// Accumulate in first-seen order so the later stable sort breaks ties
	// deterministically by first appearance.
	idx := make(map[string]int)
	out := make([]ProductTotal, 0)
	for _, r := range ds {
		i, seen := idx[r.Product]
		if !seen {
			i = len(out)
			idx[r.Product] = i
			out = append(out, ProductTotal{Product: r.Product})
		}
		out[i].Sales = out[i].Sales.Add(r.ActiveSales(useTax))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sales.GreaterThan(out[j].Sales)
	})
	return out
}
