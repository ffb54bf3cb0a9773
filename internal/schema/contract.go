// Package schema defines the sales table contract and the schema-level
// validation applied to every input table before any row is processed.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Field describes one column of the sales contract.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "text" | "real" | "date"
	Required bool   `json:"required,omitempty"`
}

// Contract is the fixed schema every input table must satisfy. Extra columns
// beyond the contract are allowed and passed through untouched.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Required column names, exact and case-sensitive.
const (
	ColDate     = "date"
	ColProduct  = "product"
	ColPrice    = "price"
	ColQuantity = "quantity"
)

// Sales returns the contract for sales input tables.
func Sales() Contract {
	return Contract{
		Name: "sales",
		Fields: []Field{
			{Name: ColDate, Type: "date", Required: true},
			{Name: ColProduct, Type: "text", Required: true},
			{Name: ColPrice, Type: "real", Required: true},
			{Name: ColQuantity, Type: "real", Required: true},
		},
	}
}

// RequiredColumns returns the names of the contract's required fields in
// declaration order.
func (c Contract) RequiredColumns() []string {
	out := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// exampleRow is included in schema errors so a non-technical operator can
// fix a broken file without support.
const exampleRow = "date,product,price,quantity\n2026-02-01,Apple,100,2"

// Error reports required columns missing from one input table. It carries
// everything the operator needs: the offending file, the exact missing set,
// the full required list, and the columns actually present.
type Error struct {
	Source   string   // base name of the offending file
	Missing  []string // sorted missing required columns
	Required []string // full required column list
	Actual   []string // columns observed in the table, input order
}

func (e *Error) Error() string {
	return fmt.Sprintf(
		"%s: missing required column(s) %s (required: %s; found: %s). Example of a valid file:\n%s",
		e.Source,
		strings.Join(e.Missing, ", "),
		strings.Join(e.Required, ", "),
		strings.Join(e.Actual, ", "),
		exampleRow,
	)
}

// ValidateColumns checks the table's observed header set against the
// contract. It is a pure, schema-level check performed once per table: if
// every required column is present, every row of the table passes
// validation regardless of cell content (garbage cells are the coercer's
// concern). Returns *Error naming the exact missing set otherwise.
func (c Contract) ValidateColumns(source string, headers []string) error {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	var missing []string
	for _, f := range c.Fields {
		if !f.Required {
			continue
		}
		if _, ok := present[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	return &Error{
		Source:   source,
		Missing:  missing,
		Required: c.RequiredColumns(),
		Actual:   append([]string(nil), headers...),
	}
}
