// Package transformer defines the record-level transformation step applied
// between parsing and coercion.
package transformer

import "salesreport/pkg/records"

// Transformer rewrites or filters a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	if len(c) == 0 {
		return in
	}

	out := in
	for _, t := range c {
		if t == nil {
			continue
		}
		out = t.Apply(out)
	}
	return out
}
