// Package builtin contains simple, reusable transformers used by the
// report pipeline.
package builtin

import (
	"strings"

	"salesreport/pkg/records"
)

// Normalize scrubs string cells in place: surrounding whitespace is trimmed
// and the mangled non-breaking-space artifact ("Â ") that spreadsheet CSV
// exports produce is replaced with a plain space.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			if s, ok := v.(string); ok {
				s = strings.TrimSpace(strings.ReplaceAll(s, "Â ", " "))
				if s == "" {
					r[k] = nil
				} else {
					r[k] = s
				}
			}
		}
	}
	return in
}
