// Package records defines the generic row representation shared by the
// parsers, transformers, and the report pipeline. A Record is one parsed
// table row keyed by column name; parsers fill values as strings, with nil
// marking an empty or absent cell.
package records

import (
	"fmt"
	"strconv"
	"time"
)

// Record is a single row of string-keyed cell values.
type Record map[string]any

// String returns the value for key rendered as a string. Missing keys and
// nil cells yield "" with ok=false.
func (r Record) String(key string) (string, bool) {
	v, exists := r[key]
	if !exists || v == nil {
		return "", false
	}
	return Stringify(v), true
}

// Stringify converts common cell types to their string form without the
// overhead of fmt.Sprint; uncommon types fall back to fmt.Sprint.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
