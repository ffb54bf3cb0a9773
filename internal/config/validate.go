// This file adds a lightweight linter/validator for Config values. It
// performs static checks over a decoded Config and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users
	// but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "top_n"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config.
//
// It does not mutate the config. Callers decide whether warnings are fatal;
// the CLI treats only SeverityError findings as blocking.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.InputDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input_dir",
			Message:  "input_dir must not be empty",
		})
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output_dir",
			Message:  "output_dir must not be empty",
		})
	}

	if c.TopN < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "top_n",
			Message:  fmt.Sprintf("top_n=%d; the ranking size must not be negative", c.TopN),
		})
	} else if c.TopN == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "top_n",
			Message:  "top_n=0; the top-products ranking will be empty",
		})
	}

	if c.TaxRate < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "tax_rate",
			Message:  fmt.Sprintf("tax_rate=%v; tax rates must not be negative", c.TaxRate),
		})
	} else if c.TaxRate >= 1 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "tax_rate",
			Message:  fmt.Sprintf("tax_rate=%v; rates are fractions (0.10 = 10%%), double-check this value", c.TaxRate),
		})
	}

	if c.Delimiter != "" && utf8.RuneCountInString(c.Delimiter) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "delimiter",
			Message:  fmt.Sprintf("delimiter %q must be a single character", c.Delimiter),
		})
	}

	for i, layout := range c.DateLayouts {
		if strings.TrimSpace(layout) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("date_layouts[%d]", i),
				Message:  "date layout must not be empty",
			})
		}
	}

	return issues
}

// HasError reports whether any issue in the list is SeverityError.
func HasError(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
