package config

import (
	"strings"
	"testing"
)

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, iss := range issues {
		if iss.Path == path {
			return iss, true
		}
	}
	return Issue{}, false
}

func TestValidateDefaultIsClean(t *testing.T) {
	if issues := Validate(Default()); len(issues) != 0 {
		t.Errorf("default config should validate clean, got %v", issues)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		path string
	}{
		{"empty input dir", Config{OutputDir: "out", TopN: 5}, "input_dir"},
		{"empty output dir", Config{InputDir: "in", TopN: 5}, "output_dir"},
		{"negative top_n", Config{InputDir: "in", OutputDir: "out", TopN: -1}, "top_n"},
		{"negative tax rate", Config{InputDir: "in", OutputDir: "out", TopN: 5, TaxRate: -0.1}, "tax_rate"},
		{"multi-rune delimiter", Config{InputDir: "in", OutputDir: "out", TopN: 5, Delimiter: ";;"}, "delimiter"},
		{"empty date layout", Config{InputDir: "in", OutputDir: "out", TopN: 5, DateLayouts: []string{"2006-01-02", " "}}, "date_layouts[1]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := Validate(tc.cfg)
			iss, ok := findIssue(issues, tc.path)
			if !ok {
				t.Fatalf("no issue at %s, got %v", tc.path, issues)
			}
			if iss.Severity != SeverityError {
				t.Errorf("severity = %s, want error", iss.Severity)
			}
			if !HasError(issues) {
				t.Error("HasError should be true")
			}
		})
	}
}

// Warnings surface suspicious but legal values and never block a run.
func TestValidateWarnings(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		path string
	}{
		{"zero top_n", Config{InputDir: "in", OutputDir: "out", TopN: 0}, "top_n"},
		{"tax rate looks like percent", Config{InputDir: "in", OutputDir: "out", TopN: 5, TaxRate: 10}, "tax_rate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := Validate(tc.cfg)
			iss, ok := findIssue(issues, tc.path)
			if !ok {
				t.Fatalf("no issue at %s, got %v", tc.path, issues)
			}
			if iss.Severity != SeverityWarning {
				t.Errorf("severity = %s, want warning", iss.Severity)
			}
			if HasError(issues) {
				t.Errorf("warnings must not block: %v", issues)
			}
		})
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "top_n", Message: "must not be negative"}
	got := iss.Error()
	for _, want := range []string{"error", "top_n", "must not be negative"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, missing %q", got, want)
		}
	}
}
