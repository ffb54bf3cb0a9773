// Package config defines the canonical, JSON-serializable configuration
// model for the sales report pipeline. It is intentionally small, explicit,
// and dependency-free so a run can be described by a flat file (or entirely
// by flags) and passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in config
//     files.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default directory names mirror the operator workflow: drop files into
// ./input, collect run directories from ./output.
const (
	DefaultInputDir  = "input"
	DefaultOutputDir = "output"
	DefaultTopN      = 5
)

// DefaultDateLayouts is the ordered ladder of accepted date layouts.
// ISO comes first; the remaining layouts cover the spreadsheet exports
// this pipeline historically had to ingest.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02T15:04:05Z07:00",
}

// Config describes one report run. It is passed by value into the pipeline
// entry point; there is no process-wide mutable configuration state.
type Config struct {
	// InputDir is the directory scanned for .csv and .xlsx input files.
	InputDir string `json:"input_dir"`

	// OutputDir is the directory under which the timestamped run directory
	// is created.
	OutputDir string `json:"output_dir"`

	// TopN is the number of entries in the top-products ranking. Zero yields
	// an empty ranking; negative values are a configuration error.
	TopN int `json:"top_n"`

	// TaxRate is the flat tax multiplier applied to sales. When nonzero, the
	// tax-adjusted sales column drives all aggregation for the run.
	TaxRate float64 `json:"tax_rate"`

	// Delimiter is the CSV field delimiter as a one-rune string. Empty means
	// comma.
	Delimiter string `json:"delimiter,omitempty"`

	// DateLayouts overrides the accepted date layouts. Empty means
	// DefaultDateLayouts.
	DateLayouts []string `json:"date_layouts,omitempty"`

	// Charts controls whether PNG charts are rendered alongside the CSV and
	// XLSX artifacts.
	Charts bool `json:"charts"`
}

// Default returns the configuration used when no config file or flags are
// provided: tax-exclusive, top 5, charts on.
func Default() Config {
	return Config{
		InputDir:  DefaultInputDir,
		OutputDir: DefaultOutputDir,
		TopN:      DefaultTopN,
		TaxRate:   0,
		Charts:    true,
	}
}

// Load reads a JSON config file on top of Default. Keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Layouts returns the effective date layout ladder for this config.
func (c Config) Layouts() []string {
	if len(c.DateLayouts) > 0 {
		return c.DateLayouts
	}
	return DefaultDateLayouts
}

// Comma returns the effective CSV delimiter rune.
func (c Config) Comma() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}
