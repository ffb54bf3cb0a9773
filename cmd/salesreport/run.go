package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"salesreport/internal/config"
	"salesreport/internal/datasource/file"
	"salesreport/internal/export/chart"
	"salesreport/internal/export/csvout"
	"salesreport/internal/export/xlsxout"
	"salesreport/internal/metrics"
	parsercsv "salesreport/internal/parser/csv"
	"salesreport/internal/parser/xlsx"
	"salesreport/internal/report"
	"salesreport/internal/rundir"
	"salesreport/internal/schema"
	"salesreport/internal/transformer"
	"salesreport/internal/transformer/builtin"
)

// job labels every metric emitted by this binary.
const job = "salesreport"

// fileResult carries one input through the per-file pipeline slice:
// parse → schema validation → normalize → coerce.
type fileResult struct {
	input file.Input
	table *parsercsv.Table
	rows  []report.Row
}

// run executes one report over cfg and returns the run directory path.
//
// Fatal conditions (no input files, a table missing required columns) abort
// before the run directory is created, so a failed run writes nothing.
// Row-level coercion failures are counted and logged, never fatal.
func run(cfg config.Config, verbose bool) (string, error) {
	ctx := context.Background()

	// Discover inputs. Zero files aborts here, before any processing.
	stepStart := time.Now()
	inputs, err := file.Discover(cfg.InputDir)
	metrics.RecordStep(job, "discover", err, time.Since(stepStart))
	if err != nil {
		return "", err
	}
	if verbose {
		log.Printf("found %d input file(s) in %s", len(inputs), cfg.InputDir)
	}

	// Parse every table and validate its schema before touching any rows:
	// a schema error must abort the whole run with nothing written.
	contract := schema.Sales()
	results := make([]*fileResult, 0, len(inputs))

	stepStart = time.Now()
	for _, in := range inputs {
		t, err := parseInput(ctx, in, cfg)
		if err != nil {
			metrics.RecordStep(job, "parse", err, time.Since(stepStart))
			return "", err
		}
		if err := contract.ValidateColumns(in.Name, t.Headers); err != nil {
			metrics.RecordStep(job, "parse", err, time.Since(stepStart))
			return "", err
		}
		metrics.RecordRow(job, "parsed", int64(len(t.Rows)))
		metrics.RecordRow(job, "skipped", int64(t.Skipped))
		results = append(results, &fileResult{input: in, table: t})
	}
	metrics.RecordStep(job, "parse", nil, time.Since(stepStart))

	// Normalize and coerce per file. Bad rows are dropped, counted, and
	// (verbosely) logged; they never abort the file.
	chain := transformer.Chain{builtin.Normalize{}}
	var dropped int64
	coercer := report.Coercer{
		Layouts: cfg.Layouts(),
		Reject: func(r report.RejectedRow) {
			dropped++
			if verbose {
				log.Printf("%s: dropping row: %s", r.Source, r.Reason)
			}
		},
	}

	stepStart = time.Now()
	perFile := make([][]report.Row, 0, len(results))
	for _, res := range results {
		recs := chain.Apply(res.table.Rows)
		res.rows = coercer.Coerce(recs, res.input.Name)
		perFile = append(perFile, res.rows)
	}
	metrics.RecordStep(job, "coerce", nil, time.Since(stepStart))
	metrics.RecordRow(job, "coerce_dropped", dropped)

	// Merge, compute sales, aggregate.
	stepStart = time.Now()
	taxRate := decimal.NewFromFloat(cfg.TaxRate)
	useTax := report.UseTax(taxRate)

	ds := report.Merge(perFile)
	ds = report.ComputeSales(ds, taxRate)
	daily, products, top := report.Summarize(ds, cfg.TopN, useTax)
	metrics.RecordStep(job, "summarize", nil, time.Since(stepStart))
	metrics.RecordRow(job, "merged", int64(len(ds)))

	if len(ds) == 0 {
		log.Printf("warning: no rows survived coercion; the report will be empty")
	}

	// Only now allocate the run directory and write artifacts.
	runDir, err := rundir.Make(cfg.OutputDir, time.Now())
	if err != nil {
		return "", err
	}

	stepStart = time.Now()
	artifacts, err := export(runDir, cfg, ds, daily, products, top, useTax)
	metrics.RecordStep(job, "export", err, time.Since(stepStart))
	if err != nil {
		return "", err
	}
	metrics.RecordRow(job, "exported", int64(len(ds)))

	manifest := rundir.Manifest{
		CreatedAt: time.Now(),
		TopN:      cfg.TopN,
		TaxRate:   cfg.TaxRate,
		Artifacts: artifacts,
	}
	for _, res := range results {
		manifest.Inputs = append(manifest.Inputs, inputRecord(res))
	}
	if err := manifest.Write(runDir); err != nil {
		return "", err
	}

	return runDir, nil
}

// parseInput opens and parses one discovered input according to its kind.
func parseInput(ctx context.Context, in file.Input, cfg config.Config) (*parsercsv.Table, error) {
	rc, err := file.NewLocal(in.Path).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	switch in.Kind {
	case file.KindXLSX:
		p := &xlsx.Parser{TrimSpace: true}
		return p.Parse(in.Name, rc)
	default:
		p := parsercsv.NewParser(parsercsv.Options{Comma: cfg.Comma(), TrimSpace: true})
		return p.Parse(in.Name, rc)
	}
}

// export writes every artifact of the run and returns their base names.
func export(runDir string, cfg config.Config, ds report.Dataset, daily []report.DailyTotal, products, top []report.ProductTotal, useTax bool) ([]string, error) {
	var artifacts []string
	add := func(name string) { artifacts = append(artifacts, name) }

	if err := csvout.WriteDataset(filepath.Join(runDir, "merged_sales.csv"), ds, useTax); err != nil {
		return nil, err
	}
	add("merged_sales.csv")

	if err := csvout.WriteDaily(filepath.Join(runDir, "daily_sales.csv"), daily); err != nil {
		return nil, err
	}
	add("daily_sales.csv")

	if err := csvout.WriteProducts(filepath.Join(runDir, "product_sales.csv"), products); err != nil {
		return nil, err
	}
	add("product_sales.csv")

	if err := csvout.WriteProducts(filepath.Join(runDir, "top_products.csv"), top); err != nil {
		return nil, err
	}
	add("top_products.csv")

	if err := xlsxout.WriteSummary(filepath.Join(runDir, "summary.xlsx"), daily, products, top); err != nil {
		return nil, err
	}
	add("summary.xlsx")

	if cfg.Charts {
		written, err := chart.WriteDailyLine(filepath.Join(runDir, "daily_sales.png"), daily)
		if err != nil {
			return nil, err
		}
		if written {
			add("daily_sales.png")
		}

		written, err = chart.WriteTopBar(filepath.Join(runDir, "top_products.png"), top)
		if err != nil {
			return nil, err
		}
		if written {
			add("top_products.png")
		}
	}

	return artifacts, nil
}

// inputRecord builds the manifest entry for one consumed input, including
// its content digest for after-the-fact verification.
func inputRecord(res *fileResult) rundir.InputRecord {
	rec := rundir.InputRecord{
		File:    res.input.Name,
		Parsed:  len(res.table.Rows),
		Skipped: res.table.Skipped,
		Kept:    len(res.rows),
		Dropped: len(res.table.Rows) - len(res.rows),
	}
	if info, err := os.Stat(res.input.Path); err == nil {
		rec.Bytes = info.Size()
	}
	if digest, err := rundir.Digest(res.input.Path); err == nil {
		rec.Digest = digest
	} else {
		log.Printf("%s: digest failed: %v", res.input.Name, err)
	}
	return rec
}
