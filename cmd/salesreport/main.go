// Command salesreport turns a folder of raw sales files into a timestamped
// report directory: merged dataset, daily and per-product summaries, a
// top-N ranking, charts, a summary workbook, and a run manifest.
//
// The operator workflow is deliberately minimal: drop .csv/.xlsx files into
// the input directory and run the command.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salesreport/internal/config"
	"salesreport/internal/metrics"
	"salesreport/internal/metrics/datadog"
	"salesreport/internal/metrics/prompush"
)

func main() {
	var (
		cfgPath           string
		inputDir          string
		outputDir         string
		topN              int
		taxRate           float64
		charts            bool
		metricsBackendFlg string
		pushGatewayURLFlg string
		datadogAddrFlg    string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "", "optional report config JSON path (flags override file values)")
	flag.StringVar(&inputDir, "input-dir", config.DefaultInputDir, "directory containing input .csv/.xlsx files")
	flag.StringVar(&outputDir, "output-dir", config.DefaultOutputDir, "directory for per-run report directories")
	flag.IntVar(&topN, "top", config.DefaultTopN, "number of products in the top ranking")
	flag.Float64Var(&taxRate, "tax-rate", 0, "flat tax rate (0.0 = tax-exclusive)")
	flag.BoolVar(&charts, "charts", true, "render PNG charts alongside the CSV artifacts")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (none, pushgateway, datadog)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&datadogAddrFlg, "datadog-addr", "", "DogStatsD address (overrides env DD_AGENT_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
	}

	// Explicit flags win over config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input-dir":
			cfg.InputDir = inputDir
		case "output-dir":
			cfg.OutputDir = outputDir
		case "top":
			cfg.TopN = topN
		case "tax-rate":
			cfg.TaxRate = taxRate
		case "charts":
			cfg.Charts = charts
		}
	})

	// Validate the effective configuration.
	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasError(issues) {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			if *verbose {
				log.Printf("metrics: backend=%s url=%s", backendName, gwURL)
			}
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "datadog":
		addr := datadogAddrFlg
		if addr == "" {
			addr = os.Getenv("DD_AGENT_ADDR")
		}
		if addr == "" {
			addr = "127.0.0.1:8125"
		}

		b, err := datadog.NewBackend(datadog.Config{Addr: addr, Namespace: job + "."})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			if *verbose {
				log.Printf("metrics: backend=%s addr=%s", backendName, addr)
			}
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	start := time.Now()

	runDir, err := run(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}

	fmt.Println("Report complete.")
	fmt.Println("Output:", runDir)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
