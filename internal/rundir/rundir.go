// Package rundir allocates the per-run output directory and records the run
// manifest: what was read, what was dropped, and what was written.
package rundir

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/xxh3"
)

// stamp is the run directory timestamp format, e.g. report_20260830_143005.
const stamp = "20060102_150405"

// Make creates a fresh run directory under outputDir, named after now. If
// the name already exists (two runs within a second), a _2, _3, ... suffix
// is appended until a fresh directory is created.
func Make(outputDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	base := filepath.Join(outputDir, "report_"+now.Format(stamp))
	name := base
	for i := 2; ; i++ {
		err := os.Mkdir(name, 0o755)
		if err == nil {
			return name, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("create run dir: %w", err)
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}

// InputRecord describes one consumed input file.
type InputRecord struct {
	File    string `json:"file"`
	Bytes   int64  `json:"bytes"`
	Digest  string `json:"xxh3,omitempty"`
	Parsed  int    `json:"parsed"`  // rows read from the file
	Skipped int    `json:"skipped"` // rows the parser could not read
	Kept    int    `json:"kept"`    // rows surviving coercion
	Dropped int    `json:"dropped"` // rows dropped by coercion
}

// Manifest is written as manifest.json at the end of a successful run. It
// is the run's audit record: inputs with content digests and row counts,
// run settings, and the artifacts produced.
type Manifest struct {
	CreatedAt time.Time     `json:"created_at"`
	TopN      int           `json:"top_n"`
	TaxRate   float64       `json:"tax_rate"`
	Inputs    []InputRecord `json:"inputs"`
	Artifacts []string      `json:"artifacts"`
}

// Digest returns the xxh3 hex digest of the file's contents, used to make
// the manifest's input list verifiable after the fact.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Write serializes the manifest into dir as manifest.json.
func (m Manifest) Write(dir string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
