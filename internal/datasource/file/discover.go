package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoInputFiles is returned by Discover when the input directory contains
// no usable files. It aborts the run before any processing starts.
var ErrNoInputFiles = errors.New("no input files found")

// Kind identifies how a discovered input should be parsed.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindXLSX Kind = "xlsx"
)

// Input is one discovered source file.
type Input struct {
	Path string
	Name string // base name, used as the row source tag
	Kind Kind
}

// Discover lists the .csv and .xlsx files directly inside dir, in lexical
// order by base name so runs are deterministic regardless of readdir order.
// Subdirectories are not walked: the operator contract is a flat drop
// folder.
//
// Zero matches is an error: per the pipeline contract, "no input" is
// surfaced here at the discovery boundary, never downstream.
func Discover(dir string) ([]Input, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var inputs []Input
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		var kind Kind
		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv":
			kind = KindCSV
		case ".xlsx":
			kind = KindXLSX
		default:
			continue
		}
		inputs = append(inputs, Input{
			Path: filepath.Join(dir, name),
			Name: name,
			Kind: kind,
		})
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: place .csv or .xlsx files in %s", ErrNoInputFiles, dir)
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Name < inputs[j].Name })
	return inputs, nil
}
