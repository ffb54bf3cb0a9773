package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Discover lists only .csv and .xlsx files, sorted by name, and ignores
// everything else in the drop folder.
func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b_sales.csv")
	touch(t, dir, "a_sales.XLSX")
	touch(t, dir, "readme.txt")
	touch(t, dir, ".hidden.csv.bak")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "nested"), "ignored.csv")

	inputs, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(inputs) != 2 {
		t.Fatalf("inputs = %d, want 2: %+v", len(inputs), inputs)
	}
	if inputs[0].Name != "a_sales.XLSX" || inputs[0].Kind != KindXLSX {
		t.Errorf("inputs[0] = %+v", inputs[0])
	}
	if inputs[1].Name != "b_sales.csv" || inputs[1].Kind != KindCSV {
		t.Errorf("inputs[1] = %+v", inputs[1])
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.Is(err, ErrNoInputFiles) {
		t.Fatalf("err = %v, want ErrNoInputFiles", err)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func TestLocalOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte("date,product\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := NewLocal(path).Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "date,product\n" {
		t.Errorf("content = %q", b)
	}
}

func TestLocalOpenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLocal("whatever.csv").Open(ctx); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
