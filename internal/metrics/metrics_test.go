package metrics

import (
	"errors"
	"testing"
	"time"
)

// fakeBackend records every call so tests can assert on metric names,
// deltas, and labels.
type fakeBackend struct {
	counters   []call
	histograms []call
	flushed    int
}

type call struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.counters = append(f.counters, call{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.histograms = append(f.histograms, call{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.flushed++
	return nil
}

// install swaps in a fake backend and restores the previous one when the
// test finishes, since the backend is package-global.
func install(t *testing.T) *fakeBackend {
	t.Helper()
	prev := backend
	f := &fakeBackend{}
	SetBackend(f)
	t.Cleanup(func() { backend = prev })
	return f
}

func TestRecordStep(t *testing.T) {
	f := install(t)

	RecordStep("salesreport", "parse", nil, 250*time.Millisecond)

	if len(f.counters) != 1 {
		t.Fatalf("counters = %d, want 1", len(f.counters))
	}
	c := f.counters[0]
	if c.name != "report_step_total" || c.value != 1 {
		t.Errorf("counter = %+v", c)
	}
	if c.labels["step"] != "parse" || c.labels["status"] != "success" {
		t.Errorf("labels = %v", c.labels)
	}

	if len(f.histograms) != 1 {
		t.Fatalf("histograms = %d, want 1", len(f.histograms))
	}
	h := f.histograms[0]
	if h.name != "report_step_duration_seconds" || h.value != 0.25 {
		t.Errorf("histogram = %+v", h)
	}
}

func TestRecordStepFailure(t *testing.T) {
	f := install(t)

	RecordStep("salesreport", "export", errors.New("disk full"), time.Second)

	if got := f.counters[0].labels["status"]; got != "failure" {
		t.Errorf("status = %q, want failure", got)
	}
}

func TestRecordRow(t *testing.T) {
	f := install(t)

	RecordRow("salesreport", "parsed", 42)
	RecordRow("salesreport", "coerce_dropped", 0)  // no-op
	RecordRow("salesreport", "coerce_dropped", -3) // no-op

	if len(f.counters) != 1 {
		t.Fatalf("counters = %d, want 1 (zero/negative deltas dropped)", len(f.counters))
	}
	c := f.counters[0]
	if c.name != "report_rows_total" || c.value != 42 || c.labels["kind"] != "parsed" {
		t.Errorf("counter = %+v", c)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	f := install(t)

	SetBackend(nil)
	RecordRow("salesreport", "parsed", 1)

	if len(f.counters) != 1 {
		t.Error("nil SetBackend should keep the installed backend")
	}
}

func TestFlush(t *testing.T) {
	f := install(t)
	if err := Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if f.flushed != 1 {
		t.Errorf("flushed = %d, want 1", f.flushed)
	}
}
