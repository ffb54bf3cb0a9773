// Package chart renders the run's PNG charts: a line chart of daily sales
// and a bar chart of the top products. A summary with no data points is
// valid; the renderers then skip the file and report false rather than
// failing the run.
package chart

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"salesreport/internal/report"
)

// WriteDailyLine renders daily totals as a line chart, x ascending by date.
// Returns (false, nil) when there are no data points.
func WriteDailyLine(path string, daily []report.DailyTotal) (bool, error) {
	if len(daily) == 0 {
		return false, nil
	}

	xs := make([]time.Time, len(daily))
	ys := make([]float64, len(daily))
	for i, d := range daily {
		xs[i] = d.Date
		ys[i] = d.Sales.InexactFloat64()
	}

	graph := chart.Chart{
		Title:  "Daily Sales",
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "sales",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					DotColor:    chart.ColorBlue,
					DotWidth:    4,
				},
			},
		},
	}

	// A single data point has a zero x-range, which the renderer rejects;
	// widen the axis by a day on each side.
	if len(daily) == 1 {
		d := daily[0].Date
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(d.AddDate(0, 0, -1)),
			Max: chart.TimeToFloat64(d.AddDate(0, 0, 1)),
		}
	}

	return true, renderPNG(path, graph.Render)
}

// WriteTopBar renders the top-products ranking as a bar chart in ranked
// order. Returns (false, nil) when the ranking is empty.
func WriteTopBar(path string, top []report.ProductTotal) (bool, error) {
	if len(top) == 0 {
		return false, nil
	}

	bars := make([]chart.Value, len(top))
	for i, p := range top {
		bars[i] = chart.Value{Label: p.Product, Value: p.Sales.InexactFloat64()}
	}

	graph := chart.BarChart{
		Title:    "Top Products by Sales",
		Width:    1000,
		Height:   500,
		BarWidth: 60,
		Bars:     bars,
	}

	return true, renderPNG(path, graph.Render)
}

func renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
