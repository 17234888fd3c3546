package export

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ExportChart writes an HTML bar chart of per-page efficiency, with the
// overall efficiency in the subtitle.
func ExportChart(path string, rep Report) error {
	if err := rep.check(); err != nil {
		return err
	}

	res := rep.Result
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "AtlasPack utilization"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Page utilization",
			Subtitle: fmt.Sprintf("%d pages, %.1f%% overall, run %s", len(res.Pages), res.TotalEfficiency(), rep.RunID),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "efficiency %", Min: 0, Max: 100}),
	)

	labels := make([]string, len(res.Pages))
	eff := make([]opts.BarData, len(res.Pages))
	counts := make([]opts.BarData, len(res.Pages))
	for i, page := range res.Pages {
		labels[i] = fmt.Sprintf("%d (%dx%d)", i, page.W, page.H)
		eff[i] = opts.BarData{Value: math.Round(res.Efficiency(i)*10) / 10}
		counts[i] = opts.BarData{Value: len(page.Rects)}
	}
	bar.SetXAxis(labels).
		AddSeries("Efficiency", eff).
		AddSeries("Rects", counts)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bar.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}
