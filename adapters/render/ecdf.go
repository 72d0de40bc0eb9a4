package render

import (
	"fmt"
	"math"
	"sort"

	"axostats/domain/histo"
	"axostats/internal/errors"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/stat"
)

// ECDF renders one empirical CDF step curve per Age level over the full
// measurement range.
func (r *ChartRenderer) ECDF(ds *histo.Dataset, path string) error {
	return r.ecdf(ds, path, 0, 0)
}

// ECDFZoom renders the same curves restricted to a zoom window. When the
// window is empty (hi <= lo) it defaults to the interquartile range of the
// pooled values.
func (r *ChartRenderer) ECDFZoom(ds *histo.Dataset, path string, lo, hi float64) error {
	if hi <= lo {
		var pooled []float64
		for _, row := range ds.Rows {
			if !math.IsNaN(row.Value) {
				pooled = append(pooled, row.Value)
			}
		}
		if len(pooled) < 4 {
			return r.ecdf(ds, path, 0, 0)
		}
		sort.Float64s(pooled)
		q1 := stat.Quantile(0.25, stat.Empirical, pooled, nil)
		q3 := stat.Quantile(0.75, stat.Empirical, pooled, nil)
		if q3 <= q1 {
			return r.ecdf(ds, path, 0, 0)
		}
		lo, hi = q1, q3
	}
	return r.ecdf(ds, path, lo, hi)
}

func (r *ChartRenderer) ecdf(ds *histo.Dataset, path string, zoomLo, zoomHi float64) error {
	var series []chart.Series
	for _, age := range histo.AgeLevels(ds) {
		values := histo.GroupValues(ds, histo.GroupKey{Age: age.Label})
		if len(values) == 0 {
			continue
		}
		xs, ys := ecdfSteps(values)
		if zoomHi > zoomLo {
			// go-chart does not clip series to the axis range; collapse
			// out-of-window steps onto the window edges instead.
			for i, x := range xs {
				if x < zoomLo {
					xs[i] = zoomLo
				} else if x > zoomHi {
					xs[i] = zoomHi
				}
			}
		}
		series = append(series, chart.ContinuousSeries{
			Name:    age.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: r.ageColor(age.Label),
				StrokeWidth: 2.0,
			},
		})
	}
	if len(series) == 0 {
		return errors.DegenerateGroup("ecdf", "no drawable groups")
	}

	xAxis := chart.XAxis{Name: ds.Measurement}
	title := fmt.Sprintf("ECDF of %s by age group", ds.Measurement)
	if zoomHi > zoomLo {
		xAxis.Range = &chart.ContinuousRange{Min: zoomLo, Max: zoomHi}
		title += " (zoom)"
	}

	ch := &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis:  xAxis,
		YAxis: chart.YAxis{
			Name:  "F(x)",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return r.save(ch, path)
}

// ecdfSteps builds step-curve coordinates: F jumps by 1/n at each sorted
// value and holds until the next.
func ecdfSteps(values []float64) (xs, ys []float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	xs = make([]float64, 0, 2*len(sorted))
	ys = make([]float64, 0, 2*len(sorted))
	prev := 0.0
	for i, v := range sorted {
		xs = append(xs, v, v)
		ys = append(ys, prev, float64(i+1)/n)
		prev = float64(i+1) / n
	}
	return xs, ys
}
