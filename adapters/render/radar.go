package render

import (
	"fmt"
	"math"

	"axostats/domain/histo"
	"axostats/internal/errors"

	"github.com/wcharczuk/go-chart/v2"
)

// Radar renders the wide central-tendency table as a radar chart: one
// spoke per Region, five labeled rings from Min to Max, one closed
// polyline per Age group colored by the Age color map.
func (r *ChartRenderer) Radar(table *histo.RadarTable, title, path string) error {
	k := len(table.Regions)
	if k < 3 {
		return errors.DegenerateGroup("radar", fmt.Sprintf("needs at least 3 regions, got %d", k))
	}
	min, max := table.Min(), table.Max()
	if max <= min {
		return errors.DegenerateGroup("radar", fmt.Sprintf("degenerate scale [%g, %g]", min, max))
	}

	// Spoke i points at angle 90° − i·360°/k so the first region is at
	// the top and spokes advance clockwise.
	angle := func(i int) float64 {
		return math.Pi/2 - 2*math.Pi*float64(i)/float64(k)
	}
	point := func(i int, v float64) (float64, float64) {
		radius := (v - min) / (max - min)
		return radius * math.Cos(angle(i)), radius * math.Sin(angle(i))
	}

	var series []chart.Series

	// Five concentric rings with tick labels on the first spoke.
	const rings = 5
	var ringLabels []chart.Value2
	for ring := 1; ring <= rings; ring++ {
		value := min + (max-min)*float64(ring)/rings
		xs := make([]float64, 0, k+1)
		ys := make([]float64, 0, k+1)
		for i := 0; i <= k; i++ {
			x, y := point(i%k, value)
			xs = append(xs, x)
			ys = append(ys, y)
		}
		series = append(series, chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.ColorAlternateGray.WithAlpha(120), StrokeWidth: 1.0},
		})
		lx, ly := point(0, value)
		ringLabels = append(ringLabels, chart.Value2{
			XValue: lx, YValue: ly, Label: trimFloat(value),
		})
	}

	// Spokes with region labels just beyond the outer ring.
	var spokeLabels []chart.Value2
	for i, region := range table.Regions {
		ox, oy := point(i, max)
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{0, ox},
			YValues: []float64{0, oy},
			Style:   chart.Style{StrokeColor: chart.ColorAlternateGray.WithAlpha(120), StrokeWidth: 1.0},
		})
		spokeLabels = append(spokeLabels, chart.Value2{
			XValue: ox * 1.08, YValue: oy * 1.08, Label: region,
		})
	}

	// One closed polyline per Age group.
	labels, rows := table.AgeRows()
	for gi, label := range labels {
		xs := make([]float64, 0, k+1)
		ys := make([]float64, 0, k+1)
		degenerate := false
		for i := 0; i <= k; i++ {
			v := rows[gi][i%k]
			if math.IsNaN(v) {
				degenerate = true
				break
			}
			x, y := point(i%k, v)
			xs = append(xs, x)
			ys = append(ys, y)
		}
		if degenerate {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: r.ageColor(label),
				StrokeWidth: 2.5,
			},
		})
	}

	series = append(series, chart.AnnotationSeries{
		Annotations: append(ringLabels, spokeLabels...),
		Style:       chart.Style{StrokeColor: chart.ColorAlternateGray, FontSize: 9},
	})

	ch := &chart.Chart{
		Title:  title,
		Width:  r.width,
		Height: r.height,
		XAxis:  chart.XAxis{Style: chart.Hidden(), Range: &chart.ContinuousRange{Min: -1.35, Max: 1.35}},
		YAxis:  chart.YAxis{Style: chart.Hidden(), Range: &chart.ContinuousRange{Min: -1.25, Max: 1.25}},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return r.save(ch, path)
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
