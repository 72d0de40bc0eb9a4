package render

import (
	"fmt"
	"math"

	"axostats/domain/histo"
	"axostats/internal/errors"

	mstats "github.com/montanaflynn/stats"
	"github.com/wcharczuk/go-chart/v2"
)

// Boxplot renders measurement vs Age with Tukey whiskers (1.5 IQR). One
// box per Age level, filled with the configured Age color.
func (r *ChartRenderer) Boxplot(ds *histo.Dataset, path string) error {
	ages := histo.AgeLevels(ds)

	var series []chart.Series
	var ticks []chart.Tick
	yMin, yMax := math.Inf(1), math.Inf(-1)

	ticks = append(ticks, chart.Tick{Value: 0.5, Label: ""})
	for i, age := range ages {
		values := histo.GroupValues(ds, histo.GroupKey{Age: age.Label})
		x := float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: x, Label: age.Label})

		box, ok := newBox(values)
		if !ok {
			continue
		}
		color := r.ageColor(age.Label)
		series = append(series, &boxSeries{
			name:      age.Label,
			x:         x,
			halfWidth: 0.3,
			box:       box,
			style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2.0,
				FillColor:   color.WithAlpha(90),
			},
		})
		yMin = math.Min(yMin, box.lo)
		yMax = math.Max(yMax, box.hi)
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(ages)) + 0.5, Label: ""})

	if len(series) == 0 {
		return errors.DegenerateGroup("boxplot", "no drawable groups")
	}
	pad := (yMax - yMin) * 0.05
	if pad == 0 {
		pad = 1
	}

	ch := &chart.Chart{
		Title:  fmt.Sprintf("%s by age group", ds.Measurement),
		Width:  r.width,
		Height: r.height,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(ages)) + 0.5},
		},
		YAxis: chart.YAxis{
			Name:  ds.Measurement,
			Range: &chart.ContinuousRange{Min: yMin - pad, Max: yMax + pad},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return r.save(ch, path)
}

// fiveNumber holds the drawable extent of one box.
type fiveNumber struct {
	lo, q1, median, q3, hi float64
}

func newBox(values []float64) (fiveNumber, bool) {
	if len(values) < 2 {
		return fiveNumber{}, false
	}
	q1, err1 := mstats.Percentile(values, 25)
	median, err2 := mstats.Median(values)
	q3, err3 := mstats.Percentile(values, 75)
	if err1 != nil || err2 != nil || err3 != nil {
		return fiveNumber{}, false
	}

	iqr := q3 - q1
	loBound, hiBound := q1-1.5*iqr, q3+1.5*iqr
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v >= loBound && v < lo {
			lo = v
		}
		if v <= hiBound && v > hi {
			hi = v
		}
	}
	return fiveNumber{lo: lo, q1: q1, median: median, q3: q3, hi: hi}, true
}

// boxSeries draws a single filled box with median line and whiskers.
// go-chart has no boxplot primitive, so this implements chart.Series
// directly against the raw renderer.
type boxSeries struct {
	name      string
	x         float64
	halfWidth float64
	box       fiveNumber
	style     chart.Style
}

func (s *boxSeries) GetName() string           { return s.name }
func (s *boxSeries) GetStyle() chart.Style     { return s.style }
func (s *boxSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s *boxSeries) Validate() error           { return nil }

// Len and GetValues expose the box extent so axis auto-ranging works when
// no explicit range is set.
func (s *boxSeries) Len() int { return 2 }
func (s *boxSeries) GetValues(index int) (float64, float64) {
	if index == 0 {
		return s.x - s.halfWidth, s.box.lo
	}
	return s.x + s.halfWidth, s.box.hi
}

func (s *boxSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	px := func(v float64) int { return canvasBox.Left + xrange.Translate(v) }
	py := func(v float64) int { return canvasBox.Bottom - yrange.Translate(v) }

	left, right := px(s.x-s.halfWidth), px(s.x+s.halfWidth)
	center := px(s.x)
	capHalf := (right - left) / 4

	// Filled box from Q1 to Q3.
	r.SetStrokeColor(s.style.StrokeColor)
	r.SetStrokeWidth(s.style.StrokeWidth)
	r.SetFillColor(s.style.FillColor)
	r.MoveTo(left, py(s.box.q1))
	r.LineTo(right, py(s.box.q1))
	r.LineTo(right, py(s.box.q3))
	r.LineTo(left, py(s.box.q3))
	r.Close()
	r.FillStroke()

	// Median line.
	r.SetStrokeColor(s.style.StrokeColor)
	r.SetStrokeWidth(s.style.StrokeWidth + 1)
	r.MoveTo(left, py(s.box.median))
	r.LineTo(right, py(s.box.median))
	r.Stroke()

	// Whiskers with caps.
	r.SetStrokeWidth(s.style.StrokeWidth)
	r.MoveTo(center, py(s.box.q3))
	r.LineTo(center, py(s.box.hi))
	r.Stroke()
	r.MoveTo(center-capHalf, py(s.box.hi))
	r.LineTo(center+capHalf, py(s.box.hi))
	r.Stroke()
	r.MoveTo(center, py(s.box.q1))
	r.LineTo(center, py(s.box.lo))
	r.Stroke()
	r.MoveTo(center-capHalf, py(s.box.lo))
	r.LineTo(center+capHalf, py(s.box.lo))
	r.Stroke()
}
