package render

import (
	"os"
	"strings"

	"axostats/internal"
	"axostats/internal/errors"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartRenderer produces the PNG figures of the analysis: boxplot, ECDF
// (full and zoomed) and radar charts. Colors come from an explicit Age
// label → hex mapping, never from series position.
type ChartRenderer struct {
	width    int
	height   int
	colorMap map[string]string
	log      *internal.Logger
}

// NewChartRenderer creates a renderer with fixed pixel dimensions.
func NewChartRenderer(width, height int, colorMap map[string]string) *ChartRenderer {
	return &ChartRenderer{
		width:    width,
		height:   height,
		colorMap: colorMap,
		log:      internal.DefaultLogger,
	}
}

// ageColor resolves the configured color for an Age label. Unmapped labels
// fall back to a neutral gray so a missing entry is visible, not fatal.
func (r *ChartRenderer) ageColor(age string) drawing.Color {
	hex, ok := r.colorMap[age]
	if !ok {
		return chart.ColorAlternateGray
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// save renders the chart to path; any failure is a fatal output error.
func (r *ChartRenderer) save(ch *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.OutputError(path, err)
	}
	defer f.Close()

	if err := ch.Render(chart.PNG, f); err != nil {
		return errors.OutputError(path, err)
	}
	r.log.Info("[ChartRenderer] wrote %s (%dx%d)", path, r.width, r.height)
	return nil
}
