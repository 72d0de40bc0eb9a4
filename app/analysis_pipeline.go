package app

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"axostats/adapters/excel"
	"axostats/adapters/render"
	"axostats/adapters/stats"
	"axostats/domain/histo"
	"axostats/internal"
	"axostats/internal/config"
	"axostats/internal/errors"

	"github.com/google/uuid"
)

// AnalysisManifest summarizes one complete pipeline run.
type AnalysisManifest struct {
	RunID     uuid.UUID             `json:"run_id"`
	InputPath string                `json:"input_path"`
	Rows      int                   `json:"rows"`
	Groups    int                   `json:"groups"`
	Policy    histo.CentralTendency `json:"policy"`
	Tables    []string              `json:"tables"`
	Images    []string              `json:"images"`
	RuntimeMs int64                 `json:"runtime_ms"`
}

// Pipeline runs the fixed analysis sequence: load → recode → describe →
// test → reshape → export. Single-threaded, one in-memory dataset passed
// linearly through the stages.
type Pipeline struct {
	cfg *config.Config
	log *internal.Logger
}

// NewPipeline creates a pipeline over the given configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg, log: internal.DefaultLogger}
}

// Run executes the whole analysis and returns its manifest. Input and
// output errors abort the run; degenerate statistical groups become NA
// rows and the run continues.
func (p *Pipeline) Run(ctx context.Context) (*AnalysisManifest, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	manifest := &AnalysisManifest{
		RunID:     uuid.New(),
		InputPath: p.cfg.Input.Path,
	}
	p.log.Info("[Pipeline] run %s starting (input=%s, measurement=%s)",
		manifest.RunID, p.cfg.Input.Path, p.cfg.Input.MeasurementColumn)

	// Load and recode.
	reader := excel.NewDataReader(p.cfg.Input.Path, excel.Columns{
		Age:         p.cfg.Input.AgeColumn,
		Region:      p.cfg.Input.RegionColumn,
		Measurement: p.cfg.Input.MeasurementColumn,
	})
	ds, err := reader.ReadDataset()
	if err != nil {
		return nil, err
	}
	histo.NewRecoder(p.cfg.Input.AgeRecode).Recode(ds)
	manifest.Rows = len(ds.Rows)

	if err := os.MkdirAll(p.cfg.Output.Dir, 0o755); err != nil {
		return nil, errors.OutputError(p.cfg.Output.Dir, err)
	}

	ages := histo.AgeLevels(ds)
	regions := histo.Regions(ds)
	manifest.Groups = len(ages) * len(regions)

	// Descriptives and normality drive the central-tendency policy.
	descriptives := stats.NewSummarizer().Summarize(ds)
	shapiro := p.runShapiro(ds, ages, regions)
	policy := histo.DecideCentralTendency(shapiro)
	manifest.Policy = policy
	p.log.Info("[Pipeline] central tendency policy: %s", policy)

	// Omnibus per region, post-hoc only where significant.
	kruskal := p.runKruskal(ds, ages, regions)
	dunn := p.runDunn(ds, ages, kruskal)

	// Pairwise distributional tests across age levels, region-pooled.
	mannWhitney, kolmogorov := p.runPairwise(ds, ages)

	// Radar table from the policy's representative statistic.
	values := make(map[histo.GroupKey]float64, len(descriptives))
	for _, row := range descriptives {
		values[histo.GroupKey{Age: row.Age, Region: row.Region}] = histo.Representative(row, policy)
	}
	radar := histo.BuildRadarTable(ages, regions, values)

	// Exports: CSV tables first, then figures, in the fixed script order.
	csv := render.NewCSVExporter()
	tables := []struct {
		name  string
		write func(path string) error
	}{
		{"descriptives", func(path string) error { return csv.WriteDescriptives(path, descriptives) }},
		{"shapiro", func(path string) error { return csv.WriteShapiro(path, shapiro) }},
		{"kruskal_wallis", func(path string) error { return csv.WriteKruskal(path, kruskal) }},
		{"dunn_posthoc", func(path string) error { return csv.WriteDunn(path, dunn) }},
		{"mann_whitney", func(path string) error { return csv.WritePairwise(path, "U", mannWhitney) }},
		{"kolmogorov_smirnov", func(path string) error { return csv.WritePairwise(path, "D", kolmogorov) }},
	}
	for _, t := range tables {
		path := p.outPath(t.name, "csv")
		if err := t.write(path); err != nil {
			return nil, err
		}
		manifest.Tables = append(manifest.Tables, path)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	charts := render.NewChartRenderer(p.cfg.Chart.Width, p.cfg.Chart.Height, p.cfg.Chart.ColorMap)
	images := []struct {
		name   string
		render func(path string) error
	}{
		{"boxplot", func(path string) error { return charts.Boxplot(ds, path) }},
		{"ecdf", func(path string) error { return charts.ECDF(ds, path) }},
		{"ecdf_zoom", func(path string) error {
			return charts.ECDFZoom(ds, path, p.cfg.Chart.ECDFZoomLo, p.cfg.Chart.ECDFZoomHi)
		}},
		{"radar", func(path string) error {
			return charts.Radar(radar, fmt.Sprintf("%s by region", ds.Measurement), path)
		}},
	}
	for _, img := range images {
		path := p.outPath(img.name, "png")
		if err := img.render(path); err != nil {
			if errors.GetCode(err) == errors.CodeOutputError {
				return nil, err
			}
			// Undrawable charts (too few regions, degenerate scale) are
			// reported but do not abort the CSV results already written.
			p.log.Warn("[Pipeline] skipping %s: %v", img.name, err)
			continue
		}
		manifest.Images = append(manifest.Images, path)
	}

	manifest.RuntimeMs = time.Since(start).Milliseconds()
	p.log.Info("[Pipeline] run %s finished in %dms (%d tables, %d images)",
		manifest.RunID, manifest.RuntimeMs, len(manifest.Tables), len(manifest.Images))
	return manifest, nil
}

func (p *Pipeline) outPath(name, ext string) string {
	return filepath.Join(p.cfg.Output.Dir, fmt.Sprintf("%s_%s.%s", p.cfg.Output.Prefix, name, ext))
}

// runShapiro tests every (Age, Region) group. Degenerate groups are
// recorded as non-normal with NaN statistics.
func (p *Pipeline) runShapiro(ds *histo.Dataset, ages []histo.AgeLevel, regions []string) []histo.ShapiroRow {
	var rows []histo.ShapiroRow
	for _, age := range ages {
		for _, region := range regions {
			values := histo.GroupValues(ds, histo.GroupKey{Age: age.Label, Region: region})
			row := histo.ShapiroRow{Age: age.Label, Region: region, N: len(values)}
			w, pv, err := stats.ShapiroWilk(values)
			if err != nil {
				row.W, row.P, row.Normal = math.NaN(), math.NaN(), false
				p.log.Warn("[Pipeline] shapiro %s/%s: %v", age.Label, region, err)
			} else {
				row.W, row.P = w, pv
				row.Normal = pv > p.cfg.Stats.SignificanceLevel
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// runKruskal runs the omnibus test per region across age levels. A
// degenerate region yields an NA row; the remaining regions still run.
func (p *Pipeline) runKruskal(ds *histo.Dataset, ages []histo.AgeLevel, regions []string) []histo.KruskalRow {
	var rows []histo.KruskalRow
	for _, region := range regions {
		groups := make([][]float64, 0, len(ages))
		for _, age := range ages {
			groups = append(groups, histo.GroupValues(ds, histo.GroupKey{Age: age.Label, Region: region}))
		}
		h, df, pv, err := stats.KruskalWallis(groups)
		if err != nil {
			p.log.Warn("[Pipeline] kruskal-wallis %s: %v", region, err)
			rows = append(rows, histo.KruskalRow{Region: region, H: math.NaN(), DF: 0, P: math.NaN()})
			continue
		}
		rows = append(rows, histo.KruskalRow{Region: region, H: h, DF: df, P: pv})
	}
	return rows
}

// runDunn restricts the post-hoc to regions whose omnibus p-value clears
// the significance threshold.
func (p *Pipeline) runDunn(ds *histo.Dataset, ages []histo.AgeLevel, kruskal []histo.KruskalRow) []histo.DunnRow {
	var rows []histo.DunnRow
	for _, kw := range kruskal {
		if kw.Degenerate() || kw.P >= p.cfg.Stats.SignificanceLevel {
			continue
		}
		groups := make([][]float64, 0, len(ages))
		for _, age := range ages {
			groups = append(groups, histo.GroupValues(ds, histo.GroupKey{Age: age.Label, Region: kw.Region}))
		}
		comparisons, err := stats.DunnTest(groups)
		if err != nil {
			p.log.Warn("[Pipeline] dunn %s: %v", kw.Region, err)
			continue
		}
		for _, c := range comparisons {
			rows = append(rows, histo.DunnRow{
				Region:    kw.Region,
				Age1:      ages[c.I].Label,
				Age2:      ages[c.J].Label,
				Z:         c.Z,
				P:         c.P,
				PAdjusted: c.PAdjusted,
			})
		}
	}
	return rows
}

// runPairwise compares every unordered pair of age levels on the pooled
// raw values: Mann-Whitney on the data as-is, Kolmogorov-Smirnov on a
// zero-jittered copy so its tie handling cannot fail on exact zeros.
func (p *Pipeline) runPairwise(ds *histo.Dataset, ages []histo.AgeLevel) (mw, ks []histo.PairwiseRow) {
	jitter := stats.NewJitterer(p.cfg.Stats.JitterMin, p.cfg.Stats.JitterMax, p.cfg.Stats.JitterSeed)
	for i := 0; i < len(ages); i++ {
		for j := i + 1; j < len(ages); j++ {
			x := histo.GroupValues(ds, histo.GroupKey{Age: ages[i].Label})
			y := histo.GroupValues(ds, histo.GroupKey{Age: ages[j].Label})

			u, up, err := stats.MannWhitneyU(x, y)
			if err != nil {
				p.log.Warn("[Pipeline] mann-whitney %s vs %s: %v", ages[i].Label, ages[j].Label, err)
				u, up = math.NaN(), math.NaN()
			}
			mw = append(mw, histo.PairwiseRow{Age1: ages[i].Label, Age2: ages[j].Label, Statistic: u, P: up})

			d, dp, err := stats.KolmogorovSmirnov(jitter.JitterZeros(x), jitter.JitterZeros(y))
			if err != nil {
				p.log.Warn("[Pipeline] kolmogorov-smirnov %s vs %s: %v", ages[i].Label, ages[j].Label, err)
				d, dp = math.NaN(), math.NaN()
			}
			ks = append(ks, histo.PairwiseRow{Age1: ages[i].Label, Age2: ages[j].Label, Statistic: d, P: dp})
		}
	}
	return mw, ks
}
