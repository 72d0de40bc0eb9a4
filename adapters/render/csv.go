package render

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"axostats/domain/histo"
	"axostats/internal"
	"axostats/internal/errors"
)

// CSVExporter writes test-result tables as comma-delimited files with a
// header row and no index column. Write failures are fatal; there are no
// retries.
type CSVExporter struct {
	log *internal.Logger
}

// NewCSVExporter creates a new CSV exporter
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{log: internal.DefaultLogger}
}

// WriteDescriptives exports the per-group summary table.
func (e *CSVExporter) WriteDescriptives(path string, rows []histo.DescriptiveRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Age, r.Region, strconv.Itoa(r.N),
			num(r.Mean), num(r.Median), num(r.StdDev), num(r.IQR),
			num(r.Skewness), num(r.Kurtosis),
		})
	}
	header := []string{"Age", "Region", "N", "Mean", "Median", "SD", "IQR", "Skewness", "Kurtosis"}
	return e.write(path, header, records)
}

// WriteShapiro exports the per-group normality table.
func (e *CSVExporter) WriteShapiro(path string, rows []histo.ShapiroRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Age, r.Region, strconv.Itoa(r.N), num(r.W), num(r.P), strconv.FormatBool(r.Normal),
		})
	}
	header := []string{"Age", "Region", "N", "W", "p", "Normal"}
	return e.write(path, header, records)
}

// WriteKruskal exports the per-region omnibus table.
func (e *CSVExporter) WriteKruskal(path string, rows []histo.KruskalRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		df := "NA"
		if !r.Degenerate() {
			df = strconv.Itoa(r.DF)
		}
		records = append(records, []string{r.Region, num(r.H), df, num(r.P)})
	}
	header := []string{"Region", "H", "df", "p"}
	return e.write(path, header, records)
}

// WriteDunn exports the post-hoc table for significant regions.
func (e *CSVExporter) WriteDunn(path string, rows []histo.DunnRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Region, r.Age1, r.Age2, num(r.Z), num(r.P), num(r.PAdjusted),
		})
	}
	header := []string{"Region", "Group1", "Group2", "Z", "p", "p.adj"}
	return e.write(path, header, records)
}

// WritePairwise exports one two-sample test table (Mann-Whitney or KS).
func (e *CSVExporter) WritePairwise(path, statName string, rows []histo.PairwiseRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{r.Age1, r.Age2, num(r.Statistic), num(r.P)})
	}
	header := []string{"Group1", "Group2", statName, "p"}
	return e.write(path, header, records)
}

func (e *CSVExporter) write(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.OutputError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.OutputError(path, err)
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return errors.OutputError(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.OutputError(path, err)
	}

	e.log.Info("[CSVExporter] wrote %s (%d rows)", path, len(records))
	return nil
}

// num formats a statistic for CSV, with NaN rendered as NA.
func num(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
