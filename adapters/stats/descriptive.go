package stats

import (
	"math"

	"axostats/domain/histo"

	mstats "github.com/montanaflynn/stats"
)

// Summarizer computes per-group descriptive statistics over the dataset.
type Summarizer struct{}

// NewSummarizer creates a new descriptive summarizer
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize produces one row per (Age, Region) group, ages in natural
// order, regions in first-appearance order. Degenerate groups yield NaN
// for the statistics that are undefined at their size; they never abort
// the remaining groups.
func (s *Summarizer) Summarize(ds *histo.Dataset) []histo.DescriptiveRow {
	var rows []histo.DescriptiveRow
	for _, age := range histo.AgeLevels(ds) {
		for _, region := range histo.Regions(ds) {
			values := histo.GroupValues(ds, histo.GroupKey{Age: age.Label, Region: region})
			rows = append(rows, s.describe(age.Label, region, values))
		}
	}
	return rows
}

func (s *Summarizer) describe(age, region string, values []float64) histo.DescriptiveRow {
	row := histo.DescriptiveRow{
		Age:      age,
		Region:   region,
		N:        len(values),
		Mean:     math.NaN(),
		Median:   math.NaN(),
		StdDev:   math.NaN(),
		IQR:      math.NaN(),
		Skewness: math.NaN(),
		Kurtosis: math.NaN(),
	}
	if len(values) == 0 {
		return row
	}

	if mean, err := mstats.Mean(values); err == nil {
		row.Mean = mean
	}
	if median, err := mstats.Median(values); err == nil {
		row.Median = median
	}
	if len(values) >= 2 {
		if sd, err := mstats.StandardDeviationSample(values); err == nil {
			row.StdDev = sd
		}
		q1, err1 := mstats.Percentile(values, 25)
		q3, err3 := mstats.Percentile(values, 75)
		if err1 == nil && err3 == nil {
			row.IQR = q3 - q1
		}
	}
	if !math.IsNaN(row.StdDev) && row.StdDev > 0 {
		row.Skewness = sampleSkewness(values, row.Mean, row.StdDev)
		row.Kurtosis = sampleExcessKurtosis(values, row.Mean, row.StdDev)
	}
	return row
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient of
// skewness; NaN below the minimum sample size.
func sampleSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return math.NaN()
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	// Bias correction for sample skewness
	return (n / ((n - 1) * (n - 2))) * sum
}

// sampleExcessKurtosis computes sample excess (Fisher) kurtosis with bias
// correction; 0 for a normal distribution, NaN below the minimum size.
func sampleExcessKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 {
		return math.NaN()
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}

	return ((n*(n+1))/((n-1)*(n-2)*(n-3)))*sum - (3*(n-1)*(n-1))/((n-2)*(n-3))
}
