package histo

import (
	"fmt"
	"math"
)

// Observation is one specimen row from the source spreadsheet.
// Value is NaN when the measurement cell was empty or non-numeric.
type Observation struct {
	Specimen string  `json:"specimen,omitempty"`
	Age      string  `json:"age"`
	Region   string  `json:"region"`
	Value    float64 `json:"value"`
}

// Dataset is the full in-memory table for one analysis run.
type Dataset struct {
	Measurement string        `json:"measurement"` // name of the measured column, e.g. "CellsPerArea"
	Rows        []Observation `json:"rows"`
}

// GroupKey identifies an aggregation cell. Region is empty when grouping
// by Age alone.
type GroupKey struct {
	Age    string `json:"age"`
	Region string `json:"region,omitempty"`
}

func (k GroupKey) String() string {
	if k.Region == "" {
		return k.Age
	}
	return fmt.Sprintf("%s/%s", k.Age, k.Region)
}

// AgeLevel is an Age label paired with its embedded numeric key, so that
// ordering never relies on string-to-number coercion at sort time.
type AgeLevel struct {
	Label string `json:"label"`
	Order int    `json:"order"`
}

// CentralTendency is the global representative-statistic policy. It is
// decided once from the normality pass and threaded explicitly through the
// summarizer and reshaper.
type CentralTendency string

const (
	TendencyMean   CentralTendency = "mean"
	TendencyMedian CentralTendency = "median"
)

// DescriptiveRow holds per-group summary statistics. StdDev, IQR, Skewness
// and Kurtosis are NaN for degenerate groups (n < 2, resp. n < 3 / n < 4).
type DescriptiveRow struct {
	Age      string
	Region   string
	N        int
	Mean     float64
	Median   float64
	StdDev   float64
	IQR      float64
	Skewness float64
	Kurtosis float64
}

// ShapiroRow is one Shapiro-Wilk normality result per (Age, Region) group.
type ShapiroRow struct {
	Age    string
	Region string
	N      int
	W      float64
	P      float64
	Normal bool
}

// KruskalRow is one Kruskal-Wallis omnibus result per Region. H and P are
// NaN when the region was degenerate (fewer than two Age levels, or an
// empty group).
type KruskalRow struct {
	Region string
	H      float64
	DF     int
	P      float64
}

// DunnRow is one Dunn post-hoc pairwise comparison within a Region.
type DunnRow struct {
	Region    string
	Age1      string
	Age2      string
	Z         float64
	P         float64
	PAdjusted float64
}

// PairwiseRow is one two-sample distributional comparison between Age
// levels over the pooled measurement values.
type PairwiseRow struct {
	Age1      string
	Age2      string
	Statistic float64
	P         float64
}

// Degenerate reports whether a result row carries no usable statistic.
func (r KruskalRow) Degenerate() bool {
	return math.IsNaN(r.H) || math.IsNaN(r.P)
}
