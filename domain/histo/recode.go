package histo

import (
	"sort"
	"strconv"
	"unicode"
)

// Recoder maps coded Age values (e.g. "4m") to display labels
// ("4 months"). Values with no matching code pass through unchanged; row
// order and row count are never altered.
type Recoder struct {
	mapping map[string]string
}

// NewRecoder creates a recoder from a raw-code → display-label mapping.
func NewRecoder(mapping map[string]string) *Recoder {
	m := make(map[string]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	return &Recoder{mapping: m}
}

// DefaultAgeRecoder covers the three age cohorts used across the study.
func DefaultAgeRecoder() *Recoder {
	return NewRecoder(map[string]string{
		"4m":  "4 months",
		"24m": "24 months",
		"48m": "48 months",
	})
}

// Recode rewrites the Age column in place.
func (r *Recoder) Recode(ds *Dataset) {
	for i := range ds.Rows {
		if label, ok := r.mapping[ds.Rows[i].Age]; ok {
			ds.Rows[i].Age = label
		}
	}
}

// AgeLevels returns the distinct Age labels of the dataset ascending by
// their embedded numeric value, ties broken by first appearance.
func AgeLevels(ds *Dataset) []AgeLevel {
	seen := make(map[string]int)
	var labels []string
	for _, row := range ds.Rows {
		if _, ok := seen[row.Age]; !ok {
			seen[row.Age] = len(labels)
			labels = append(labels, row.Age)
		}
	}

	levels := make([]AgeLevel, len(labels))
	for i, label := range labels {
		levels[i] = AgeLevel{Label: label, Order: embeddedNumber(label)}
	}
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return seen[levels[i].Label] < seen[levels[j].Label]
	})
	return levels
}

// Regions returns the distinct Region labels in first-appearance order.
func Regions(ds *Dataset) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, row := range ds.Rows {
		if !seen[row.Region] {
			seen[row.Region] = true
			regions = append(regions, row.Region)
		}
	}
	return regions
}

// GroupValues collects the non-missing measurement values for one
// (Age, Region) group. An empty Region matches every region.
func GroupValues(ds *Dataset, key GroupKey) []float64 {
	var values []float64
	for _, row := range ds.Rows {
		if row.Age != key.Age {
			continue
		}
		if key.Region != "" && row.Region != key.Region {
			continue
		}
		if !isNaN(row.Value) {
			values = append(values, row.Value)
		}
	}
	return values
}

// embeddedNumber extracts the first run of digits from a label. Labels
// without digits sort last (stable on first appearance).
func embeddedNumber(label string) int {
	start := -1
	for i, r := range label {
		if unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			n, _ := strconv.Atoi(label[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(label[start:])
		return n
	}
	return int(^uint(0) >> 1)
}

func isNaN(v float64) bool { return v != v }
