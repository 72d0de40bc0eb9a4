package histo

import (
	"math"
	"testing"
)

func TestDecideCentralTendency_GlobalPolicy(t *testing.T) {
	allNormal := []ShapiroRow{
		{Age: "4 months", Region: "dorsal", N: 10, W: 0.97, P: 0.8, Normal: true},
		{Age: "24 months", Region: "dorsal", N: 10, W: 0.95, P: 0.4, Normal: true},
		{Age: "48 months", Region: "dorsal", N: 10, W: 0.96, P: 0.6, Normal: true},
	}
	if got := DecideCentralTendency(allNormal); got != TendencyMean {
		t.Errorf("all-normal dataset: policy = %s, want %s", got, TendencyMean)
	}

	// A single non-normal group flips the choice globally.
	oneSkewed := append([]ShapiroRow{}, allNormal...)
	oneSkewed[1].P = 0.01
	oneSkewed[1].Normal = false
	if got := DecideCentralTendency(oneSkewed); got != TendencyMedian {
		t.Errorf("one non-normal group: policy = %s, want %s", got, TendencyMedian)
	}

	// Degenerate normality results count as non-normal.
	degenerate := append([]ShapiroRow{}, allNormal...)
	degenerate[2].P = math.NaN()
	degenerate[2].Normal = false
	if got := DecideCentralTendency(degenerate); got != TendencyMedian {
		t.Errorf("degenerate group: policy = %s, want %s", got, TendencyMedian)
	}
}

func TestRepresentative(t *testing.T) {
	row := DescriptiveRow{Mean: 3.5, Median: 2.0}
	if Representative(row, TendencyMean) != 3.5 {
		t.Error("mean policy should pick the mean")
	}
	if Representative(row, TendencyMedian) != 2.0 {
		t.Error("median policy should pick the median")
	}
}
