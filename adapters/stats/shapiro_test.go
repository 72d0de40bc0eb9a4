package stats

import (
	"math"
	"testing"

	"axostats/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

func TestShapiroWilk_NormalSample(t *testing.T) {
	// Exact normal order statistics: as close to normal as a sample gets.
	n := 20
	data := make([]float64, n)
	for i := range data {
		data[i] = distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
	}

	w, p, err := ShapiroWilk(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w < 0.95 || w > 1 {
		t.Errorf("W = %g, want close to 1", w)
	}
	if p <= 0.05 {
		t.Errorf("p = %g, normal sample should not be rejected", p)
	}
}

func TestShapiroWilk_SkewedSample(t *testing.T) {
	data := []float64{1, 1, 1, 1, 2, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377, 610, 987, 1597}

	_, p, err := ShapiroWilk(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p >= 0.05 {
		t.Errorf("p = %g, heavily skewed sample should be rejected", p)
	}
}

func TestShapiroWilk_SmallSample(t *testing.T) {
	data := []float64{2, 3, 4}
	w, p, err := ShapiroWilk(data)
	if err != nil {
		t.Fatalf("n=3 should be testable: %v", err)
	}
	if math.IsNaN(w) || math.IsNaN(p) {
		t.Errorf("n=3 result should be defined: W=%g p=%g", w, p)
	}
	// Equally spaced points maximize W at n=3.
	if p < 0.5 {
		t.Errorf("p = %g, symmetric triple should look normal", p)
	}
}

func TestShapiroWilk_Degenerate(t *testing.T) {
	if _, _, err := ShapiroWilk([]float64{1, 2}); !errors.IsDegenerate(err) {
		t.Errorf("n=2 should be degenerate, got %v", err)
	}
	if _, _, err := ShapiroWilk([]float64{5, 5, 5, 5}); !errors.IsDegenerate(err) {
		t.Errorf("constant sample should be degenerate, got %v", err)
	}
}
