package stats

import (
	"testing"

	"axostats/internal/errors"
)

func TestMannWhitneyU_IdenticalSamples(t *testing.T) {
	x := seq(1, 10)
	u, p, err := MannWhitneyU(x, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u != 50 {
		t.Errorf("U = %g, want n1*n2/2 = 50", u)
	}
	if p < 0.99 {
		t.Errorf("p = %g, identical samples should not differ", p)
	}
}

func TestMannWhitneyU_SeparatedSamples(t *testing.T) {
	_, p, err := MannWhitneyU(seq(1, 10), seq(101, 110))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p >= 0.01 {
		t.Errorf("p = %g, disjoint samples should differ", p)
	}
}

func TestMannWhitneyU_Degenerate(t *testing.T) {
	if _, _, err := MannWhitneyU(nil, seq(1, 5)); !errors.IsDegenerate(err) {
		t.Errorf("empty sample should be degenerate, got %v", err)
	}
	if _, _, err := MannWhitneyU([]float64{2, 2}, []float64{2, 2}); !errors.IsDegenerate(err) {
		t.Errorf("constant pooled data should be degenerate, got %v", err)
	}
}

func TestKolmogorovSmirnov(t *testing.T) {
	t.Run("disjoint samples", func(t *testing.T) {
		d, p, err := KolmogorovSmirnov(seq(1, 10), seq(101, 110))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != 1 {
			t.Errorf("D = %g, want 1 for disjoint supports", d)
		}
		if p >= 0.01 {
			t.Errorf("p = %g, want < 0.01", p)
		}
	})

	t.Run("identical samples", func(t *testing.T) {
		x := seq(1, 20)
		d, p, err := KolmogorovSmirnov(x, x)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != 0 {
			t.Errorf("D = %g, want 0", d)
		}
		if p < 0.999 {
			t.Errorf("p = %g, want ~1", p)
		}
	})

	t.Run("empty sample", func(t *testing.T) {
		if _, _, err := KolmogorovSmirnov(nil, seq(1, 5)); !errors.IsDegenerate(err) {
			t.Errorf("empty sample should be degenerate, got %v", err)
		}
	})
}

func TestJitterer_IsolatesSource(t *testing.T) {
	source := []float64{0, 1.5, 0, 2}
	j := NewJitterer(1e-10, 1e-9, 42)

	out := j.JitterZeros(source)

	// Source untouched; zeros stay exactly zero outside the KS copy.
	if source[0] != 0 || source[2] != 0 {
		t.Errorf("source zeros were modified: %v", source)
	}
	for i, v := range out {
		if source[i] != 0 {
			if v != source[i] {
				t.Errorf("non-zero value %d changed: %g -> %g", i, source[i], v)
			}
			continue
		}
		if v <= 0 || v < 1e-10 || v > 1e-9 {
			t.Errorf("jittered value %d = %g outside (1e-10, 1e-9)", i, v)
		}
	}

	// Same seed, same draws.
	again := NewJitterer(1e-10, 1e-9, 42).JitterZeros(source)
	for i := range out {
		if out[i] != again[i] {
			t.Errorf("seeded jitter should be reproducible at %d: %g vs %g", i, out[i], again[i])
		}
	}
}
