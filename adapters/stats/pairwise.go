package stats

import (
	"math"
	"math/rand"
	"sort"

	"axostats/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// MannWhitneyU runs the two-sided Wilcoxon rank-sum test using the normal
// approximation with tie and continuity corrections. The statistic is the
// U of the first sample.
func MannWhitneyU(x, y []float64) (u float64, p float64, err error) {
	n1, n2 := float64(len(x)), float64(len(y))
	if n1 == 0 || n2 == 0 {
		return math.NaN(), math.NaN(), errors.DegenerateGroup("mann-whitney", "empty sample")
	}

	pooled := make([]float64, 0, len(x)+len(y))
	pooled = append(pooled, x...)
	pooled = append(pooled, y...)
	ranks, tieSum := midranks(pooled)

	r1 := 0.0
	for i := range x {
		r1 += ranks[i]
	}
	u = r1 - n1*(n1+1)/2

	n := n1 + n2
	mu := n1 * n2 / 2
	variance := n1 * n2 / 12 * ((n + 1) - tieSum/(n*(n-1)))
	if variance <= 0 {
		return u, math.NaN(), errors.DegenerateGroup("mann-whitney", "all values identical")
	}

	// Continuity correction toward the mean.
	d := u - mu
	switch {
	case d > 0:
		d -= 0.5
	case d < 0:
		d += 0.5
	}
	z := d / math.Sqrt(variance)
	p = clamp01(2 * (1 - distuv.UnitNormal.CDF(math.Abs(z))))
	return u, p, nil
}

// KolmogorovSmirnov runs the two-sample KS test. D is the maximum distance
// between the empirical CDFs; the p-value uses the asymptotic Kolmogorov
// distribution.
func KolmogorovSmirnov(x, y []float64) (d float64, p float64, err error) {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return math.NaN(), math.NaN(), errors.DegenerateGroup("kolmogorov-smirnov", "empty sample")
	}

	xs := make([]float64, n1)
	copy(xs, x)
	sort.Float64s(xs)
	ys := make([]float64, n2)
	copy(ys, y)
	sort.Float64s(ys)

	var i, j int
	for i < n1 && j < n2 {
		v := math.Min(xs[i], ys[j])
		for i < n1 && xs[i] <= v {
			i++
		}
		for j < n2 && ys[j] <= v {
			j++
		}
		dist := math.Abs(float64(i)/float64(n1) - float64(j)/float64(n2))
		if dist > d {
			d = dist
		}
	}

	ne := float64(n1) * float64(n2) / float64(n1+n2)
	lambda := (math.Sqrt(ne) + 0.12 + 0.11/math.Sqrt(ne)) * d
	p = clamp01(ksProbability(lambda))
	return d, p, nil
}

// ksProbability evaluates the Kolmogorov survival function
// Q(lambda) = 2 * sum_{j>=1} (-1)^{j-1} exp(-2 j^2 lambda^2).
func ksProbability(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j*j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	return 2 * sum
}

// Jitterer breaks exact-zero ties for the KS computation by adding a
// uniform draw from a very small positive interval. It always works on a
// copy; the source values (and the Mann-Whitney input) stay untouched.
type Jitterer struct {
	lo, hi float64
	rng    *rand.Rand
}

// NewJitterer creates a jitterer over (lo, hi). Seed 0 picks a random
// seed; pass a fixed seed for reproducible runs.
func NewJitterer(lo, hi float64, seed int64) *Jitterer {
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Jitterer{lo: lo, hi: hi, rng: rand.New(rand.NewSource(seed))}
}

// JitterZeros returns a copy of values with every exact zero replaced by a
// draw from the configured interval.
func (j *Jitterer) JitterZeros(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	for i, v := range out {
		if v == 0 {
			out[i] = j.lo + j.rng.Float64()*(j.hi-j.lo)
		}
	}
	return out
}
