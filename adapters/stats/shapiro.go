package stats

import (
	"math"
	"sort"

	"axostats/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroWilk tests the null hypothesis that data is drawn from a normal
// distribution, following Royston's AS R94 approximation. Valid for
// 3 <= n <= 5000; smaller or constant samples are degenerate.
func ShapiroWilk(data []float64) (w, p float64, err error) {
	n := len(data)
	if n < 3 {
		return math.NaN(), math.NaN(), errors.DegenerateGroup("shapiro", "needs at least 3 observations")
	}
	if n > 5000 {
		return math.NaN(), math.NaN(), errors.DegenerateGroup("shapiro", "approximation invalid above n=5000")
	}

	x := make([]float64, n)
	copy(x, data)
	sort.Float64s(x)
	if x[0] == x[n-1] {
		return math.NaN(), math.NaN(), errors.DegenerateGroup("shapiro", "zero range")
	}

	a := shapiroWeights(n)

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	num, den := 0.0, 0.0
	for i, v := range x {
		num += a[i] * v
		d := v - mean
		den += d * d
	}
	w = num * num / den
	if w > 1 {
		w = 1
	}

	p = shapiroPValue(w, n)
	return w, p, nil
}

// shapiroWeights computes the expected-order-statistic weight vector a.
func shapiroWeights(n int) []float64 {
	norm := distuv.UnitNormal
	m := make([]float64, n)
	ssq := 0.0
	for i := 0; i < n; i++ {
		m[i] = norm.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		ssq += m[i] * m[i]
	}

	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
		return a
	}

	rsn := 1.0 / math.Sqrt(float64(n))
	an := poly([]float64{-2.706056, 4.434685, -2.071190, -0.147981, 0.221157, 0}, rsn) + m[n-1]/math.Sqrt(ssq)

	var phi float64
	var i1 int
	if n > 5 {
		an1 := poly([]float64{-3.582633, 5.682633, -1.752461, -0.293762, 0.042981, 0}, rsn) + m[n-2]/math.Sqrt(ssq)
		phi = (ssq - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) / (1 - 2*an*an - 2*an1*an1)
		a[n-1], a[n-2] = an, an1
		a[0], a[1] = -an, -an1
		i1 = 2
	} else {
		phi = (ssq - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
		a[n-1] = an
		a[0] = -an
		i1 = 1
	}

	sp := math.Sqrt(phi)
	for i := i1; i < n-i1; i++ {
		a[i] = m[i] / sp
	}
	return a
}

// shapiroPValue converts W into an upper-tail p-value using Royston's
// normalizing transformations.
func shapiroPValue(w float64, n int) float64 {
	norm := distuv.UnitNormal
	switch {
	case n == 3:
		// Exact small-sample distribution.
		p := (6.0 / math.Pi) * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return clamp01(p)
	case n <= 11:
		fn := float64(n)
		gamma := 0.459*fn - 2.273
		lw := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 - 0.39978*fn + 0.025054*fn*fn - 0.0006714*fn*fn*fn
		sigma := math.Exp(1.3822 - 0.77857*fn + 0.062767*fn*fn - 0.0020322*fn*fn*fn)
		return clamp01(1 - norm.CDF((lw-mu)/sigma))
	default:
		ln := math.Log(float64(n))
		lw := math.Log(1 - w)
		mu := -1.5861 - 0.31082*ln - 0.083751*ln*ln + 0.0038915*ln*ln*ln
		sigma := math.Exp(-0.4803 - 0.082676*ln + 0.0030302*ln*ln)
		return clamp01(1 - norm.CDF((lw-mu)/sigma))
	}
}

// poly evaluates a polynomial with coefficients ordered from the highest
// power down to the constant term.
func poly(coefs []float64, x float64) float64 {
	result := 0.0
	for _, c := range coefs {
		result = result*x + c
	}
	return result
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
