package stats

import (
	"math"
	"sort"

	"axostats/internal/errors"

	"gonum.org/v1/gonum/stat/distuv"
)

// KruskalWallis runs the non-parametric omnibus test for differences among
// k independent groups, with tie correction. Fewer than two non-empty
// groups, or an empty group, is a degenerate case.
func KruskalWallis(groups [][]float64) (h float64, df int, p float64, err error) {
	k := len(groups)
	if k < 2 {
		return math.NaN(), 0, math.NaN(), errors.DegenerateGroup("kruskal-wallis", "needs at least 2 groups")
	}
	total := 0
	for _, g := range groups {
		if len(g) == 0 {
			return math.NaN(), 0, math.NaN(), errors.DegenerateGroup("kruskal-wallis", "empty group")
		}
		total += len(g)
	}

	pooled := make([]float64, 0, total)
	for _, g := range groups {
		pooled = append(pooled, g...)
	}
	ranks, tieSum := midranks(pooled)

	fn := float64(total)
	h = 0.0
	offset := 0
	for _, g := range groups {
		rankSum := 0.0
		for i := range g {
			rankSum += ranks[offset+i]
		}
		h += rankSum * rankSum / float64(len(g))
		offset += len(g)
	}
	h = 12.0/(fn*(fn+1))*h - 3*(fn+1)

	// Tie correction
	c := 1 - tieSum/(fn*fn*fn-fn)
	if c <= 0 {
		return math.NaN(), 0, math.NaN(), errors.DegenerateGroup("kruskal-wallis", "all values identical")
	}
	h /= c

	df = k - 1
	chi := distuv.ChiSquared{K: float64(df)}
	p = clamp01(1 - chi.CDF(h))
	return h, df, p, nil
}

// DunnComparison is one pairwise z comparison between group indexes i < j.
type DunnComparison struct {
	I, J      int
	Z         float64
	P         float64
	PAdjusted float64
}

// DunnTest runs Dunn's pairwise post-hoc over all group pairs with
// Bonferroni adjustment scoped to the C(k,2) comparisons of this family.
func DunnTest(groups [][]float64) ([]DunnComparison, error) {
	k := len(groups)
	if k < 2 {
		return nil, errors.DegenerateGroup("dunn", "needs at least 2 groups")
	}
	total := 0
	for _, g := range groups {
		if len(g) == 0 {
			return nil, errors.DegenerateGroup("dunn", "empty group")
		}
		total += len(g)
	}

	pooled := make([]float64, 0, total)
	for _, g := range groups {
		pooled = append(pooled, g...)
	}
	ranks, tieSum := midranks(pooled)

	meanRanks := make([]float64, k)
	offset := 0
	for gi, g := range groups {
		sum := 0.0
		for i := range g {
			sum += ranks[offset+i]
		}
		meanRanks[gi] = sum / float64(len(g))
		offset += len(g)
	}

	fn := float64(total)
	base := fn*(fn+1)/12 - tieSum/(12*(fn-1))
	m := k * (k - 1) / 2
	norm := distuv.UnitNormal

	comparisons := make([]DunnComparison, 0, m)
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			se := math.Sqrt(base * (1/float64(len(groups[i])) + 1/float64(len(groups[j]))))
			z := math.NaN()
			p := math.NaN()
			if se > 0 {
				z = (meanRanks[i] - meanRanks[j]) / se
				p = clamp01(2 * (1 - norm.CDF(math.Abs(z))))
			}
			adj := math.NaN()
			if !math.IsNaN(p) {
				adj = math.Min(1, p*float64(m))
			}
			comparisons = append(comparisons, DunnComparison{I: i, J: j, Z: z, P: p, PAdjusted: adj})
		}
	}
	return comparisons, nil
}

// midranks assigns average ranks to the values (1-based), returning the
// rank per input position and the tie term sum(t^3 - t).
func midranks(values []float64) (ranks []float64, tieSum float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks = make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Average rank over the tie run [i, j].
		avg := float64(i+j)/2 + 1
		for t := i; t <= j; t++ {
			ranks[order[t]] = avg
		}
		if runLen := float64(j - i + 1); runLen > 1 {
			tieSum += runLen*runLen*runLen - runLen
		}
		i = j + 1
	}
	return ranks, tieSum
}
