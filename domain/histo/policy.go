package histo

// DecideCentralTendency applies the single global representative-statistic
// rule: mean only when every group across the whole dataset is classified
// normal; otherwise median for all groups uniformly. Groups whose normality
// test was degenerate count as non-normal.
func DecideCentralTendency(rows []ShapiroRow) CentralTendency {
	if len(rows) == 0 {
		return TendencyMedian
	}
	for _, row := range rows {
		if !row.Normal {
			return TendencyMedian
		}
	}
	return TendencyMean
}

// Representative picks the policy's statistic from a descriptive row.
func Representative(row DescriptiveRow, policy CentralTendency) float64 {
	if policy == TendencyMean {
		return row.Mean
	}
	return row.Median
}
