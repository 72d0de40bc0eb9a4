package histo

import "math"

// RadarTable is the wide matrix consumed by the radar renderer: one column
// per Region, rows ordered [Max, Min, age groups ascending]. The Max and
// Min rows are synthetic scaling bounds, not observations.
type RadarTable struct {
	Regions   []string
	RowLabels []string
	rows      [][]float64
}

// RadarRowMax and RadarRowMin label the two synthetic bound rows.
const (
	RadarRowMax = "Max"
	RadarRowMin = "Min"
)

// BuildRadarTable pivots the per-(Age, Region) central-tendency values
// into wide format. Ages follow their natural numeric order, regions the
// given column order. Missing cells are NaN.
func BuildRadarTable(ages []AgeLevel, regions []string, values map[GroupKey]float64) *RadarTable {
	max := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}

	t := &RadarTable{
		Regions:   append([]string(nil), regions...),
		RowLabels: make([]string, 0, len(ages)+2),
		rows:      make([][]float64, 0, len(ages)+2),
	}

	bound := func(v float64) []float64 {
		row := make([]float64, len(regions))
		for i := range row {
			row[i] = v
		}
		return row
	}
	t.RowLabels = append(t.RowLabels, RadarRowMax, RadarRowMin)
	t.rows = append(t.rows, bound(max), bound(0))

	for _, age := range ages {
		row := make([]float64, len(regions))
		for i, region := range regions {
			v, ok := values[GroupKey{Age: age.Label, Region: region}]
			if !ok {
				v = math.NaN()
			}
			row[i] = v
		}
		t.RowLabels = append(t.RowLabels, age.Label)
		t.rows = append(t.rows, row)
	}
	return t
}

// Values returns the bare numeric matrix; row order encodes
// [Max, Min, age groups...].
func (t *RadarTable) Values() [][]float64 {
	return t.rows
}

// Max returns the synthetic upper bound shared by all columns.
func (t *RadarTable) Max() float64 {
	if len(t.rows) == 0 || len(t.rows[0]) == 0 {
		return 0
	}
	return t.rows[0][0]
}

// Min returns the synthetic lower bound shared by all columns.
func (t *RadarTable) Min() float64 {
	if len(t.rows) < 2 || len(t.rows[1]) == 0 {
		return 0
	}
	return t.rows[1][0]
}

// AgeRows returns the data rows only, in age order, paired with labels.
func (t *RadarTable) AgeRows() (labels []string, rows [][]float64) {
	if len(t.rows) <= 2 {
		return nil, nil
	}
	return t.RowLabels[2:], t.rows[2:]
}
