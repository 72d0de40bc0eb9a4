package histo

import (
	"testing"
)

func TestBuildRadarTable_ShapeAndBounds(t *testing.T) {
	ages := []AgeLevel{
		{Label: "4 months", Order: 4},
		{Label: "24 months", Order: 24},
		{Label: "48 months", Order: 48},
	}
	regions := []string{"dorsal", "ventral"}
	values := map[GroupKey]float64{
		{Age: "4 months", Region: "dorsal"}:   10,
		{Age: "4 months", Region: "ventral"}:  12,
		{Age: "24 months", Region: "dorsal"}:  8,
		{Age: "24 months", Region: "ventral"}: 19,
		{Age: "48 months", Region: "dorsal"}:  7,
		{Age: "48 months", Region: "ventral"}: 6,
	}

	table := BuildRadarTable(ages, regions, values)

	wantLabels := []string{RadarRowMax, RadarRowMin, "4 months", "24 months", "48 months"}
	if len(table.RowLabels) != 5 {
		t.Fatalf("got %d rows, want 5", len(table.RowLabels))
	}
	for i, label := range table.RowLabels {
		if label != wantLabels[i] {
			t.Errorf("row %d label = %q, want %q", i, label, wantLabels[i])
		}
	}

	matrix := table.Values()
	if len(matrix) != 5 || len(matrix[0]) != 2 {
		t.Fatalf("matrix shape = %dx%d, want 5x2", len(matrix), len(matrix[0]))
	}
	if table.Max() != 19 {
		t.Errorf("Max = %g, want 19", table.Max())
	}
	if table.Min() != 0 {
		t.Errorf("Min = %g, want 0", table.Min())
	}
	if matrix[2][0] != 10 || matrix[3][1] != 19 {
		t.Errorf("unexpected data rows: %v", matrix)
	}
}
