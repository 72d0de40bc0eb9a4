package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"axostats/domain/histo"
	"axostats/internal"
	"axostats/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Columns names the spreadsheet columns a dataset is built from.
type Columns struct {
	Age         string
	Region      string
	Measurement string
	Specimen    string // optional, empty to skip
}

// DataReader loads a rectangular Excel or CSV table into a histo.Dataset.
// The whole file is read into memory; there is no streaming path.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	columns  Columns
	log      *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files.
func NewDataReader(filePath string, columns Columns) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		columns:  columns,
		log:      internal.DefaultLogger,
	}
}

// ReadDataset reads the source table and maps it onto observations.
// Missing file or missing required columns are fatal input errors.
func (r *DataReader) ReadDataset() (*histo.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InputErrorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.InputErrorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.InputError("input must have a header row and at least one data row")
	}
	return r.buildDataset(rows)
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.InputFailure("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.InputFailure("failed to read Sheet1", err)
	}
	r.log.Debug("[DataReader] Excel file read in %.2fms (%d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.InputFailure("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.InputFailure("failed to read CSV file", err)
	}
	return rows, nil
}

// buildDataset resolves the configured columns against the header row and
// converts each data row into an observation. Row order is preserved;
// non-numeric measurement cells become NaN rather than dropping the row.
func (r *DataReader) buildDataset(rows [][]string) (*histo.Dataset, error) {
	header := rows[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	ageIdx, ok := index[r.columns.Age]
	if !ok {
		return nil, errors.InputErrorf("missing column %q", r.columns.Age)
	}
	regionIdx, ok := index[r.columns.Region]
	if !ok {
		return nil, errors.InputErrorf("missing column %q", r.columns.Region)
	}
	valueIdx, ok := index[r.columns.Measurement]
	if !ok {
		return nil, errors.InputErrorf("missing column %q", r.columns.Measurement)
	}
	specimenIdx := -1
	if r.columns.Specimen != "" {
		if idx, ok := index[r.columns.Specimen]; ok {
			specimenIdx = idx
		}
	}

	ds := &histo.Dataset{
		Measurement: r.columns.Measurement,
		Rows:        make([]histo.Observation, 0, len(rows)-1),
	}
	missing := 0
	for _, row := range rows[1:] {
		obs := histo.Observation{
			Age:    cell(row, ageIdx),
			Region: cell(row, regionIdx),
			Value:  math.NaN(),
		}
		if specimenIdx >= 0 {
			obs.Specimen = cell(row, specimenIdx)
		}
		if raw := cell(row, valueIdx); raw != "" {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				obs.Value = v
			} else {
				missing++
			}
		} else {
			missing++
		}
		ds.Rows = append(ds.Rows, obs)
	}

	r.log.Info("[DataReader] %s file processed (%d rows, %d missing %s values)",
		strings.ToUpper(r.fileType), len(ds.Rows), missing, r.columns.Measurement)
	return ds, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// String implements fmt.Stringer for log lines.
func (r *DataReader) String() string {
	return fmt.Sprintf("DataReader(%s:%s)", r.fileType, r.filePath)
}
