package calib

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/epifit/calibration-core/pkg/utils"
)

// TrainingRow is one day of observed data. The training file also carries
// a cumulative positives column, but only date and newpositives are
// consumed.
type TrainingRow struct {
	Date         time.Time
	NewPositives float64
}

// LoadTrainingData reads the observed case table. Expected columns:
// date, newpositives, positives (tab- or comma-delimited, header row).
func LoadTrainingData(path string) ([]TrainingRow, error) {
	records, header, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training data %s: %w", path, err)
	}

	dateCol, ok := header["date"]
	if !ok {
		return nil, fmt.Errorf("training data %s has no date column", path)
	}
	posCol, ok := header["newpositives"]
	if !ok {
		return nil, fmt.Errorf("training data %s has no newpositives column", path)
	}

	rows := make([]TrainingRow, 0, len(records))
	for i, record := range records {
		date, err := utils.ParseDate(record[dateCol])
		if err != nil {
			return nil, fmt.Errorf("training data %s row %d: %w", path, i+2, err)
		}
		value, err := strconv.ParseFloat(record[posCol], 64)
		if err != nil {
			return nil, fmt.Errorf("training data %s row %d: invalid newpositives %q", path, i+2, record[posCol])
		}
		rows = append(rows, TrainingRow{Date: date, NewPositives: value})
	}
	return rows, nil
}

// PrepareObservedSeries builds the daily observed series over the
// half-open range [first, last), filling any date missing from the
// training rows with zero.
func PrepareObservedSeries(rows []TrainingRow, first, last time.Time) []float64 {
	byDate := make(map[string]float64, len(rows))
	for _, row := range rows {
		byDate[utils.FormatDate(row.Date)] = row.NewPositives
	}

	series := make([]float64, 0, utils.DaysBetween(first, last))
	for _, d := range utils.DateRange(first, last) {
		series = append(series, byDate[utils.FormatDate(d)])
	}
	return series
}

// LoadParams reads the simulator parameter table. Expected columns:
// name, value.
func LoadParams(path string) (map[string]float64, error) {
	records, header, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params %s: %w", path, err)
	}

	nameCol, ok := header["name"]
	if !ok {
		return nil, fmt.Errorf("params %s has no name column", path)
	}
	valueCol, ok := header["value"]
	if !ok {
		return nil, fmt.Errorf("params %s has no value column", path)
	}

	params := make(map[string]float64, len(records))
	for i, record := range records {
		value, err := strconv.ParseFloat(record[valueCol], 64)
		if err != nil {
			return nil, fmt.Errorf("params %s row %d: invalid value %q", path, i+2, record[valueCol])
		}
		params[record[nameCol]] = value
	}
	return params, nil
}

// MergeDemographics overlays demographic-derived parameters onto the
// loaded parameter map; on a name collision the demographic value wins
func MergeDemographics(params, demographics map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(params)+len(demographics))
	for k, v := range params {
		merged[k] = v
	}
	for k, v := range demographics {
		merged[k] = v
	}
	return merged
}

// readTable reads a delimited file with a header row, returning the data
// records and a column-name index. The delimiter is taken from the header
// line: tab when present, comma otherwise.
func readTable(path string) ([][]string, map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	if i := bytes.IndexByte(data, '\n'); i < 0 && bytes.ContainsRune(data, '\t') ||
		i >= 0 && bytes.ContainsRune(data[:i], '\t') {
		reader.Comma = '\t'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("file is empty")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}
	return records[1:], header, nil
}
