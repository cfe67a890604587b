package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/YuminosukeSato/olsgo/linear"
	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a training set read from CSV.
type Dataset struct {
	X      *mat.Dense
	Y      *mat.VecDense
	Header []string
}

// readRecords reads every record of r. Rows of differing length are passed
// through so that the matrix conversion can report the offending row.
func readRecords(r io.Reader, header bool) (records [][]string, names []string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err = cr.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(err, "read csv")
	}
	if header && len(records) > 0 {
		names, records = records[0], records[1:]
	}
	if len(records) == 0 {
		return nil, nil, errors.NewModelError("readRecords", "no data rows", errors.ErrEmptyData)
	}
	return records, names, nil
}

func parseRecord(record []string, line int) ([]float64, error) {
	values := make([]float64, len(record))
	for j, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.NewValueError("parseRecord",
				fmt.Sprintf("row %d, column %d: %q is not a number", line, j, field))
		}
		values[j] = v
	}
	return values, nil
}

// LoadTraining reads a training CSV whose last column is the target.
// NaN and ±Inf are rejected.
func LoadTraining(r io.Reader, header bool) (*Dataset, error) {
	records, names, err := readRecords(r, header)
	if err != nil {
		return nil, err
	}
	if len(records[0]) < 2 {
		return nil, errors.NewValidationError("train", "need at least one feature column and a target column", len(records[0]))
	}

	rows := make([][]float64, len(records))
	targets := make([]float64, len(records))
	for i, record := range records {
		values, err := parseRecord(record, i)
		if err != nil {
			return nil, err
		}
		if len(values) < 2 {
			return nil, errors.NewValidationError(fmt.Sprintf("train[%d]", i), "missing target column", len(values))
		}
		if err := errors.CheckNumericalStability("LoadTraining", values, i); err != nil {
			return nil, err
		}
		rows[i] = values[:len(values)-1]
		targets[i] = values[len(values)-1]
	}

	X, err := linear.DenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	y, err := linear.VecFromSlice(targets)
	if err != nil {
		return nil, err
	}

	if len(names) > 0 {
		names = names[:len(names)-1]
	}
	return &Dataset{X: X, Y: y, Header: names}, nil
}

// LoadFeatures reads a feature-only CSV for prediction.
func LoadFeatures(r io.Reader, header bool) (*mat.Dense, error) {
	records, _, err := readRecords(r, header)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(records))
	for i, record := range records {
		if rows[i], err = parseRecord(record, i); err != nil {
			return nil, err
		}
	}

	X, err := linear.DenseFromRows(rows)
	if err != nil {
		return nil, err
	}
	n, p := X.Dims()
	if err := errors.CheckMatrix("LoadFeatures", X, n, p); err != nil {
		return nil, err
	}
	return X, nil
}

func loadTrainingFile(path string, header bool) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open training data")
	}
	defer f.Close()

	return LoadTraining(f, header)
}

func loadFeatureFile(path string, header bool) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open prediction data")
	}
	defer f.Close()

	return LoadFeatures(f, header)
}
