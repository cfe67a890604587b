package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/YuminosukeSato/olsgo/core/model"
	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"github.com/YuminosukeSato/olsgo/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// y = 1 + 2x。c は切片用の定数列
const trainCSV = "c,x,y\n1,1,3\n1,2,5\n1,3,7\n1,4,9\n"

func TestRunFitAndPredict(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.csv", trainCSV)
	pred := writeFile(t, dir, "new.csv", "c,x\n1,5\n1,0\n")
	weights := filepath.Join(dir, "weights.json")

	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-train", train,
		"-predict", pred,
		"-weights-out", weights,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "OLS(weights=["))
	assert.True(t, strings.HasSuffix(lines[0], "bias=0, is_fitted=true)"))
	assert.True(t, strings.HasPrefix(lines[1], "r2=1.000000 "))

	p0, err := strconv.ParseFloat(lines[2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 11.0, p0, 1e-9)
	p1, err := strconv.ParseFloat(lines[3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, p1, 1e-9)

	data, err := os.ReadFile(weights)
	require.NoError(t, err)
	var mw model.ModelWeights
	require.NoError(t, mw.FromJSON(data))
	assert.Equal(t, "OLS", mw.ModelType)
	assert.InDeltaSlice(t, []float64{1, 2}, mw.Coefficients, 1e-9)

	logs := stderr.String()
	assert.Contains(t, logs, `"message":"fit completed"`)
	assert.Contains(t, logs, `"`+log.WeightHashKey+`":"`+mw.HashString()+`"`)
	assert.Contains(t, logs, `"`+log.PredsKey+`":2`)
}

func TestRunSlogBackend(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.csv", trainCSV)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-train", train, "-log-backend", "slog"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stderr.String(), `"severity":"INFO"`)
	assert.Contains(t, stderr.String(), `"message":"fit completed"`)
}

func TestRunWritesPlot(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.csv", trainCSV)
	plotPath := filepath.Join(dir, "fit.svg")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-train", train, "-plot", plotPath}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	info, err := os.Stat(plotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunSingular(t *testing.T) {
	dir := t.TempDir()
	// x2 = 2 * x1
	train := writeFile(t, dir, "train.csv", "x1,x2,y\n1,2,1\n2,4,2\n3,6,3\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-train", train}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())

	logs := stderr.String()
	assert.Contains(t, logs, `"message":"olsfit failed"`)
	assert.Contains(t, logs, `"`+log.ErrorCodeKey+`":"`+log.ErrorSingularMatrix+`"`)
	assert.Contains(t, logs, log.SuggestionKey)
}

func TestRunFeatureCountMismatch(t *testing.T) {
	dir := t.TempDir()
	train := writeFile(t, dir, "train.csv", trainCSV)

	t.Run("features flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-train", train, "-features", "3"}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), log.ErrorFeatureDimensionMismatch)
	})

	t.Run("prediction file", func(t *testing.T) {
		pred := writeFile(t, dir, "new.csv", "a,b,c\n1,2,3\n")
		var stdout, stderr bytes.Buffer
		code := run([]string{"-train", train, "-predict", pred}, &stdout, &stderr)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), log.ErrorFeatureDimensionMismatch)
	})
}

func TestRunUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-log-backend", "logrus", "-train", "x.csv"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "log-backend")

	stderr.Reset()
	assert.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr))
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-train", filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "open training data")
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.NewNotFittedError("OLS", "Predict"), log.ErrorNotFitted},
		{errors.NewDimensionMismatchError("OLS.Fit", 3, 2), log.ErrorDimensionMismatch},
		{errors.NewModelError("readRecords", "no data rows", errors.ErrEmptyData), log.ErrorEmptyData},
		{errors.NewValidationError("X[1]", "ragged rows", 1), log.ErrorInvalidInput},
		{errors.Wrap(errors.NewValueError("parseRecord", "bad"), "load"), log.ErrorInvalidInput},
		{errors.New("boom"), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errorCode(tt.err), tt.err.Error())
	}
}

func TestSavePredictionPlotErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fit.png")
	assert.Error(t, SavePredictionPlot(path, []float64{1, 2}, []float64{1}))
	assert.True(t, errors.Is(SavePredictionPlot(path, nil, nil), errors.ErrEmptyData))
}
