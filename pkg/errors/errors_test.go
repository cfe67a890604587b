package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "olsgo: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "olsgo: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)
			assert.Equal(t, tt.wantMsg, err.Error())

			// スタックトレースに呼び出し元のファイルが含まれる
			assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestEstimatorErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
		kind    Kind
	}{
		{
			name:    "dimension mismatch",
			err:     NewDimensionMismatchError("OLS.Fit", 3, 2),
			wantMsg: "olsgo: OLS.Fit: dimension mismatch: X has 3 rows, y has 2 elements",
			kind:    KindDimensionMismatch,
		},
		{
			name:    "not fitted",
			err:     NewNotFittedError("OLS", "Predict"),
			wantMsg: "olsgo: OLS: model must be fitted before making predictions. Call Fit() before using Predict()",
			kind:    KindNotFitted,
		},
		{
			name:    "feature dimension mismatch",
			err:     NewFeatureDimensionMismatchError("OLS.Predict", 2, 3),
			wantMsg: "olsgo: OLS.Predict: feature dimension mismatch: X has 3 columns, model expects 2 features",
			kind:    KindFeatureDimensionMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.NotEmpty(t, Suggestion(tt.err))
		})
	}
}

func TestSingularMatrixErrorMessage(t *testing.T) {
	exact := NewSingularMatrixError("OLS.Fit", 2, math.Inf(1))
	assert.Contains(t, exact.Error(), "matrix X^T X (2x2) is singular")
	assert.Contains(t, exact.Error(), "linearly dependent")
	assert.NotContains(t, exact.Error(), "condition number")

	ill := NewSingularMatrixError("OLS.Fit", 3, 4.5e17)
	assert.Contains(t, ill.Error(), "condition number 4.5e+17")
	assert.Equal(t, KindSingularMatrix, KindOf(ill))
}

func TestKindOfWrapped(t *testing.T) {
	base := NewSingularMatrixError("OLS.Fit", 2, math.Inf(1))
	wrapped := Wrapf(base, "fitting %s", "train.csv")

	assert.True(t, Is(wrapped, ErrSingularMatrix))
	assert.False(t, Is(wrapped, ErrNotFitted))
	assert.Equal(t, KindSingularMatrix, KindOf(wrapped))

	var singular *SingularMatrixError
	require.True(t, As(wrapped, &singular))
	assert.Equal(t, 2, singular.NFeatures)
}

func TestKindOfUnknown(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(New("boom")))
	assert.Equal(t, KindUnknown, KindOf(NewValueError("Op", "bad")))
	assert.Equal(t, "", Suggestion(New("boom")))
	assert.Equal(t, "UNKNOWN", KindUnknown.Code())
	assert.Equal(t, "Unknown", KindUnknown.String())
}

func TestKindCodes(t *testing.T) {
	assert.Equal(t, "DIMENSION_MISMATCH", KindDimensionMismatch.Code())
	assert.Equal(t, "SINGULAR_MATRIX", KindSingularMatrix.Code())
	assert.Equal(t, "NOT_FITTED", KindNotFitted.Code())
	assert.Equal(t, "FEATURE_DIMENSION_MISMATCH", KindFeatureDimensionMismatch.Code())
	assert.Equal(t, "FeatureDimensionMismatch", KindFeatureDimensionMismatch.String())
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var dimErr *DimensionMismatchError
	require.True(t, As(NewDimensionMismatchError("OLS.Fit", 4, 3), &dimErr))
	logger.Error().Object("error", dimErr).Msg("fit failed")

	out := buf.String()
	assert.Contains(t, out, `"rows":4`)
	assert.Contains(t, out, `"targets":3`)
	assert.Contains(t, out, `"type":"DimensionMismatchError"`)
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("MSE", 10, 9, 0)
	assert.Equal(t, "olsgo: MSE: dimension mismatch on axis 0 (rows). Expected 10, got 9", err.Error())

	var dimErr *DimensionError
	assert.True(t, As(err, &dimErr))
	assert.Equal(t, KindUnknown, KindOf(err))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("x", "ragged rows", 2)
	assert.Equal(t, "olsgo: validation failed for parameter 'x': ragged rows (got: 2)", err.Error())
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Predict", 10, 5)

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.True(t, strings.Contains(wrapped.Error(), "in Predict: expected 10, got 5"))
}

func TestCheckMatrix(t *testing.T) {
	rows := [][]float64{
		{1, 2},
		{3, math.NaN()},
		{math.Inf(1), 4},
	}
	m := sliceMatrix(rows)

	err := CheckMatrix("load", m, 3, 2)
	require.Error(t, err)

	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Equal(t, 1, numErr.Row)
	assert.Len(t, numErr.Values, 1)

	assert.NoError(t, CheckMatrix("load", sliceMatrix([][]float64{{1, 2}}), 1, 2))
}

func TestCheckNumericalStability(t *testing.T) {
	assert.NoError(t, CheckNumericalStability("weights", []float64{1, 2, 3}, 0))

	err := CheckNumericalStability("weights", []float64{1, math.Inf(-1)}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at row 7")
}

type sliceMatrix [][]float64

func (s sliceMatrix) At(i, j int) float64 { return s[i][j] }
