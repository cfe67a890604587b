package main

import (
	"strings"
	"testing"

	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTraining(t *testing.T) {
	data := "c,x,y\n1,1,3\n1, 2,5\n# comment\n1,3,7\n"

	ds, err := LoadTraining(strings.NewReader(data), true)
	require.NoError(t, err)

	r, c := ds.X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 2.0, ds.X.At(1, 1))
	assert.Equal(t, []float64{3, 5, 7}, ds.Y.RawVector().Data)
	assert.Equal(t, []string{"c", "x"}, ds.Header)
}

func TestLoadTrainingWithoutHeader(t *testing.T) {
	ds, err := LoadTraining(strings.NewReader("1,2\n3,4\n"), false)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Y.Len())
	assert.Nil(t, ds.Header)
}

func TestLoadTrainingErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		check func(t *testing.T, err error)
	}{
		{
			name: "header only",
			data: "x,y\n",
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, errors.ErrEmptyData))
			},
		},
		{
			name: "no feature column",
			data: "y\n1\n2\n",
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				require.True(t, errors.As(err, &valErr))
				assert.Equal(t, "train", valErr.ParamName)
			},
		},
		{
			name: "not a number",
			data: "x,y\n1,2\n1,abc\n",
			check: func(t *testing.T, err error) {
				var valueErr *errors.ValueError
				require.True(t, errors.As(err, &valueErr))
				assert.Contains(t, err.Error(), `"abc"`)
			},
		},
		{
			name: "non-finite value",
			data: "x,y\n1,2\n2,NaN\n",
			check: func(t *testing.T, err error) {
				var numErr *errors.NumericalInstabilityError
				require.True(t, errors.As(err, &numErr))
				assert.Equal(t, 1, numErr.Row)
			},
		},
		{
			name: "ragged rows",
			data: "a,b,y\n1,2,3\n1,2\n",
			check: func(t *testing.T, err error) {
				var valErr *errors.ValidationError
				require.True(t, errors.As(err, &valErr))
				assert.Equal(t, "X[1]", valErr.ParamName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTraining(strings.NewReader(tt.data), true)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoadFeatures(t *testing.T) {
	X, err := LoadFeatures(strings.NewReader("c,x\n1,5\n1,6\n"), true)
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)

	_, err = LoadFeatures(strings.NewReader("c,x\n1,+Inf\n"), true)
	var numErr *errors.NumericalInstabilityError
	assert.True(t, errors.As(err, &numErr))
}
