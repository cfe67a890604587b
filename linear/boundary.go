package linear

import (
	"fmt"

	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DenseFromRows は行優先の二次元スライスから計画行列を作成する。
// すべての行は同じ長さでなければならない。入力スライスはコピーされる。
func DenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewModelError("DenseFromRows", "empty data", errors.ErrEmptyData)
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.NewValidationError(
				fmt.Sprintf("X[%d]", i),
				fmt.Sprintf("ragged rows: expected %d columns", cols),
				len(row),
			)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), cols, data), nil
}

// VecFromSlice はスライスのコピーからベクトルを作成する
func VecFromSlice(values []float64) (*mat.VecDense, error) {
	if len(values) == 0 {
		return nil, errors.NewModelError("VecFromSlice", "empty data", errors.ErrEmptyData)
	}

	data := make([]float64, len(values))
	copy(data, values)
	return mat.NewVecDense(len(data), data), nil
}

// FitRows は二次元スライスの X と y で Fit を行う。
// 行数と y の長さの不一致は、行の長さの検証より先に DimensionMismatch として報告する。
func (o *OLS) FitRows(x [][]float64, y []float64) error {
	if len(x) != len(y) {
		return errors.NewDimensionMismatchError("OLS.Fit", len(x), len(y))
	}

	X, err := DenseFromRows(x)
	if err != nil {
		return err
	}
	yVec, err := VecFromSlice(y)
	if err != nil {
		return err
	}

	return o.Fit(X, yVec)
}

// PredictRows は二次元スライスの X に対する予測値を返す。
// 未学習の判定は入力の変換より先に行う。
func (o *OLS) PredictRows(x [][]float64) ([]float64, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}

	X, err := DenseFromRows(x)
	if err != nil {
		return nil, err
	}

	predictions, err := o.Predict(X)
	if err != nil {
		return nil, err
	}

	return predictions.RawVector().Data, nil
}
