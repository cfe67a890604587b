// Package metrics は回帰モデルの評価指標を提供する
package metrics

import (
	"math"

	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// checkPair は2つのベクトルが空でなく同じ長さであることを検証し、長さを返す
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.IsEmpty() {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.IsEmpty() || yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する。
// yTrue の分散が 0 の場合は定義できないためエラーを返す。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	values := mat.Col(nil, 0, yTrue)
	estimates := mat.Col(nil, 0, yPred)

	mean := floats.Sum(values) / float64(n)
	var tss float64
	for _, v := range values {
		tss += (v - mean) * (v - mean)
	}
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	return stat.RSquaredFrom(estimates, values, nil), nil
}

// ResidualSummary は残差 yTrue - yPred の平均と標準偏差
type ResidualSummary struct {
	Mean float64
	Std  float64
}

// Residuals は残差 yTrue - yPred を新しいスライスとして返す
func Residuals(yTrue, yPred *mat.VecDense) ([]float64, error) {
	if _, err := checkPair("Residuals", yTrue, yPred); err != nil {
		return nil, err
	}

	residuals := mat.Col(nil, 0, yTrue)
	floats.Sub(residuals, mat.Col(nil, 0, yPred))
	return residuals, nil
}

// SummarizeResiduals は残差の平均と標本標準偏差を計算する。
// 要素が1つの場合、標準偏差は 0 とする。
func SummarizeResiduals(yTrue, yPred *mat.VecDense) (ResidualSummary, error) {
	residuals, err := Residuals(yTrue, yPred)
	if err != nil {
		return ResidualSummary{}, err
	}

	if len(residuals) == 1 {
		return ResidualSummary{Mean: residuals[0]}, nil
	}

	mean, std := stat.MeanStdDev(residuals, nil)
	return ResidualSummary{Mean: mean, Std: std}, nil
}
