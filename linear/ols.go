package linear

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/olsgo/core/model"
	"github.com/YuminosukeSato/olsgo/metrics"
	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const modelName = "OLS"

// OLS は正規方程式 w = (XᵀX)⁻¹Xᵀy で係数を求める最小二乗線形回帰モデル。
//
// 切片は推定しない（バイアスは常に 0）。切片が必要な場合は X に定数 1 の列を追加する。
// 内部でロックを取らないため、Fit と他の呼び出しの直列化は呼び出し側の責任。
// 学習済みのモデルに対する Predict 同士は並行に呼び出してよい。
type OLS struct {
	model.BaseEstimator
	weights []float64 // 重み（係数）。Fit 成功時に丸ごと置き換える
	bias    float64   // バイアス。常に 0
}

var (
	_ model.Regressor      = (*OLS)(nil)
	_ model.WeightExporter = (*OLS)(nil)
	_ fmt.Stringer         = (*OLS)(nil)
)

// NewOLS は特徴量数 numFeatures の未学習モデルを作成する。
// 重みは長さ numFeatures のゼロベクトルで初期化される。負の値はプログラムの誤りとして panic する。
func NewOLS(numFeatures int) *OLS {
	if numFeatures < 0 {
		panic(fmt.Sprintf("linear: negative feature count %d", numFeatures))
	}
	return &OLS{
		weights: make([]float64, numFeatures),
	}
}

// Fit はモデルを訓練データで学習させる。
//
// X の行数と y の長さが異なる場合は DimensionMismatch、X の列が線形従属で
// グラム行列 XᵀX が逆行列を持たない場合は SingularMatrix を返す。列のスケールの違いだけでは
// SingularMatrix にならない。失敗した場合、重み・バイアス・
// 学習済みフラグはいずれも呼び出し前の値のまま残る。
//
// 重みの長さは X の列数になる。コンストラクタの特徴量数とは照合しない。
func (o *OLS) Fit(X mat.Matrix, y mat.Vector) (err error) {
	defer errors.Recover(&err, "OLS.Fit")

	r, c := X.Dims()
	if n := y.Len(); r != n {
		return errors.NewDimensionMismatchError("OLS.Fit", r, n)
	}
	if r == 0 || c == 0 {
		return errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}

	weights, err := solveNormalEquations(X, y)
	if err != nil {
		return err
	}

	// ここまで到達した場合のみ状態を更新する
	o.weights = weights
	o.bias = 0
	o.SetFitted()

	return nil
}

// solveNormalEquations は (XᵀX)⁻¹Xᵀy を計算する。
//
// グラム行列 G は対角スケーリング S = D^-1/2 G D^-1/2 (D = diag(G)) してから
// LU 分解で逆行列を求め、G⁻¹ = D^-1/2 S⁻¹ D^-1/2 とする。列のスケールの違いは
// 条件数に含まれないため、特異性の判定は列同士の線形従属だけを見る。
// 対角成分が 0 の列（全要素 0）、S が完全に特異な場合、S の条件数が
// mat.ConditionTolerance を超える場合を SingularMatrix とする。
func solveNormalEquations(X mat.Matrix, y mat.Vector) ([]float64, error) {
	_, c := X.Dims()

	var xt mat.Dense
	xt.CloneFrom(X.T())

	// グラム行列 G = XᵀX (c×c)
	var gram mat.Dense
	gram.Mul(&xt, X)

	scale := make([]float64, c)
	for j := 0; j < c; j++ {
		d := gram.At(j, j)
		if d == 0 {
			return nil, errors.NewSingularMatrixError("OLS.Fit", c, math.Inf(1))
		}
		scale[j] = 1 / math.Sqrt(d)
	}

	scaled := mat.NewDense(c, c, nil)
	scaled.Apply(func(i, j int, v float64) float64 {
		return v * scale[i] * scale[j]
	}, &gram)

	var scaledInv mat.Dense
	if err := scaledInv.Inverse(scaled); err != nil {
		cond := math.Inf(1)
		var ce mat.Condition
		if errors.As(err, &ce) {
			cond = float64(ce)
		}
		return nil, errors.NewSingularMatrixError("OLS.Fit", c, cond)
	}

	var xty mat.VecDense
	xty.MulVec(&xt, y)

	// w = D^-1/2 S⁻¹ D^-1/2 Xᵀy
	z := mat.NewVecDense(c, nil)
	for j := 0; j < c; j++ {
		z.SetVec(j, xty.AtVec(j)*scale[j])
	}

	w := mat.NewVecDense(c, nil)
	w.MulVec(&scaledInv, z)
	for j := 0; j < c; j++ {
		w.SetVec(j, w.AtVec(j)*scale[j])
	}

	return w.RawVector().Data, nil
}

// Predict は入力データの各行に対する予測値 X·w + bias を行順に返す。
//
// 未学習の場合は NotFitted を、X の列数が重みの長さと異なる場合は
// FeatureDimensionMismatch を返す。未学習の判定が先に行われる。
func (o *OLS) Predict(X mat.Matrix) (_ *mat.VecDense, err error) {
	defer errors.Recover(&err, "OLS.Predict")

	if !o.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "Predict")
	}

	r, c := X.Dims()
	if c != len(o.weights) {
		return nil, errors.NewFeatureDimensionMismatchError("OLS.Predict", len(o.weights), c)
	}

	// weights は読み取りのみ
	w := mat.NewVecDense(c, o.weights)
	predictions := mat.NewVecDense(r, nil)
	predictions.MulVec(X, w)

	if o.bias != 0 {
		for i := 0; i < r; i++ {
			predictions.SetVec(i, predictions.AtVec(i)+o.bias)
		}
	}

	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算する
func (o *OLS) Score(X mat.Matrix, y mat.Vector) (float64, error) {
	if !o.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "Score")
	}

	yPred, err := o.Predict(X)
	if err != nil {
		return 0, err
	}

	if yPred.Len() != y.Len() {
		return 0, errors.NewDimensionMismatchError("OLS.Score", yPred.Len(), y.Len())
	}

	return metrics.R2Score(mat.VecDenseCopyOf(y), yPred)
}

// Weights は現在の重みのコピーを返す
func (o *OLS) Weights() []float64 {
	weights := make([]float64, len(o.weights))
	copy(weights, o.weights)
	return weights
}

// Bias はバイアスを返す（常に 0）
func (o *OLS) Bias() float64 {
	return o.bias
}

// NFeatures は Predict が受け付ける列数を返す
func (o *OLS) NFeatures() int {
	return len(o.weights)
}

// ExportWeights は学習済みの重みのスナップショットを返す。
// 読み込んで学習済み状態に戻す経路は提供しない。
func (o *OLS) ExportWeights() (*model.ModelWeights, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, "ExportWeights")
	}

	return &model.ModelWeights{
		ModelType:    modelName,
		Version:      model.WeightsFormatVersion,
		Coefficients: o.Weights(),
		Intercept:    o.bias,
		NFeatures:    len(o.weights),
		IsFitted:     true,
	}, nil
}

// String は診断用の文字列表現を返す。機械的な解析は想定しない。
func (o *OLS) String() string {
	parts := make([]string, len(o.weights))
	for i, w := range o.weights {
		parts[i] = formatFloat(w)
	}
	return fmt.Sprintf("%s(weights=[%s], bias=%s, is_fitted=%t)",
		modelName, strings.Join(parts, ", "), formatFloat(o.bias), o.IsFitted())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
