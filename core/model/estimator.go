package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X mat.Matrix, y mat.Vector) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データの各行に対する予測値を行順に返す
	Predict(X mat.Matrix) (*mat.VecDense, error)
}

// Scorer は決定係数を計算できるモデルのインターフェース
type Scorer interface {
	Score(X mat.Matrix, y mat.Vector) (float64, error)
}

// LinearModel は線形モデルのインターフェース
type LinearModel interface {
	// Weights は学習された重み（係数）のコピーを返す
	Weights() []float64
	// Bias はバイアス項を返す
	Bias() float64
}

// WeightExporter は重みのスナップショットを出力できるモデルのインターフェース
type WeightExporter interface {
	ExportWeights() (*ModelWeights, error)
}

// Regressor は回帰モデルが満たすインターフェースの組み合わせ
type Regressor interface {
	Fitter
	Predictor
	Scorer
	LinearModel
	IsFitted() bool
}
