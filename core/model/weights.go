package model

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// WeightsFormatVersion は ModelWeights の JSON 形式のバージョン
const WeightsFormatVersion = "1.0"

// ModelWeights はモデルの重みのスナップショット（診断・再現性確認用）
type ModelWeights struct {
	// ModelType はモデルの種類（OLS等）
	ModelType string `json:"model_type"`

	// Version は形式のバージョン
	Version string `json:"version"`

	// Coefficients は重み係数
	Coefficients []float64 `json:"coefficients"`

	// Intercept は切片（OLS では常に 0）
	Intercept float64 `json:"intercept"`

	// NFeatures は特徴量の数
	NFeatures int `json:"n_features"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(mw, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal model weights")
	}
	return data, nil
}

// FromJSON はJSON形式からModelWeightsをデシリアライズし、検証する
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Wrap(err, "failed to unmarshal model weights")
	}
	return mw.Validate()
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", len(mw.Coefficients))
	}
	if len(mw.Coefficients) != mw.NFeatures {
		return errors.NewValidationError("n_features", fmt.Sprintf("must equal len(coefficients)=%d", len(mw.Coefficients)), mw.NFeatures)
	}
	if err := errors.CheckNumericalStability("ModelWeights.Validate", mw.Coefficients, 0); err != nil {
		return err
	}
	return errors.CheckNumericalStability("ModelWeights.Validate", []float64{mw.Intercept}, 0)
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := *mw
	clone.Coefficients = make([]float64, len(mw.Coefficients))
	copy(clone.Coefficients, mw.Coefficients)
	return &clone
}

// Hash は係数と切片の IEEE-754 ビット列から xxhash64 を計算する。
// 同じ入力で Fit した結果がビット単位で一致するかの確認に使う。
func (mw *ModelWeights) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(mw.ModelType)

	buf := make([]byte, 0, 8*(len(mw.Coefficients)+2))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(mw.NFeatures))
	for _, c := range mw.Coefficients {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c))
	}
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(mw.Intercept))
	_, _ = d.Write(buf)

	return d.Sum64()
}

// HashString は Hash を16桁の16進文字列で返す
func (mw *ModelWeights) HashString() string {
	return fmt.Sprintf("%016x", mw.Hash())
}
