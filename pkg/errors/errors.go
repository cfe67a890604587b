// Package errors はプロジェクト全体のエラーハンドリングを提供します。
// 推定器の失敗は4種類（DimensionMismatch, SingularMatrix, NotFitted,
// FeatureDimensionMismatch）に分類され、すべて呼び出し元に値として返されます。
package errors

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	エラー種別
//
// ===========================================================================

// Kind は推定器が返すエラーの種別です。
type Kind int

const (
	// KindUnknown は推定器の4種別のいずれにも該当しないエラーです。
	KindUnknown Kind = iota
	// KindDimensionMismatch は Fit で X の行数と y の長さが異なる場合です。
	KindDimensionMismatch
	// KindSingularMatrix は Fit でグラム行列が逆行列を持たない場合です。
	KindSingularMatrix
	// KindNotFitted は Fit 成功前に Predict が呼ばれた場合です。
	KindNotFitted
	// KindFeatureDimensionMismatch は Predict で X の列数が重みの長さと異なる場合です。
	KindFeatureDimensionMismatch
)

func (k Kind) String() string {
	switch k {
	case KindDimensionMismatch:
		return "DimensionMismatch"
	case KindSingularMatrix:
		return "SingularMatrix"
	case KindNotFitted:
		return "NotFitted"
	case KindFeatureDimensionMismatch:
		return "FeatureDimensionMismatch"
	default:
		return "Unknown"
	}
}

// Code はログ出力用の機械可読なエラーコードを返します。
func (k Kind) Code() string {
	switch k {
	case KindDimensionMismatch:
		return "DIMENSION_MISMATCH"
	case KindSingularMatrix:
		return "SINGULAR_MATRIX"
	case KindNotFitted:
		return "NOT_FITTED"
	case KindFeatureDimensionMismatch:
		return "FEATURE_DIMENSION_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// KindOf はラップされたエラーチェーンを辿り、エラー種別を判定します。
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrDimensionMismatch):
		return KindDimensionMismatch
	case errors.Is(err, ErrSingularMatrix):
		return KindSingularMatrix
	case errors.Is(err, ErrNotFitted):
		return KindNotFitted
	case errors.Is(err, ErrFeatureDimensionMismatch):
		return KindFeatureDimensionMismatch
	default:
		return KindUnknown
	}
}

// Suggestion はエラー種別ごとの対処方法を返します。
func Suggestion(err error) string {
	switch KindOf(err) {
	case KindDimensionMismatch:
		return "Provide exactly one target value per row of X"
	case KindSingularMatrix:
		return "Drop collinear or constant-duplicate columns, or add observations so that rows >= features"
	case KindNotFitted:
		return "Call Fit() successfully before Predict()"
	case KindFeatureDimensionMismatch:
		return "Pass X with the same number of columns used during Fit()"
	default:
		return ""
	}
}

// ===========================================================================
//
//	推定器のエラー型
//
// ===========================================================================

// DimensionMismatchError は Fit において X の行数と y の要素数が一致しない場合のエラーです。
type DimensionMismatchError struct {
	Op      string
	Rows    int
	Targets int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("olsgo: %s: dimension mismatch: X has %d rows, y has %d elements", e.Op, e.Rows, e.Targets)
}

// Is は ErrDimensionMismatch との比較を可能にします。
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("targets", e.Targets).
		Str("type", "DimensionMismatchError")
}

// NewDimensionMismatchError は新しいDimensionMismatchErrorを作成し、スタックトレースを付与します。
func NewDimensionMismatchError(op string, rows, targets int) error {
	return errors.WithStack(&DimensionMismatchError{Op: op, Rows: rows, Targets: targets})
}

// SingularMatrixError はグラム行列 XᵀX が特異（または数値的に逆行列を持たない）場合のエラーです。
// Condition は対角スケーリング後のグラム行列の推定条件数で、完全に特異な場合は +Inf です。
type SingularMatrixError struct {
	Op        string
	NFeatures int
	Condition float64
}

func (e *SingularMatrixError) Error() string {
	msg := fmt.Sprintf("olsgo: %s: matrix X^T X (%dx%d) is singular (not invertible)", e.Op, e.NFeatures, e.NFeatures)
	if !math.IsInf(e.Condition, 1) && e.Condition > 0 {
		msg += fmt.Sprintf(", condition number %.3g", e.Condition)
	}
	return msg + ". This usually means features are linearly dependent; drop collinear columns or add observations"
}

// Is は ErrSingularMatrix との比較を可能にします。
func (e *SingularMatrixError) Is(target error) bool {
	return target == ErrSingularMatrix
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("features", e.NFeatures).
		Float64("condition", e.Condition).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError は新しいSingularMatrixErrorを作成し、スタックトレースを付与します。
func NewSingularMatrixError(op string, nFeatures int, condition float64) error {
	return errors.WithStack(&SingularMatrixError{Op: op, NFeatures: nFeatures, Condition: condition})
}

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("olsgo: %s: model must be fitted before making predictions. Call Fit() before using %s()", e.ModelName, e.Method)
}

// Is は ErrNotFitted との比較を可能にします。
func (e *NotFittedError) Is(target error) bool {
	return target == ErrNotFitted
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// FeatureDimensionMismatchError は Predict において X の列数が学習済み特徴量数と異なる場合のエラーです。
type FeatureDimensionMismatchError struct {
	Op       string
	Expected int
	Got      int
}

func (e *FeatureDimensionMismatchError) Error() string {
	return fmt.Sprintf("olsgo: %s: feature dimension mismatch: X has %d columns, model expects %d features", e.Op, e.Got, e.Expected)
}

// Is は ErrFeatureDimensionMismatch との比較を可能にします。
func (e *FeatureDimensionMismatchError) Is(target error) bool {
	return target == ErrFeatureDimensionMismatch
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *FeatureDimensionMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Str("type", "FeatureDimensionMismatchError")
}

// NewFeatureDimensionMismatchError は新しいFeatureDimensionMismatchErrorを作成し、スタックトレースを付与します。
func NewFeatureDimensionMismatchError(op string, expected, got int) error {
	return errors.WithStack(&FeatureDimensionMismatchError{Op: op, Expected: expected, Got: got})
}

// ===========================================================================
//
//	汎用のエラー型
//
// ===========================================================================

// DimensionError はベクトル同士の長さなど、汎用的な次元の不一致を表すエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("olsgo: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("olsgo: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ValueError は引数の値が不適切な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("olsgo: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ModelError は機械学習モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("olsgo: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("olsgo: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	return errors.WithStack(&ModelError{Op: op, Kind: kind, Err: err})
}

// NumericalInstabilityError は入力や計算結果に NaN や Inf が含まれる場合のエラーです。
type NumericalInstabilityError struct {
	Operation string
	Values    []float64
	Row       int
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("olsgo: numerical instability detected in %s at row %d. Values: [%s]",
		e.Operation, e.Row, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Int("row", e.Row).
		Floats64("values", e.Values).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, row int) error {
	return errors.WithStack(&NumericalInstabilityError{Operation: operation, Values: values, Row: row})
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// UnwrapAll はラップをすべて外した最も内側のエラーを返します。
func UnwrapAll(err error) error {
	return errors.UnwrapAll(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrDimensionMismatch は DimensionMismatchError の判定用センチネルです。
	ErrDimensionMismatch = New("dimension mismatch")

	// ErrSingularMatrix は SingularMatrixError の判定用センチネルです。
	ErrSingularMatrix = New("singular matrix")

	// ErrNotFitted は NotFittedError の判定用センチネルです。
	ErrNotFitted = New("not fitted")

	// ErrFeatureDimensionMismatch は FeatureDimensionMismatchError の判定用センチネルです。
	ErrFeatureDimensionMismatch = New("feature dimension mismatch")
)
