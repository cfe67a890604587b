// Package olsgo fits ordinary least squares linear regression models with the
// closed-form normal equations w = (XᵀX)⁻¹Xᵀy, built on gonum.
//
// The estimator has no intercept term: the bias is always 0. Add a constant
// column of 1s to X when an intercept is wanted.
//
// # Installation
//
//	go get github.com/YuminosukeSato/olsgo
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/olsgo/linear"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // 1列目は切片用の定数列
//	    X := mat.NewDense(3, 2, []float64{1, 1, 1, 2, 1, 3})
//	    y := mat.NewVecDense(3, []float64{2, 3, 4})
//
//	    model := linear.NewOLS(2)
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(mat.NewDense(1, 2, []float64{1, 4}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(predictions.AtVec(0)) // ≈ 5
//	}
//
// # Errors
//
// Fit and Predict return one of four error kinds, classified with
// errors.KindOf from pkg/errors:
//
//   - DimensionMismatch: X and y have a different number of rows (Fit)
//   - SingularMatrix: XᵀX cannot be inverted, usually collinear features (Fit)
//   - NotFitted: Predict before a successful Fit
//   - FeatureDimensionMismatch: X has a different column count than the weights (Predict)
//
// A failed Fit leaves the model exactly as it was.
//
// # Packages
//
//   - linear: the OLS estimator and nested-slice helpers
//   - metrics: MSE, RMSE, MAE, R² and residual summaries
//   - core/model: estimator interfaces, fitted state and weight snapshots
//   - pkg/errors: error kinds built on cockroachdb/errors
//   - pkg/log: structured logging (slog or zerolog)
//   - cmd/olsfit: command line fitting of CSV files
package olsgo
