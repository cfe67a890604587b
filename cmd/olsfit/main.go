// Command olsfit fits an ordinary least squares model to a CSV file and
// reports the fit.
//
//	olsfit -train train.csv [-predict new.csv] [-weights-out w.json] [-plot fit.png]
//
// The last column of the training CSV is the target; every other column is a
// feature. No intercept column is added, so include a constant column of 1s
// when an intercept is wanted.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/YuminosukeSato/olsgo/linear"
	"github.com/YuminosukeSato/olsgo/metrics"
	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"github.com/YuminosukeSato/olsgo/pkg/log"
	"github.com/pkg/profile"
	"gonum.org/v1/gonum/mat"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 when the fit or any
// output step fails and 2 on a usage error.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := ParseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "olsfit: %v\n", err)
		return 2
	}

	logger := newLogger(cfg, stderr).With(log.ComponentKey, "olsfit")

	if cfg.Profile != "" {
		mode := profile.CPUProfile
		if cfg.Profile == profileMem {
			mode = profile.MemProfile
		}
		defer profile.Start(mode, profile.ProfilePath(cfg.ProfileDir), profile.Quiet).Stop()
	}

	err = errors.SafeExecute("olsfit", func() error {
		return fitAndReport(cfg, logger, stdout)
	})
	if err != nil {
		logFailure(logger, err)
		return 1
	}
	return 0
}

func newLogger(cfg *Config, w io.Writer) log.Logger {
	level, _ := log.ParseLevel(cfg.LogLevel)
	if cfg.LogBackend == backendSlog {
		return log.NewSlogLogger(w, level)
	}
	return log.NewZerologLogger(w, level, cfg.LogConsole)
}

// Report summarizes how well the fitted model reproduces its training targets.
type Report struct {
	R2        float64
	RMSE      float64
	MAE       float64
	Residuals metrics.ResidualSummary
}

func evaluate(yTrue, yPred *mat.VecDense) (*Report, error) {
	rmse, err := metrics.RMSE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	mae, err := metrics.MAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	residuals, err := metrics.SummarizeResiduals(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	return &Report{RMSE: rmse, MAE: mae, Residuals: residuals}, nil
}

func fitAndReport(cfg *Config, logger log.Logger, stdout io.Writer) error {
	train, err := loadTrainingFile(cfg.TrainPath, cfg.Header)
	if err != nil {
		return err
	}
	n, p := train.X.Dims()
	if cfg.Features > 0 && cfg.Features != p {
		return errors.NewFeatureDimensionMismatchError("olsfit", cfg.Features, p)
	}

	logger = logger.With(log.ModelNameKey, "OLS")
	logger.Debug("training data loaded",
		log.SourceKey, cfg.TrainPath,
		log.SamplesKey, n,
		log.FeaturesKey, p,
	)

	model := linear.NewOLS(p)
	start := time.Now()
	if err := model.Fit(train.X, train.Y); err != nil {
		return err
	}
	logger.Info("fit completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, n,
		log.FeaturesKey, p,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	fmt.Fprintln(stdout, model)

	fitted, err := model.Predict(train.X)
	if err != nil {
		return err
	}
	report, err := evaluate(train.Y, fitted)
	if err != nil {
		return err
	}
	// 目的変数が定数の場合 R² は定義されない
	report.R2, err = metrics.R2Score(train.Y, fitted)
	if err != nil {
		logger.Warn("r2 score undefined", log.ErrAttrKey, err)
		report.R2 = 0
	}

	logger.Info("training metrics",
		log.OperationKey, log.OperationScore,
		log.R2ScoreKey, report.R2,
		log.RMSEKey, report.RMSE,
		log.MAEKey, report.MAE,
		log.ResidualMeanKey, report.Residuals.Mean,
		log.ResidualStdKey, report.Residuals.Std,
	)
	fmt.Fprintf(stdout, "r2=%.6f rmse=%.6g mae=%.6g residual_mean=%.6g residual_std=%.6g\n",
		report.R2, report.RMSE, report.MAE, report.Residuals.Mean, report.Residuals.Std)

	if cfg.WeightsOut != "" {
		if err := writeWeights(model, cfg.WeightsOut, logger); err != nil {
			return err
		}
	}

	if cfg.PlotPath != "" {
		if err := SavePredictionPlot(cfg.PlotPath, train.Y.RawVector().Data, fitted.RawVector().Data); err != nil {
			return err
		}
		logger.Info("plot written", log.SourceKey, cfg.PlotPath)
	}

	if cfg.PredictPath != "" {
		return predict(model, cfg, logger, stdout)
	}
	return nil
}

func writeWeights(model *linear.OLS, path string, logger log.Logger) error {
	mw, err := model.ExportWeights()
	if err != nil {
		return err
	}
	data, err := mw.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "write weights")
	}

	logger.Info("weights exported",
		log.OperationKey, log.OperationExport,
		log.SourceKey, path,
		log.WeightHashKey, mw.HashString(),
	)
	return nil
}

func predict(model *linear.OLS, cfg *Config, logger log.Logger, stdout io.Writer) error {
	X, err := loadFeatureFile(cfg.PredictPath, cfg.Header)
	if err != nil {
		return err
	}

	start := time.Now()
	preds, err := model.Predict(X)
	if err != nil {
		return err
	}
	logger.Info("prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.SourceKey, cfg.PredictPath,
		log.PredsKey, preds.Len(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	for i := 0; i < preds.Len(); i++ {
		fmt.Fprintln(stdout, strconv.FormatFloat(preds.AtVec(i), 'g', -1, 64))
	}
	return nil
}

// errorCode maps err to one of the log.Error* codes.
func errorCode(err error) string {
	if kind := errors.KindOf(err); kind != errors.KindUnknown {
		return kind.Code()
	}
	if errors.Is(err, errors.ErrEmptyData) {
		return log.ErrorEmptyData
	}
	var (
		valErr   *errors.ValidationError
		valueErr *errors.ValueError
		numErr   *errors.NumericalInstabilityError
	)
	if errors.As(err, &valErr) || errors.As(err, &valueErr) || errors.As(err, &numErr) {
		return log.ErrorInvalidInput
	}
	return "UNKNOWN"
}

func logFailure(logger log.Logger, err error) {
	fields := []any{
		log.ErrAttrKey, err,
		log.ErrorCodeKey, errorCode(err),
		log.ErrorTypeKey, fmt.Sprintf("%T", errors.UnwrapAll(err)),
	}
	if s := errors.Suggestion(err); s != "" {
		fields = append(fields, log.SuggestionKey, s)
	}
	logger.Error("olsfit failed", fields...)
}
