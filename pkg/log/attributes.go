package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "OLS".
	ModelNameKey = "model.name"

	// OperationKey is the operation being performed: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or binary emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey is the lifecycle phase: "training" or "inference".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of rows (n) of the design matrix.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns (p) of the design matrix.
	FeaturesKey = "data.features"

	// SourceKey is the file or stream the data was read from.
	SourceKey = "data.source"
)

// Performance and fit quality.
const (
	DurationMsKey = "perf.duration_ms"
	R2ScoreKey    = "metrics.r2_score"
	RMSEKey       = "metrics.rmse"
	MAEKey        = "metrics.mae"

	// ResidualMeanKey and ResidualStdKey summarize y - Predict(X) on the training set.
	ResidualMeanKey = "metrics.residual_mean"
	ResidualStdKey  = "metrics.residual_std"

	// WeightHashKey is the xxhash fingerprint of the fitted weights.
	WeightHashKey = "model.weight_hash"
)

// Prediction output.
const (
	PredsKey = "preds.count"
)

// Error context.
const (
	// ErrorCodeKey is a machine readable code, see the Error* constants below.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey is the Go type name of the error.
	ErrorTypeKey = "error.type"

	// SuggestionKey carries a remediation hint for the caller.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationExport  = "export"

	PhaseTraining  = "training"
	PhaseInference = "inference"

	ErrorNotFitted                = "NOT_FITTED"
	ErrorDimensionMismatch        = "DIMENSION_MISMATCH"
	ErrorFeatureDimensionMismatch = "FEATURE_DIMENSION_MISMATCH"
	ErrorSingularMatrix           = "SINGULAR_MATRIX"
	ErrorEmptyData                = "EMPTY_DATA"
	ErrorInvalidInput             = "INVALID_INPUT"
)
