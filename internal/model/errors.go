package model

import "errors"

// Sentinel errors for the model's structural failure modes
var (
	// ErrUninitializedModel is returned when transform/predict is called
	// before the feature space and classifier have been fitted or loaded.
	ErrUninitializedModel = errors.New("model not fitted")

	// ErrDimensionMismatch is returned when the classifier's weight length
	// does not match the feature space dimensionality.
	ErrDimensionMismatch = errors.New("classifier dimensionality does not match feature space")

	// ErrDegenerateTrainingSet is returned when fewer than two label
	// classes are present in the training data.
	ErrDegenerateTrainingSet = errors.New("training set must contain both label classes")

	// ErrOracleUnavailable is returned when a sentiment/entity oracle call
	// failed or timed out. Recovered locally by the enricher, never fatal
	// to a prediction.
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrMalformedInput is returned for empty or structurally invalid input.
	ErrMalformedInput = errors.New("malformed input")
)
