// Package model defines the uniform fit/predict contract shared by all
// regression variants.
package model

import "errors"

// MinSamples is the minimum viable training size for any variant. Fitting on
// fewer samples fails with ErrInsufficientData.
const MinSamples = 2

var (
	// ErrInsufficientData indicates fewer training samples than a variant's
	// minimum viable count after NaN removal.
	ErrInsufficientData = errors.New("insufficient training data")
	// ErrNotFitted indicates Predict was called before Fit.
	ErrNotFitted = errors.New("model must be fitted before prediction")
	// ErrMismatchedLengths indicates x and y of different lengths.
	ErrMismatchedLengths = errors.New("x and y must have the same length")
)

// Regressor is the contract every variant satisfies: fit on aligned year and
// value vectors, then predict values for query years. Callers must have
// already masked NaN entries out of both vectors.
type Regressor interface {
	Fit(x, y []float64) error
	Predict(x []float64) ([]float64, error)
}

// Variant identifies a regression algorithm family. The declared order is the
// fixed tie-break order for best-model selection.
type Variant int

const (
	Forest Variant = iota
	Neighbors
	Polynomial
)

// Variants returns all variants in the fixed declared order.
func Variants() []Variant {
	return []Variant{Forest, Neighbors, Polynomial}
}

// String returns the variant's report name.
func (v Variant) String() string {
	switch v {
	case Forest:
		return "random_forest"
	case Neighbors:
		return "knn"
	case Polynomial:
		return "polynomial"
	default:
		return "unknown"
	}
}

// ValidateXY checks the shared fit preconditions.
func ValidateXY(x, y []float64) error {
	if len(x) != len(y) {
		return ErrMismatchedLengths
	}
	if len(x) < MinSamples {
		return ErrInsufficientData
	}
	return nil
}
