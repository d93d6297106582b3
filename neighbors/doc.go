// Package neighbors implements k-nearest-neighbor regression with inverse
// distance weighting.
//
// Training years are standardized (zero mean, unit variance); the scaler is
// fit on the training set only and reused to transform query years. Distance
// is scale-sensitive, so standardization keeps the weighting meaningful when
// points are generalized to multiple input dimensions.
//
//	m := neighbors.New(neighbors.DefaultConfig())
//	if err := m.Fit(years, values); err != nil { ... }
//	preds, err := m.Predict(queryYears)
//
// Queries far beyond the training range degrade toward the boundary
// neighbors' values: the model interpolates but cannot extrapolate.
package neighbors
