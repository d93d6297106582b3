// Package polyfit implements polynomial trend regression: the scalar year is
// expanded into a power basis [1, x, x^2, ..., x^degree] and fit with
// ordinary least squares.
//
//	m := polyfit.New(polyfit.DefaultConfig()) // degree 3
//	if err := m.Fit(years, values); err != nil { ... }
//	preds, err := m.Predict(queryYears)
//
// Unlike the nearest-neighbor model, this is a global trend model: it
// extrapolates smoothly, and sometimes poorly, beyond the training range.
package polyfit
