// Package evaluate scores forecast results against ground-truth projection
// series.
//
// Predictions are aligned to the ground truth by year key, not by position;
// years where the ground truth is absent are dropped from the comparison.
// Each aligned unit reports RMSE, MAE and R-squared, and Best selects the
// highest-R-squared variant per age group with ties broken by the fixed
// variant ordering.
//
//	rep := evaluate.Evaluate(results, projection)
//	m, ok := rep.Metrics("children_0_14", model.Polynomial)
//	best, ok := rep.Best("children_0_14")
//
// A unit whose alignment is empty fails with ErrEmptyComparison and is left
// out of the report rather than failing the evaluation run.
package evaluate
