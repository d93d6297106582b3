// Package popforecast provides population forecasting by age group: multiple
// regression model families fit to historical annual counts and evaluated
// against published projection data.
//
// The library splits a country's age-group time series at a boundary year,
// fits each model family independently per age group on the historical
// segment, predicts over the projection horizon and scores the predictions
// with RMSE, MAE and R-squared.
//
// # Quick Start
//
// Load a dataset, run every variant and pick the best model per age group:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.EntityFilter = "Vietnam"
//	ds, _ := timeseries.LoadCSV("population.csv", opts)
//
//	results, _ := runner.New(nil).Run(ds, 2023, model.Variants())
//
//	_, projection, _ := timeseries.Split(ds, 2023)
//	report := evaluate.Evaluate(results, projection)
//	best, _ := report.Best("children_0_14")
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: series, datasets, value resolution, splitting, CSV loading
//   - model: the shared fit/predict contract and variant enumeration
//   - forest: bagged regression tree ensemble
//   - neighbors: distance-weighted k-nearest-neighbor regression
//   - polyfit: polynomial-basis least squares regression
//   - runner: per (age group, variant) orchestration
//   - evaluate: error metrics and best-model selection
//
// # Model Families
//
//   - The tree ensemble captures non-linear, non-monotonic relationships
//     without a functional form.
//   - The neighbor model interpolates local patterns but cannot extrapolate
//     beyond the training years.
//   - The polynomial model captures the global trend and extrapolates
//     smoothly.
package popforecast
