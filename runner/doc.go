// Package runner orchestrates the forecasting pipeline: splitting a dataset
// at a boundary year, fitting a fresh regressor per (age group, variant)
// pair on the historical years, and predicting over the projection horizon.
//
//	r := runner.New(runner.DefaultConfig())
//	results, err := r.Run(ds, 2023, model.Variants())
//
// Every unit is a pure computation over its own inputs, so units run on
// parallel goroutines and results are collected into a keyed map with no
// ordering constraint. A unit that fails, typically with
// model.ErrInsufficientData, records its error in the result map without
// aborting sibling units; only shared-setup errors fail the whole run.
package runner
