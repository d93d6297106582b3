// Package forest implements bootstrap-aggregated (bagged) regression trees
// over a single input feature.
//
// Each of the configured trees is grown on a bootstrap resample of the
// training set using greedy variance-reduction splits, limited by MaxDepth
// and MinSamplesSplit. Predictions average the per-tree leaf means, which
// captures non-linear, non-monotonic year-to-value relationships without an
// explicit functional form.
//
//	m := forest.New(forest.DefaultConfig())
//	if err := m.Fit(years, values); err != nil { ... }
//	preds, err := m.Predict(queryYears)
//
// Bootstrap sampling uses a fixed seed from Config, so repeated fits on the
// same data produce identical predictions.
package forest
