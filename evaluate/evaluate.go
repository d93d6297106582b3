// Package evaluate computes comparative error metrics for forecast results.
package evaluate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/popforecast/model"
	"github.com/sartorproj/popforecast/runner"
	"github.com/sartorproj/popforecast/timeseries"
)

// ErrEmptyComparison indicates that no (prediction, ground truth) pairs
// remained after year alignment.
var ErrEmptyComparison = errors.New("no aligned prediction/ground-truth pairs")

// Metrics holds the error metrics of one (age group, variant) unit over its
// aligned pairs.
type Metrics struct {
	RMSE float64
	MAE  float64
	R2   float64
	N    int // number of aligned pairs
}

// Report maps evaluated units to metrics and records per-unit failures.
type Report struct {
	metrics  map[runner.Key]Metrics
	failures map[runner.Key]error
	groups   []string
}

// Evaluate aligns each prediction against the ground-truth projection series
// by year key and computes RMSE, MAE and R-squared over the aligned pairs.
// Units that carry a run error, lack a ground-truth series, or align to zero
// pairs are recorded as failures and excluded from the metrics; they never
// fail the evaluation as a whole.
func Evaluate(results runner.Results, truth *timeseries.Dataset) *Report {
	rep := &Report{
		metrics:  make(map[runner.Key]Metrics),
		failures: make(map[runner.Key]error),
	}
	if truth != nil {
		rep.groups = truth.Groups()
	}

	for key, res := range results {
		if res.Err != nil {
			rep.failures[key] = res.Err
			continue
		}
		if truth == nil {
			rep.failures[key] = fmt.Errorf("no ground truth for group %q", key.Group)
			continue
		}

		series, ok := truth.Series(key.Group)
		if !ok {
			rep.failures[key] = fmt.Errorf("no ground truth for group %q", key.Group)
			continue
		}

		m, err := compare(res.Prediction, series)
		if err != nil {
			rep.failures[key] = fmt.Errorf("evaluate %s: %w", key, err)
			continue
		}
		rep.metrics[key] = m
	}
	return rep
}

// compare aligns by year, dropping years where the ground truth is absent.
func compare(p *runner.Prediction, truth *timeseries.Series) (Metrics, error) {
	var pred, actual []float64
	for i, year := range p.Years {
		v, ok := truth.At(year)
		if !ok {
			continue
		}
		pred = append(pred, p.Values[i])
		actual = append(actual, v)
	}
	if len(pred) == 0 {
		return Metrics{}, ErrEmptyComparison
	}

	var sqSum, absSum float64
	for i := range pred {
		diff := pred[i] - actual[i]
		sqSum += diff * diff
		absSum += math.Abs(diff)
	}
	n := float64(len(pred))

	return Metrics{
		RMSE: math.Sqrt(sqSum / n),
		MAE:  absSum / n,
		R2:   stat.RSquaredFrom(pred, actual, nil),
		N:    len(pred),
	}, nil
}

// Metrics returns the metrics for one unit.
func (r *Report) Metrics(group string, variant model.Variant) (Metrics, bool) {
	m, ok := r.metrics[runner.Key{Group: group, Variant: variant}]
	return m, ok
}

// Failures returns the per-unit errors recorded during evaluation.
func (r *Report) Failures() map[runner.Key]error {
	out := make(map[runner.Key]error, len(r.failures))
	for k, err := range r.failures {
		out[k] = err
	}
	return out
}

// Groups returns the ground-truth group names in declaration order.
func (r *Report) Groups() []string {
	out := make([]string, len(r.groups))
	copy(out, r.groups)
	return out
}

// Best returns the variant with the highest R-squared among the reported
// variants for an age group. Ties break toward the variant declared first in
// the fixed ordering. ok is false when no variant reported metrics for the
// group.
func (r *Report) Best(group string) (best model.Variant, ok bool) {
	bestR2 := math.Inf(-1)
	for _, v := range model.Variants() {
		m, have := r.Metrics(group, v)
		if !have {
			continue
		}
		if !ok || m.R2 > bestR2 {
			best = v
			bestR2 = m.R2
			ok = true
		}
	}
	return best, ok
}
