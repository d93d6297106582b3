package evaluate

import (
	"errors"
	"math"
	"testing"

	"github.com/sartorproj/popforecast/model"
	"github.com/sartorproj/popforecast/runner"
	"github.com/sartorproj/popforecast/timeseries"
)

func truthDataset(t *testing.T, name string, years []int, values []float64) *timeseries.Dataset {
	t.Helper()
	s, err := timeseries.NewSeries(name, years, values)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	ds := timeseries.NewDataset()
	if err := ds.Add(s); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return ds
}

func prediction(group string, v model.Variant, years []int, values []float64) runner.Result {
	return runner.Result{Prediction: &runner.Prediction{
		Group: group, Variant: v, Years: years, Values: values,
	}}
}

func TestEvaluateAlignsByYear(t *testing.T) {
	// Ground truth defined only for 2024, 2026 and 2028.
	truth := truthDataset(t, "g",
		[]int{2024, 2025, 2026, 2027, 2028, 2029, 2030},
		[]float64{10, math.NaN(), 12, math.NaN(), 14, math.NaN(), math.NaN()})

	results := runner.Results{
		{Group: "g", Variant: model.Polynomial}: prediction("g", model.Polynomial,
			[]int{2024, 2025, 2026, 2027, 2028, 2029, 2030},
			[]float64{11, 99, 12, 99, 13, 99, 99}),
	}

	rep := Evaluate(results, truth)
	m, ok := rep.Metrics("g", model.Polynomial)
	if !ok {
		t.Fatalf("Expected metrics, failures: %v", rep.Failures())
	}

	if m.N != 3 {
		t.Errorf("Expected 3 aligned pairs, got %d", m.N)
	}
	// Errors over aligned pairs: +1, 0, -1.
	if math.Abs(m.MAE-2.0/3.0) > 1e-12 {
		t.Errorf("Expected MAE 2/3, got %f", m.MAE)
	}
	wantRMSE := math.Sqrt(2.0 / 3.0)
	if math.Abs(m.RMSE-wantRMSE) > 1e-12 {
		t.Errorf("Expected RMSE %f, got %f", wantRMSE, m.RMSE)
	}
	// SSres = 2, SStot = (10-12)^2 + 0 + (14-12)^2 = 8.
	if math.Abs(m.R2-0.75) > 1e-12 {
		t.Errorf("Expected R2 0.75, got %f", m.R2)
	}
}

func TestEvaluateEmptyComparison(t *testing.T) {
	truth := truthDataset(t, "g", []int{2024, 2025}, []float64{math.NaN(), math.NaN()})

	results := runner.Results{
		{Group: "g", Variant: model.Forest}: prediction("g", model.Forest,
			[]int{2024, 2025}, []float64{1, 2}),
	}

	rep := Evaluate(results, truth)
	if _, ok := rep.Metrics("g", model.Forest); ok {
		t.Error("Unit with empty alignment should be excluded from the report")
	}

	failures := rep.Failures()
	err, ok := failures[runner.Key{Group: "g", Variant: model.Forest}]
	if !ok {
		t.Fatal("Expected a recorded failure")
	}
	if !errors.Is(err, ErrEmptyComparison) {
		t.Errorf("Expected ErrEmptyComparison, got %v", err)
	}
}

func TestEvaluateCarriesRunFailures(t *testing.T) {
	truth := truthDataset(t, "g", []int{2024}, []float64{10})
	results := runner.Results{
		{Group: "g", Variant: model.Neighbors}: {Err: model.ErrInsufficientData},
		{Group: "g", Variant: model.Polynomial}: prediction("g", model.Polynomial,
			[]int{2024}, []float64{10}),
	}

	rep := Evaluate(results, truth)
	if _, ok := rep.Metrics("g", model.Polynomial); !ok {
		t.Error("Healthy unit should still be evaluated")
	}
	err := rep.Failures()[runner.Key{Group: "g", Variant: model.Neighbors}]
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Errorf("Expected the run error to be carried through, got %v", err)
	}
}

func TestBestTieBreakUsesVariantOrder(t *testing.T) {
	truth := truthDataset(t, "g", []int{2024, 2025, 2026}, []float64{10, 11, 12})

	// Identical predictions give identical R2 for every variant.
	years := []int{2024, 2025, 2026}
	values := []float64{10.5, 11, 11.5}
	results := runner.Results{
		{Group: "g", Variant: model.Polynomial}: prediction("g", model.Polynomial, years, values),
		{Group: "g", Variant: model.Neighbors}:  prediction("g", model.Neighbors, years, values),
		{Group: "g", Variant: model.Forest}:     prediction("g", model.Forest, years, values),
	}

	rep := Evaluate(results, truth)
	best, ok := rep.Best("g")
	if !ok {
		t.Fatal("Expected a best variant")
	}
	if best != model.Forest {
		t.Errorf("Tie should break to the first declared variant, got %s", best)
	}
}

func TestBestSkipsFailedVariants(t *testing.T) {
	truth := truthDataset(t, "g", []int{2024, 2025, 2026}, []float64{10, 11, 12})
	results := runner.Results{
		{Group: "g", Variant: model.Forest}: {Err: model.ErrInsufficientData},
		{Group: "g", Variant: model.Polynomial}: prediction("g", model.Polynomial,
			[]int{2024, 2025, 2026}, []float64{10, 11, 12}),
	}

	rep := Evaluate(results, truth)
	best, ok := rep.Best("g")
	if !ok || best != model.Polynomial {
		t.Errorf("Expected polynomial as the only reported variant, got %s (ok=%v)", best, ok)
	}

	if _, ok := rep.Best("missing"); ok {
		t.Error("Best for an unknown group should report ok=false")
	}
}
