package evaluate

import (
	"math"
	"testing"

	"github.com/sartorproj/popforecast/model"
	"github.com/sartorproj/popforecast/runner"
	"github.com/sartorproj/popforecast/timeseries"
)

// TestLinearTrendEndToEnd runs the whole pipeline on a synthetic linear
// series: split at 2023, fit all variants, score against the projection.
func TestLinearTrendEndToEnd(t *testing.T) {
	var years []int
	var values []float64
	for y := 1950; y <= 2100; y++ {
		years = append(years, y)
		values = append(values, 20.0+0.05*float64(y-1950))
	}
	s, err := timeseries.NewSeries("children_0_14", years, values)
	if err != nil {
		t.Fatalf("NewSeries failed: %v", err)
	}
	ds := timeseries.NewDataset()
	if err := ds.Add(s); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := runner.New(nil).Run(ds, 2023, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	_, proj, err := timeseries.Split(ds, 2023)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	rep := Evaluate(results, proj)
	if len(rep.Failures()) != 0 {
		t.Fatalf("Expected no failures, got %v", rep.Failures())
	}

	// The degree-3 polynomial should track a purely linear trend closely
	// across the whole projection horizon.
	poly, ok := rep.Metrics("children_0_14", model.Polynomial)
	if !ok {
		t.Fatal("Expected polynomial metrics")
	}
	if poly.R2 < 0.9 {
		t.Errorf("Polynomial R2 on a linear series should exceed 0.9, got %f", poly.R2)
	}
	t.Logf("polynomial: RMSE=%f MAE=%f R2=%f", poly.RMSE, poly.MAE, poly.R2)

	// The neighbor model cannot extrapolate: its predictions plateau near
	// the last training values far beyond 2023.
	knnKey := runner.Key{Group: "children_0_14", Variant: model.Neighbors}
	knn := results[knnKey].Prediction
	lastTraining := 20.0 + 0.05*float64(2023-1950)
	far := knn.Values[len(knn.Values)-1] // year 2100
	if math.Abs(far-lastTraining) > 0.5 {
		t.Errorf("KNN at 2100 should plateau near the last training value %f, got %f", lastTraining, far)
	}
	mid := knn.Values[len(knn.Values)/2]
	if math.Abs(far-mid) > 0.2 {
		t.Errorf("KNN plateau expected: far predictions differ (%f vs %f)", mid, far)
	}

	// On a trending series the trend model should report the best score.
	best, ok := rep.Best("children_0_14")
	if !ok {
		t.Fatal("Expected a best variant")
	}
	if best != model.Polynomial {
		t.Logf("Best variant on linear series: %s", best)
	}
}
