package runner

import (
	"errors"
	"math"
	"testing"

	"github.com/sartorproj/popforecast/model"
	"github.com/sartorproj/popforecast/timeseries"
)

// linearDataset builds a dataset over 1950-2040 with one linear series per
// name. NaN years can be injected per group.
func linearDataset(t *testing.T, gaps map[string][]int, names ...string) *timeseries.Dataset {
	t.Helper()
	ds := timeseries.NewDataset()
	for gi, name := range names {
		var years []int
		var values []float64
		for y := 1950; y <= 2040; y++ {
			years = append(years, y)
			values = append(values, float64(100*(gi+1))+0.5*float64(y-1950))
		}
		for _, gy := range gaps[name] {
			values[gy-1950] = math.NaN()
		}
		s, err := timeseries.NewSeries(name, years, values)
		if err != nil {
			t.Fatalf("NewSeries failed: %v", err)
		}
		if err := ds.Add(s); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return ds
}

func TestRunAllUnits(t *testing.T) {
	ds := linearDataset(t, nil, "children_0_14", "working_15_64", "elderly_65_plus")

	results, err := New(nil).Run(ds, 2023, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 9 {
		t.Fatalf("Expected 3 groups x 3 variants = 9 units, got %d", len(results))
	}
	if failed := results.Failed(); len(failed) != 0 {
		t.Fatalf("Expected no failed units, got %v", failed)
	}

	for key, res := range results {
		p := res.Prediction
		if p == nil {
			t.Fatalf("Unit %s has no prediction", key)
		}
		if len(p.Years) != 17 || p.Years[0] != 2024 || p.Years[len(p.Years)-1] != 2040 {
			t.Errorf("Unit %s: unexpected projection years %v", key, p.Years)
		}
		if len(p.Values) != len(p.Years) {
			t.Errorf("Unit %s: %d values for %d years", key, len(p.Values), len(p.Years))
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	ds := linearDataset(t, nil, "children_0_14")
	r := New(DefaultConfig())

	first, err := r.Run(ds, 2023, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	second, err := r.Run(ds, 2023, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for key, res := range first {
		other := second[key].Prediction
		for i, v := range res.Prediction.Values {
			if v != other.Values[i] {
				t.Errorf("Unit %s diverged between identical runs at %d: %f vs %f", key, i, v, other.Values[i])
			}
		}
	}
}

func TestRunPartialFailure(t *testing.T) {
	// "sparse" keeps a single historical sample; every variant's fit on it
	// must fail without touching the dense group's units.
	gaps := map[string][]int{"sparse": {}}
	for y := 1950; y <= 2022; y++ {
		gaps["sparse"] = append(gaps["sparse"], y)
	}
	ds := linearDataset(t, gaps, "dense", "sparse")

	results, err := New(nil).Run(ds, 2023, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	failed := results.Failed()
	if len(failed) != 3 {
		t.Fatalf("Expected 3 failed units for the sparse group, got %d: %v", len(failed), failed)
	}
	for _, key := range failed {
		if key.Group != "sparse" {
			t.Errorf("Unexpected failed group %s", key.Group)
		}
		if !errors.Is(results[key].Err, model.ErrInsufficientData) {
			t.Errorf("Unit %s: expected ErrInsufficientData, got %v", key, results[key].Err)
		}
	}

	if got := len(results.Succeeded()); got != 3 {
		t.Errorf("Dense group should keep its 3 successful units, got %d", got)
	}
}

func TestRunBoundaryOutOfRange(t *testing.T) {
	ds := linearDataset(t, nil, "a")
	_, err := New(nil).Run(ds, 1900, nil)
	if !errors.Is(err, timeseries.ErrBoundaryOutOfRange) {
		t.Errorf("Expected ErrBoundaryOutOfRange, got %v", err)
	}
}

func TestRunEmptyDataset(t *testing.T) {
	if _, err := New(nil).Run(timeseries.NewDataset(), 2023, nil); err == nil {
		t.Error("Expected error for empty dataset")
	}
}

func TestRunVariantSubset(t *testing.T) {
	ds := linearDataset(t, nil, "a")
	results, err := New(nil).Run(ds, 2023, []model.Variant{model.Polynomial})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 unit, got %d", len(results))
	}
	if _, ok := results[Key{Group: "a", Variant: model.Polynomial}]; !ok {
		t.Error("Expected the polynomial unit to be present")
	}
}
