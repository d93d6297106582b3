package polyfit

import (
	"errors"
	"math"
	"testing"

	"github.com/sartorproj/popforecast/model"
)

func TestPolyfitRecoversLinearTrend(t *testing.T) {
	var x, y []float64
	for i := 0; i < 74; i++ {
		x = append(x, float64(1950+i))
		y = append(y, 20.0+0.5*float64(i))
	}

	m := New(DefaultConfig())
	if err := m.Fit(x, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	// A degree-3 fit on purely linear data should reproduce it, including
	// extrapolation a few decades out.
	preds, err := m.Predict([]float64{1950, 2000, 2023, 2040})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	want := []float64{20.0, 45.0, 56.5, 65.0}
	for i, p := range preds {
		if math.Abs(p-want[i]) > 0.5 {
			t.Errorf("Prediction %d: expected near %f, got %f", i, want[i], p)
		}
	}
}

func TestPolyfitRecoversCubic(t *testing.T) {
	// y = 2 + 3t - t^2 + 0.5t^3 on a small centered domain.
	f := func(t float64) float64 { return 2 + 3*t - t*t + 0.5*t*t*t }
	var x, y []float64
	for i := -10; i <= 10; i++ {
		x = append(x, float64(i))
		y = append(y, f(float64(i)))
	}

	m := New(&Config{Degree: 3})
	if err := m.Fit(x, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coeffs := m.Coefficients()
	want := []float64{2, 3, -1, 0.5}
	for i, c := range coeffs {
		if math.Abs(c-want[i]) > 1e-6 {
			t.Errorf("Coefficient %d: expected %f, got %f", i, want[i], c)
		}
	}

	preds, err := m.Predict([]float64{15})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(preds[0]-f(15)) > 1e-6 {
		t.Errorf("Expected %f at t=15, got %f", f(15), preds[0])
	}
}

func TestPolyfitInsufficientData(t *testing.T) {
	m := New(nil)
	err := m.Fit([]float64{2000}, []float64{1})
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestPolyfitPredictBeforeFit(t *testing.T) {
	m := New(nil)
	_, err := m.Predict([]float64{2000})
	if !errors.Is(err, model.ErrNotFitted) {
		t.Errorf("Expected ErrNotFitted, got %v", err)
	}
}

func TestPolyfitMismatchedLengths(t *testing.T) {
	m := New(nil)
	err := m.Fit([]float64{2000, 2001}, []float64{1})
	if !errors.Is(err, model.ErrMismatchedLengths) {
		t.Errorf("Expected ErrMismatchedLengths, got %v", err)
	}
}
