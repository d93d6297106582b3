// Package polyfit implements polynomial-basis ordinary least squares
// regression.
package polyfit

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/sartorproj/popforecast/model"
)

// Config holds the polynomial regression hyperparameters.
type Config struct {
	Degree int // Polynomial degree (default: 3)
}

// DefaultConfig returns the default polynomial configuration.
func DefaultConfig() *Config {
	return &Config{Degree: 3}
}

// Model expands the scalar input into a power basis up to Degree and fits
// ordinary least squares on the expanded basis. It models the global trend,
// so it extrapolates smoothly beyond the training range.
type Model struct {
	cfg    Config
	center float64   // training-input mean; the basis is built on x-center
	coeffs []float64 // basis coefficients, constant term first
	fitted bool
}

// New creates an unfitted polynomial model.
func New(cfg *Config) *Model {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Model{cfg: *cfg}
}

// Fit solves the least-squares problem over the power-basis design matrix.
func (m *Model) Fit(x, y []float64) error {
	if err := model.ValidateXY(x, y); err != nil {
		return err
	}
	if m.cfg.Degree < 1 {
		return errors.New("polynomial degree must be at least 1")
	}

	// Centering the inputs keeps the power basis well conditioned for
	// four-digit years without changing the fitted polynomial.
	m.center = 0
	for _, xi := range x {
		m.center += xi
	}
	m.center /= float64(len(x))

	n := len(x)
	cols := m.cfg.Degree + 1
	a := mat.NewDense(n, cols, nil)
	for i, xi := range x {
		p := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, p)
			p *= xi - m.center
		}
	}
	b := mat.NewVecDense(n, y)

	var beta mat.Dense
	var qr mat.QR
	qr.Factorize(a)
	if err := qr.SolveTo(&beta, false, b); err != nil {
		// Rank-deficient basis: fall back to the minimum-norm SVD solution.
		var svd mat.SVD
		if ok := svd.Factorize(a, mat.SVDThin); !ok {
			return errors.New("least squares solve failed: SVD factorization did not converge")
		}
		rank := svd.Rank(1e-12)
		if rank == 0 {
			return errors.New("least squares solve failed: design matrix is numerically zero")
		}
		svd.SolveTo(&beta, b, rank)
	}

	m.coeffs = make([]float64, cols)
	for j := 0; j < cols; j++ {
		m.coeffs[j] = beta.At(j, 0)
	}
	m.fitted = true
	return nil
}

// Predict evaluates the fitted polynomial at each query point.
func (m *Model) Predict(x []float64) ([]float64, error) {
	if !m.fitted {
		return nil, model.ErrNotFitted
	}

	out := make([]float64, len(x))
	for i, xi := range x {
		v, p := 0.0, 1.0
		for _, c := range m.coeffs {
			v += c * p
			p *= xi - m.center
		}
		out[i] = v
	}
	return out, nil
}

// Coefficients returns the fitted basis coefficients in the centered basis,
// constant term first.
func (m *Model) Coefficients() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.coeffs))
	copy(out, m.coeffs)
	return out
}
