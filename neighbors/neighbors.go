// Package neighbors implements distance-weighted k-nearest-neighbor
// regression with z-score input scaling.
package neighbors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sartorproj/popforecast/model"
)

// Config holds the k-NN hyperparameters.
type Config struct {
	K int // Number of neighbors (default: 5)
}

// DefaultConfig returns the default k-NN configuration.
func DefaultConfig() *Config {
	return &Config{K: 5}
}

// Model predicts each query as a distance-weighted average of the k nearest
// training points. Inputs are standardized with a scaler fit on the training
// years only; the same scaler is reused at prediction time.
type Model struct {
	cfg    Config
	mean   float64
	std    float64
	x      []float64 // scaled training inputs
	y      []float64
	fitted bool
}

// New creates an unfitted k-NN model.
func New(cfg *Config) *Model {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Model{cfg: *cfg}
}

// Fit stores the standardized training set.
func (m *Model) Fit(x, y []float64) error {
	if err := model.ValidateXY(x, y); err != nil {
		return err
	}

	m.mean, m.std = stat.MeanStdDev(x, nil)
	if m.std == 0 || math.IsNaN(m.std) {
		m.std = 1
	}

	m.x = make([]float64, len(x))
	for i, v := range x {
		m.x[i] = (v - m.mean) / m.std
	}
	m.y = make([]float64, len(y))
	copy(m.y, y)

	m.fitted = true
	return nil
}

// Predict returns the weighted-neighbor average for each query point. Queries
// far outside the training range collapse to the boundary neighbors' values;
// this model has no extrapolation capability.
func (m *Model) Predict(x []float64) ([]float64, error) {
	if !m.fitted {
		return nil, model.ErrNotFitted
	}

	k := m.cfg.K
	if k > len(m.x) {
		k = len(m.x)
	}

	out := make([]float64, len(x))
	for i, q := range x {
		out[i] = m.predictOne((q-m.mean)/m.std, k)
	}
	return out, nil
}

func (m *Model) predictOne(q float64, k int) float64 {
	type neighbor struct {
		dist  float64
		value float64
	}

	all := make([]neighbor, len(m.x))
	for i, xi := range m.x {
		all[i] = neighbor{dist: math.Abs(q - xi), value: m.y[i]}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].dist < all[b].dist })
	nearest := all[:k]

	// Exact matches dominate: a zero distance would make the inverse weight
	// infinite, so coincident points are averaged directly.
	exactSum, exactN := 0.0, 0
	for _, nb := range nearest {
		if nb.dist == 0 {
			exactSum += nb.value
			exactN++
		}
	}
	if exactN > 0 {
		return exactSum / float64(exactN)
	}

	num, den := 0.0, 0.0
	for _, nb := range nearest {
		w := 1 / nb.dist
		num += w * nb.value
		den += w
	}
	return num / den
}
