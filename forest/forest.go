// Package forest implements a bootstrap-aggregated regression tree ensemble.
package forest

import (
	"math"
	"math/rand"
	"sort"

	"github.com/sartorproj/popforecast/model"
)

// Config holds the ensemble hyperparameters.
type Config struct {
	Trees           int   // Number of trees (default: 100)
	MaxDepth        int   // Maximum tree depth (default: 10)
	MinSamplesSplit int   // Minimum samples required to split a node (default: 5)
	Seed            int64 // Seed for bootstrap sampling (default: 42)
}

// DefaultConfig returns the default ensemble configuration.
func DefaultConfig() *Config {
	return &Config{
		Trees:           100,
		MaxDepth:        10,
		MinSamplesSplit: 5,
		Seed:            42,
	}
}

// Model is a random forest regressor over a single input feature. Fitting is
// deterministic for a fixed seed.
type Model struct {
	cfg    Config
	trees  []*node
	fitted bool
}

// New creates an unfitted forest model.
func New(cfg *Config) *Model {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Model{cfg: *cfg}
}

// node is one regression tree node. Leaves predict the mean of their training
// targets; internal nodes route on x <= threshold.
type node struct {
	leaf      bool
	value     float64
	threshold float64
	left      *node
	right     *node
}

// Fit trains the ensemble on bootstrap samples of (x, y).
func (m *Model) Fit(x, y []float64) error {
	if err := model.ValidateXY(x, y); err != nil {
		return err
	}

	n := len(x)
	rng := rand.New(rand.NewSource(m.cfg.Seed))

	m.trees = make([]*node, m.cfg.Trees)
	for t := 0; t < m.cfg.Trees; t++ {
		bx := make([]float64, n)
		by := make([]float64, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			bx[i] = x[j]
			by[i] = y[j]
		}
		m.trees[t] = m.buildTree(bx, by, 0)
	}

	m.fitted = true
	return nil
}

// Predict returns the ensemble average for each query point.
func (m *Model) Predict(x []float64) ([]float64, error) {
	if !m.fitted {
		return nil, model.ErrNotFitted
	}

	out := make([]float64, len(x))
	for i, xi := range x {
		sum := 0.0
		for _, tree := range m.trees {
			sum += tree.predict(xi)
		}
		out[i] = sum / float64(len(m.trees))
	}
	return out, nil
}

// buildTree grows one tree by greedy variance-reduction splits.
func (m *Model) buildTree(x, y []float64, depth int) *node {
	n := len(x)
	if depth >= m.cfg.MaxDepth || n < m.cfg.MinSamplesSplit {
		return &node{leaf: true, value: mean(y)}
	}

	threshold, ok := bestSplit(x, y)
	if !ok {
		return &node{leaf: true, value: mean(y)}
	}

	var lx, ly, rx, ry []float64
	for i := 0; i < n; i++ {
		if x[i] <= threshold {
			lx = append(lx, x[i])
			ly = append(ly, y[i])
		} else {
			rx = append(rx, x[i])
			ry = append(ry, y[i])
		}
	}

	return &node{
		threshold: threshold,
		left:      m.buildTree(lx, ly, depth+1),
		right:     m.buildTree(rx, ry, depth+1),
	}
}

func (nd *node) predict(x float64) float64 {
	for !nd.leaf {
		if x <= nd.threshold {
			nd = nd.left
		} else {
			nd = nd.right
		}
	}
	return nd.value
}

// bestSplit finds the threshold minimizing the weighted sum of squared errors
// of the two sides. Candidate thresholds are midpoints between distinct
// consecutive sorted x values. Returns ok=false when every x is identical.
func bestSplit(x, y []float64) (threshold float64, ok bool) {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	// Prefix sums over the sorted order make each candidate split O(1).
	prefix := make([]float64, n+1)
	prefixSq := make([]float64, n+1)
	for i, j := range idx {
		prefix[i+1] = prefix[i] + y[j]
		prefixSq[i+1] = prefixSq[i] + y[j]*y[j]
	}

	best := math.Inf(1)
	for i := 1; i < n; i++ {
		lo, hi := x[idx[i-1]], x[idx[i]]
		if lo == hi {
			continue
		}

		nl, nr := float64(i), float64(n-i)
		sseLeft := prefixSq[i] - prefix[i]*prefix[i]/nl
		sseRight := (prefixSq[n] - prefixSq[i]) - (prefix[n]-prefix[i])*(prefix[n]-prefix[i])/nr

		if sse := sseLeft + sseRight; sse < best {
			best = sse
			threshold = (lo + hi) / 2
			ok = true
		}
	}
	return threshold, ok
}

func mean(y []float64) float64 {
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}
