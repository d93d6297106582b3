// Package runner orchestrates fitting and prediction across every
// (age group, variant) pair.
package runner

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sartorproj/popforecast/forest"
	"github.com/sartorproj/popforecast/model"
	"github.com/sartorproj/popforecast/neighbors"
	"github.com/sartorproj/popforecast/polyfit"
	"github.com/sartorproj/popforecast/timeseries"
)

// Key identifies one independent fit/predict unit.
type Key struct {
	Group   string
	Variant model.Variant
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Group, k.Variant)
}

// Prediction is the immutable forecast of one unit over the projection years.
type Prediction struct {
	Group   string
	Variant model.Variant
	Years   []int
	Values  []float64
}

// Result holds either a prediction or the error that stopped its unit.
type Result struct {
	Prediction *Prediction
	Err        error
}

// Results maps unit keys to their outcomes.
type Results map[Key]Result

// Succeeded returns the keys with predictions, sorted for stable reporting.
func (r Results) Succeeded() []Key {
	var keys []Key
	for k, res := range r {
		if res.Err == nil {
			keys = append(keys, k)
		}
	}
	sortKeys(keys)
	return keys
}

// Failed returns the keys whose units recorded an error, sorted.
func (r Results) Failed() []Key {
	var keys []Key
	for k, res := range r {
		if res.Err != nil {
			keys = append(keys, k)
		}
	}
	sortKeys(keys)
	return keys
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].Group != keys[b].Group {
			return keys[a].Group < keys[b].Group
		}
		return keys[a].Variant < keys[b].Variant
	})
}

// Config holds the per-variant hyperparameters used for every unit of a run.
type Config struct {
	Forest    *forest.Config
	Neighbors *neighbors.Config
	Polyfit   *polyfit.Config
	Logger    zerolog.Logger
}

// DefaultConfig returns the recommended hyperparameters and a disabled logger.
func DefaultConfig() *Config {
	return &Config{
		Forest:    forest.DefaultConfig(),
		Neighbors: neighbors.DefaultConfig(),
		Polyfit:   polyfit.DefaultConfig(),
		Logger:    zerolog.Nop(),
	}
}

// Runner fits fresh models per (age group, variant) pair and predicts over
// the projection horizon.
type Runner struct {
	cfg Config
}

// New creates a runner.
func New(cfg *Config) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if c.Forest == nil {
		c.Forest = forest.DefaultConfig()
	}
	if c.Neighbors == nil {
		c.Neighbors = neighbors.DefaultConfig()
	}
	if c.Polyfit == nil {
		c.Polyfit = polyfit.DefaultConfig()
	}
	return &Runner{cfg: c}
}

// newRegressor builds an unfitted regressor for a variant. Every unit gets
// its own instance; fitted state is never shared between units.
func (r *Runner) newRegressor(v model.Variant) (model.Regressor, error) {
	switch v {
	case model.Forest:
		return forest.New(r.cfg.Forest), nil
	case model.Neighbors:
		return neighbors.New(r.cfg.Neighbors), nil
	case model.Polynomial:
		return polyfit.New(r.cfg.Polyfit), nil
	default:
		return nil, fmt.Errorf("unknown variant %d", int(v))
	}
}

// Run splits the dataset at the boundary year, then fits and predicts every
// (age group, variant) unit on its own goroutine. Shared-setup failures (an
// empty dataset or a boundary outside the year domain) abort the run;
// per-unit failures are recorded in the unit's Result and never abort
// sibling units.
func (r *Runner) Run(ds *timeseries.Dataset, boundaryYear int, variants []model.Variant) (Results, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.New("dataset is empty")
	}
	if len(variants) == 0 {
		variants = model.Variants()
	}

	hist, proj, err := timeseries.Split(ds, boundaryYear)
	if err != nil {
		return nil, err
	}

	results := make(Results)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, group := range ds.Groups() {
		histSeries, _ := hist.Series(group)
		projSeries, _ := proj.Series(group)

		// Per-group masking: this group's gaps never shrink a sibling's
		// training set.
		trainX, trainY := histSeries.ValidXY()
		projYears := projSeries.Years
		queryX := make([]float64, len(projYears))
		for i, y := range projYears {
			queryX[i] = float64(y)
		}

		for _, variant := range variants {
			wg.Add(1)
			go func(group string, variant model.Variant) {
				defer wg.Done()
				key := Key{Group: group, Variant: variant}
				res := r.runUnit(key, trainX, trainY, projYears, queryX)
				mu.Lock()
				results[key] = res
				mu.Unlock()
			}(group, variant)
		}
	}
	wg.Wait()

	log := r.cfg.Logger
	log.Info().
		Int("units", len(results)).
		Int("failed", len(results.Failed())).
		Int("boundary_year", boundaryYear).
		Msg("forecast run complete")

	return results, nil
}

func (r *Runner) runUnit(key Key, trainX, trainY []float64, projYears []int, queryX []float64) Result {
	log := r.cfg.Logger.With().Str("group", key.Group).Stringer("variant", key.Variant).Logger()

	reg, err := r.newRegressor(key.Variant)
	if err != nil {
		return Result{Err: err}
	}

	if err := reg.Fit(trainX, trainY); err != nil {
		log.Warn().Err(err).Int("samples", len(trainX)).Msg("fit failed")
		return Result{Err: fmt.Errorf("fit %s: %w", key, err)}
	}

	values, err := reg.Predict(queryX)
	if err != nil {
		log.Warn().Err(err).Msg("predict failed")
		return Result{Err: fmt.Errorf("predict %s: %w", key, err)}
	}

	log.Debug().Int("samples", len(trainX)).Int("horizon", len(queryX)).Msg("unit complete")

	years := make([]int, len(projYears))
	copy(years, projYears)
	return Result{Prediction: &Prediction{
		Group:   key.Group,
		Variant: key.Variant,
		Years:   years,
		Values:  values,
	}}
}
