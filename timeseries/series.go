// Package timeseries provides annual population series and dataset operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ErrNoValue indicates a point where both the estimate and the medium-variant
// fallback are absent, so no value can be resolved.
var ErrNoValue = errors.New("no value: both estimate and medium variant are absent")

// Point holds the raw value pair for one year of one age group. Absent values
// are NaN.
type Point struct {
	Year     int
	Estimate float64
	Medium   float64
}

// Resolve returns the estimate when present, otherwise the medium-variant
// fallback. It returns ErrNoValue when both are absent.
func (p Point) Resolve() (float64, error) {
	if !math.IsNaN(p.Estimate) {
		return p.Estimate, nil
	}
	if !math.IsNaN(p.Medium) {
		return p.Medium, nil
	}
	return 0, fmt.Errorf("year %d: %w", p.Year, ErrNoValue)
}

// Series represents one age group's resolved annual values. Years are strictly
// increasing with no duplicates. A NaN value marks a year excluded from
// modeling for this series; other series may still carry a value there.
type Series struct {
	Name   string
	Years  []int
	Values []float64
}

// NewSeries creates a series from parallel year and value slices.
func NewSeries(name string, years []int, values []float64) (*Series, error) {
	if len(years) != len(values) {
		return nil, errors.New("years and values must have the same length")
	}
	for i := 1; i < len(years); i++ {
		if years[i] <= years[i-1] {
			return nil, fmt.Errorf("years must be strictly increasing: %d after %d", years[i], years[i-1])
		}
	}
	return &Series{Name: name, Years: years, Values: values}, nil
}

// FromPoints builds a resolved series from raw value pairs. Points where both
// values are absent resolve to NaN and are excluded from modeling by the
// NaN-masking in ValidXY.
func FromPoints(name string, points []Point) (*Series, error) {
	years := make([]int, len(points))
	values := make([]float64, len(points))
	for i, p := range points {
		years[i] = p.Year
		v, err := p.Resolve()
		if err != nil {
			v = math.NaN()
		}
		values[i] = v
	}
	return NewSeries(name, years, values)
}

// Len returns the number of years in the series, including NaN-valued ones.
func (s *Series) Len() int {
	return len(s.Years)
}

// At returns the value for a year and whether the year exists in the series
// with a resolved (non-NaN) value.
func (s *Series) At(year int) (float64, bool) {
	for i, y := range s.Years {
		if y == year {
			if math.IsNaN(s.Values[i]) {
				return 0, false
			}
			return s.Values[i], true
		}
	}
	return 0, false
}

// ValidXY returns the NaN-masked (year, value) vectors for modeling. Years are
// returned as float64 so they can feed a regressor directly.
func (s *Series) ValidXY() (x, y []float64) {
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		x = append(x, float64(s.Years[i]))
		y = append(y, v)
	}
	return x, y
}

// ValidYears returns the years that carry a resolved value.
func (s *Series) ValidYears() []int {
	var years []int
	for i, v := range s.Values {
		if !math.IsNaN(v) {
			years = append(years, s.Years[i])
		}
	}
	return years
}

// valid returns the non-NaN values.
func (s *Series) valid() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean calculates the arithmetic mean over resolved values.
func (s *Series) Mean() float64 {
	vs := s.valid()
	if len(vs) == 0 {
		return math.NaN()
	}
	return stat.Mean(vs, nil)
}

// Std calculates the sample standard deviation over resolved values.
func (s *Series) Std() float64 {
	vs := s.valid()
	if len(vs) < 2 {
		return 0
	}
	return stat.StdDev(vs, nil)
}

// Min returns the minimum resolved value.
func (s *Series) Min() float64 {
	vs := s.valid()
	if len(vs) == 0 {
		return math.NaN()
	}
	min := vs[0]
	for _, v := range vs[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum resolved value.
func (s *Series) Max() float64 {
	vs := s.valid()
	if len(vs) == 0 {
		return math.NaN()
	}
	max := vs[0]
	for _, v := range vs[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Between returns the sub-series with lo <= year <= hi.
func (s *Series) Between(lo, hi int) *Series {
	var years []int
	var values []float64
	for i, y := range s.Years {
		if y < lo || y > hi {
			continue
		}
		years = append(years, y)
		values = append(values, s.Values[i])
	}
	return &Series{Name: s.Name, Years: years, Values: values}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	years := make([]int, len(s.Years))
	copy(years, s.Years)
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return &Series{Name: s.Name, Years: years, Values: values}
}
