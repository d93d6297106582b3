package timeseries

import (
	"errors"
	"fmt"
)

// ErrBoundaryOutOfRange indicates a split boundary year outside the dataset's
// year domain.
var ErrBoundaryOutOfRange = errors.New("boundary year outside dataset year range")

// Dataset maps age-group names to series sharing the same year domain. Group
// order is the declaration order and is preserved by Groups.
type Dataset struct {
	groups []string
	series map[string]*Series
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{series: make(map[string]*Series)}
}

// Add inserts a series. All series in a dataset must cover the same set of
// years; gaps are expressed as NaN values, not missing years.
func (d *Dataset) Add(s *Series) error {
	if _, ok := d.series[s.Name]; ok {
		return fmt.Errorf("duplicate series %q", s.Name)
	}
	if len(d.groups) > 0 {
		first := d.series[d.groups[0]]
		if len(first.Years) != len(s.Years) {
			return fmt.Errorf("series %q has %d years, dataset has %d", s.Name, len(s.Years), len(first.Years))
		}
		for i, y := range first.Years {
			if s.Years[i] != y {
				return fmt.Errorf("series %q year domain differs at index %d", s.Name, i)
			}
		}
	}
	d.groups = append(d.groups, s.Name)
	d.series[s.Name] = s
	return nil
}

// Groups returns the age-group names in declaration order.
func (d *Dataset) Groups() []string {
	out := make([]string, len(d.groups))
	copy(out, d.groups)
	return out
}

// Series returns the series for an age group.
func (d *Dataset) Series(name string) (*Series, bool) {
	s, ok := d.series[name]
	return s, ok
}

// Len returns the number of series in the dataset.
func (d *Dataset) Len() int {
	return len(d.groups)
}

// YearRange returns the first and last year of the shared year domain.
func (d *Dataset) YearRange() (min, max int, ok bool) {
	if len(d.groups) == 0 {
		return 0, 0, false
	}
	years := d.series[d.groups[0]].Years
	if len(years) == 0 {
		return 0, 0, false
	}
	return years[0], years[len(years)-1], true
}

// Split partitions a dataset at a boundary year: the historical part keeps
// years <= boundary, the projection part years >= boundary+1. No year belongs
// to both. NaN gaps stay with their own series, so each group keeps its own
// effective sample count within the same split.
func Split(d *Dataset, boundaryYear int) (historical, projection *Dataset, err error) {
	min, max, ok := d.YearRange()
	if !ok {
		return nil, nil, errors.New("cannot split an empty dataset")
	}
	if boundaryYear < min || boundaryYear > max {
		return nil, nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrBoundaryOutOfRange, boundaryYear, min, max)
	}

	historical = NewDataset()
	projection = NewDataset()
	for _, name := range d.groups {
		s := d.series[name]
		if err := historical.Add(s.Between(min, boundaryYear)); err != nil {
			return nil, nil, err
		}
		if err := projection.Add(s.Between(boundaryYear+1, max)); err != nil {
			return nil, nil, err
		}
	}
	return historical, projection, nil
}
