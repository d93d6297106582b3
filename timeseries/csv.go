package timeseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// GroupColumns names the estimate and medium-variant columns backing one age
// group in a wide-format CSV.
type GroupColumns struct {
	Name           string
	EstimateColumn string
	MediumColumn   string
}

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	EntityColumn string         // Column holding the entity name (default: "Entity")
	EntityFilter string         // Entity to keep; empty keeps all rows
	YearColumn   string         // Column holding the year (default: "Year")
	Groups       []GroupColumns // Age-group column pairs to load
	Delimiter    rune           // Field delimiter (default: ',')
	HasHeader    bool           // Whether CSV has a header row (default: true)
}

// DefaultCSVOptions returns options matching the OWID population export: a
// wide CSV with Entity and Year columns and per-age-group estimate/medium
// column pairs.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		EntityColumn: "Entity",
		YearColumn:   "Year",
		Groups: []GroupColumns{
			{
				Name:           "children_0_14",
				EstimateColumn: "Population - Sex: all - Age: 0-14 - Variant: estimates",
				MediumColumn:   "Population - Sex: all - Age: 0-14 - Variant: medium",
			},
			{
				Name:           "working_15_64",
				EstimateColumn: "Population - Sex: all - Age: 15-64 - Variant: estimates",
				MediumColumn:   "Population - Sex: all - Age: 15-64 - Variant: medium",
			},
			{
				Name:           "elderly_65_plus",
				EstimateColumn: "Population - Sex: all - Age: 65+ - Variant: estimates",
				MediumColumn:   "Population - Sex: all - Age: 65+ - Variant: medium",
			},
		},
		Delimiter: ',',
		HasHeader: true,
	}
}

// LoadCSV loads a dataset from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Dataset, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a dataset from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Dataset, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}
	if len(opts.Groups) == 0 {
		return nil, errors.New("no age-group columns configured")
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	entityIdx, yearIdx := -1, -1
	estIdx := make([]int, len(opts.Groups))
	medIdx := make([]int, len(opts.Groups))
	for i := range opts.Groups {
		estIdx[i], medIdx[i] = -1, -1
	}

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch h {
			case opts.EntityColumn:
				entityIdx = i
			case opts.YearColumn:
				yearIdx = i
			}
			for g, cols := range opts.Groups {
				switch h {
				case cols.EstimateColumn:
					estIdx[g] = i
				case cols.MediumColumn:
					medIdx[g] = i
				}
			}
		}
		if yearIdx == -1 {
			return nil, fmt.Errorf("year column %q not found", opts.YearColumn)
		}
		for g, cols := range opts.Groups {
			if estIdx[g] == -1 || medIdx[g] == -1 {
				return nil, fmt.Errorf("columns for group %q not found: need %q and %q",
					cols.Name, cols.EstimateColumn, cols.MediumColumn)
			}
		}
	} else {
		// No header: Entity, Year, then estimate/medium pairs in group order.
		entityIdx = 0
		yearIdx = 1
		for g := range opts.Groups {
			estIdx[g] = 2 + 2*g
			medIdx[g] = 3 + 2*g
		}
	}

	points := make(map[string]map[int]Point, len(opts.Groups))
	for _, cols := range opts.Groups {
		points[cols.Name] = make(map[int]Point)
	}
	var years []int
	seen := make(map[int]bool)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if opts.EntityFilter != "" && entityIdx >= 0 && entityIdx < len(record) {
			entity := strings.TrimSpace(strings.Trim(record[entityIdx], "\""))
			if entity != opts.EntityFilter {
				continue
			}
		}

		if yearIdx >= len(record) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(record[yearIdx]))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", record[yearIdx], err)
		}
		if seen[year] {
			return nil, fmt.Errorf("duplicate year %d", year)
		}
		seen[year] = true
		years = append(years, year)

		for g, cols := range opts.Groups {
			points[cols.Name][year] = Point{
				Year:     year,
				Estimate: parseValue(record, estIdx[g]),
				Medium:   parseValue(record, medIdx[g]),
			}
		}
	}

	if len(years) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}
	sort.Ints(years)

	dataset := NewDataset()
	for _, cols := range opts.Groups {
		pts := make([]Point, len(years))
		for i, y := range years {
			pts[i] = points[cols.Name][y]
		}
		s, err := FromPoints(cols.Name, pts)
		if err != nil {
			return nil, err
		}
		if err := dataset.Add(s); err != nil {
			return nil, err
		}
	}
	return dataset, nil
}

// parseValue reads a float cell, returning NaN for absent or non-numeric
// values ("", "NA", "NaN", "null").
func parseValue(record []string, idx int) float64 {
	if idx < 0 || idx >= len(record) {
		return math.NaN()
	}
	cell := strings.TrimSpace(strings.Trim(record[idx], "\""))
	if cell == "" || cell == "NA" || cell == "NaN" || cell == "null" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
