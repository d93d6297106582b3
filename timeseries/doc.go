// Package timeseries provides the data structures for annual age-group
// population series: value resolution, datasets, train/projection splitting,
// and CSV loading.
//
// # Value resolution
//
// Each raw point carries two candidate values, the observed estimate and the
// medium-variant fallback. The resolved value is the estimate when present,
// otherwise the fallback:
//
//	p := timeseries.Point{Year: 2024, Estimate: math.NaN(), Medium: 23.1e6}
//	v, err := p.Resolve() // 23.1e6
//
// A point with both values absent resolves to ErrNoValue; FromPoints records
// such years as NaN so they are excluded from modeling for that series only.
//
// # Datasets and splitting
//
// A Dataset maps age-group names to series over a shared year domain:
//
//	ds := timeseries.NewDataset()
//	ds.Add(children)
//	ds.Add(working)
//	ds.Add(elderly)
//
//	hist, proj, err := timeseries.Split(ds, 2023)
//
// The historical part keeps years <= 2023 and the projection part years
// >= 2024. NaN masking happens per series at ValidXY time, so a gap in one
// age group never drops that year from the others.
//
// # Loading from CSV
//
// Load the wide-format population export, filtered to one entity:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.EntityFilter = "Vietnam"
//	ds, err := timeseries.LoadCSV("population.csv", opts)
package timeseries
