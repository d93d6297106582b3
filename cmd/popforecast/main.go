// Command popforecast fits the three regression variants to historical
// age-group population data and evaluates them against published projections.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sartorproj/popforecast/evaluate"
	"github.com/sartorproj/popforecast/model"
	"github.com/sartorproj/popforecast/runner"
	"github.com/sartorproj/popforecast/timeseries"
)

var (
	dataFile   string
	configFile string
	outputFile string
	entity     string
	boundary   int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "popforecast",
		Short: "Population forecasting model comparison",
		Long: `Fits random forest, k-nearest-neighbor and polynomial regressors to
historical age-group population counts, predicts over the projection
horizon and reports RMSE, MAE and R-squared per model and age group.`,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Population CSV file (required)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (YAML)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write predictions and metrics as JSON")
	rootCmd.Flags().StringVar(&entity, "entity", "", "Entity to filter (overrides config)")
	rootCmd.Flags().IntVar(&boundary, "boundary", 0, "Boundary year between history and projection (overrides config)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.MarkFlagRequired("data")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger()

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if entity != "" {
		cfg.Entity = entity
	}
	if boundary != 0 {
		cfg.BoundaryYear = boundary
	}

	log.Info().Str("data", dataFile).Str("entity", cfg.Entity).Msg("loading dataset")
	ds, err := timeseries.LoadCSV(dataFile, cfg.csvOptions())
	if err != nil {
		return fmt.Errorf("load %s: %w", dataFile, err)
	}
	min, max, _ := ds.YearRange()
	log.Info().Int("groups", ds.Len()).Int("first_year", min).Int("last_year", max).Msg("dataset loaded")

	r := runner.New(&runner.Config{
		Forest:    cfg.forestConfig(),
		Neighbors: cfg.neighborsConfig(),
		Polyfit:   cfg.polyfitConfig(),
		Logger:    log,
	})
	results, err := r.Run(ds, cfg.BoundaryYear, model.Variants())
	if err != nil {
		return err
	}

	_, proj, err := timeseries.Split(ds, cfg.BoundaryYear)
	if err != nil {
		return err
	}
	report := evaluate.Evaluate(results, proj)

	printReport(ds, report, cfg.BoundaryYear)

	if outputFile != "" {
		if err := exportJSON(outputFile, results, report, ds, cfg.BoundaryYear); err != nil {
			return err
		}
		log.Info().Str("file", outputFile).Msg("results exported")
	}
	return nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func printReport(ds *timeseries.Dataset, report *evaluate.Report, boundaryYear int) {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("MODEL EVALUATION (projection years > %d)\n", boundaryYear)
	fmt.Println(strings.Repeat("=", 72))

	for _, variant := range model.Variants() {
		fmt.Printf("\n%s\n", strings.ToUpper(strings.ReplaceAll(variant.String(), "_", " ")))
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%-22s %-12s %-12s %-10s\n", "Age Group", "RMSE", "MAE", "R²")
		fmt.Println(strings.Repeat("-", 60))

		for _, group := range ds.Groups() {
			m, ok := report.Metrics(group, variant)
			if !ok {
				fmt.Printf("%-22s %-36s\n", group, "(not evaluated)")
				continue
			}
			fmt.Printf("%-22s %-12.0f %-12.0f %-10.4f\n", group, m.RMSE, m.MAE, m.R2)
		}
	}

	fmt.Printf("\nBEST MODEL PER AGE GROUP\n")
	fmt.Println(strings.Repeat("-", 60))
	for _, group := range ds.Groups() {
		best, ok := report.Best(group)
		if !ok {
			fmt.Printf("%-22s (no evaluated variant)\n", group)
			continue
		}
		m, _ := report.Metrics(group, best)
		fmt.Printf("%-22s %s (R² = %.4f)\n", group, best, m.R2)
	}

	if failures := report.Failures(); len(failures) > 0 {
		fmt.Printf("\nFAILED UNITS\n")
		fmt.Println(strings.Repeat("-", 60))
		for key, err := range failures {
			fmt.Printf("%-34s %v\n", key, err)
		}
	}
	fmt.Println(strings.Repeat("=", 72))
}

// unitResult is the JSON export shape of one (age group, variant) unit.
type unitResult struct {
	Group     string    `json:"group"`
	Variant   string    `json:"variant"`
	Years     []int     `json:"years,omitempty"`
	Forecasts []float64 `json:"forecasts,omitempty"`
	RMSE      float64   `json:"rmse"`
	MAE       float64   `json:"mae"`
	R2        float64   `json:"r2"`
	Error     string    `json:"error,omitempty"`
}

type outputData struct {
	BoundaryYear int               `json:"boundary_year"`
	Units        []unitResult      `json:"units"`
	Best         map[string]string `json:"best_model_per_group"`
}

func exportJSON(filename string, results runner.Results, report *evaluate.Report, ds *timeseries.Dataset, boundaryYear int) error {
	out := outputData{BoundaryYear: boundaryYear, Best: make(map[string]string)}

	for _, group := range ds.Groups() {
		if best, ok := report.Best(group); ok {
			out.Best[group] = best.String()
		}
		for _, variant := range model.Variants() {
			key := runner.Key{Group: group, Variant: variant}
			res, ok := results[key]
			if !ok {
				continue
			}
			unit := unitResult{Group: group, Variant: variant.String()}
			if res.Err != nil {
				unit.Error = res.Err.Error()
			} else {
				unit.Years = res.Prediction.Years
				unit.Forecasts = res.Prediction.Values
				if m, ok := report.Metrics(group, variant); ok {
					unit.RMSE = m.RMSE
					unit.MAE = m.MAE
					unit.R2 = m.R2
				}
			}
			out.Units = append(out.Units, unit)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
