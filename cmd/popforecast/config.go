package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sartorproj/popforecast/forest"
	"github.com/sartorproj/popforecast/neighbors"
	"github.com/sartorproj/popforecast/polyfit"
	"github.com/sartorproj/popforecast/timeseries"
)

// GroupSpec maps one age group to its CSV column pair.
type GroupSpec struct {
	Name           string `mapstructure:"name"`
	EstimateColumn string `mapstructure:"estimate_column"`
	MediumColumn   string `mapstructure:"medium_column"`
}

// Config holds the CLI configuration, loadable from a YAML file with
// defaults matching the recommended hyperparameters.
type Config struct {
	Entity       string      `mapstructure:"entity"`
	BoundaryYear int         `mapstructure:"boundary_year"`
	Groups       []GroupSpec `mapstructure:"groups"`

	Forest struct {
		Trees           int   `mapstructure:"trees"`
		MaxDepth        int   `mapstructure:"max_depth"`
		MinSamplesSplit int   `mapstructure:"min_samples_split"`
		Seed            int64 `mapstructure:"seed"`
	} `mapstructure:"forest"`

	Neighbors struct {
		K int `mapstructure:"k"`
	} `mapstructure:"neighbors"`

	Polynomial struct {
		Degree int `mapstructure:"degree"`
	} `mapstructure:"polynomial"`
}

// loadConfig reads an optional config file over the defaults.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("entity", "Vietnam")
	v.SetDefault("boundary_year", 2023)

	fc := forest.DefaultConfig()
	v.SetDefault("forest.trees", fc.Trees)
	v.SetDefault("forest.max_depth", fc.MaxDepth)
	v.SetDefault("forest.min_samples_split", fc.MinSamplesSplit)
	v.SetDefault("forest.seed", fc.Seed)

	v.SetDefault("neighbors.k", neighbors.DefaultConfig().K)
	v.SetDefault("polynomial.degree", polyfit.DefaultConfig().Degree)
}

// csvOptions builds the loader options from the config, falling back to the
// default OWID column layout when no groups are configured.
func (c *Config) csvOptions() *timeseries.CSVOptions {
	opts := timeseries.DefaultCSVOptions()
	opts.EntityFilter = c.Entity
	if len(c.Groups) > 0 {
		opts.Groups = opts.Groups[:0]
		for _, g := range c.Groups {
			opts.Groups = append(opts.Groups, timeseries.GroupColumns{
				Name:           g.Name,
				EstimateColumn: g.EstimateColumn,
				MediumColumn:   g.MediumColumn,
			})
		}
	}
	return opts
}

func (c *Config) forestConfig() *forest.Config {
	return &forest.Config{
		Trees:           c.Forest.Trees,
		MaxDepth:        c.Forest.MaxDepth,
		MinSamplesSplit: c.Forest.MinSamplesSplit,
		Seed:            c.Forest.Seed,
	}
}

func (c *Config) neighborsConfig() *neighbors.Config {
	return &neighbors.Config{K: c.Neighbors.K}
}

func (c *Config) polyfitConfig() *polyfit.Config {
	return &polyfit.Config{Degree: c.Polynomial.Degree}
}
