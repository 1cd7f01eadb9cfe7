// Package config loads knapgrid configuration from a YAML file with
// environment-variable overrides. Missing values fall back to defaults that
// reproduce the reference run (budget 100, granularity 2, seed 3).
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/knapgrid/checkpoint"
	"github.com/katalvlaran/knapgrid/knapsack"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Solver   SolverConfig   `yaml:"solver"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Benefits BenefitsConfig `yaml:"benefits"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SolverConfig holds the dynamic-program parameters.
type SolverConfig struct {
	Budget          float64 `yaml:"budget"`
	Granularity     float64 `yaml:"granularity"`
	AutoGranularity bool    `yaml:"autoGranularity"`
	Scale           int64   `yaml:"scale"`
	MaxCheckpoints  int     `yaml:"maxCheckpoints"`
	Lookup          string  `yaml:"lookup"`
	BenefitPolicy   string  `yaml:"benefitPolicy"`
	Workers         int     `yaml:"workers"`
}

// DatasetConfig locates the item costs.
type DatasetConfig struct {
	Path         string  `yaml:"path"`
	Format       string  `yaml:"format"`
	CostProperty string  `yaml:"costProperty"`
	CostDivisor  float64 `yaml:"costDivisor"`
	// RegionsPath switches GeoJSON datasets to geometry-derived benefits.
	RegionsPath string `yaml:"regionsPath"`
}

// BenefitsConfig controls benefit generation: seeded uniform draws, or
// region targets when a regions file is configured.
type BenefitsConfig struct {
	Seed          int64     `yaml:"seed"`
	Scale         float64   `yaml:"scale"`
	TargetAges    []string  `yaml:"targetAges"`
	ActiveFactors []float64 `yaml:"activeFactors"`
	Buses         int       `yaml:"buses"`
}

// RedisConfig holds the solution-cache connection parameters.
type RedisConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	PoolSize  int           `yaml:"poolSize"`
	CacheTTL  time.Duration `yaml:"cacheTTL"`
	KeyPrefix string        `yaml:"keyPrefix"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	TextfilePath string `yaml:"textfilePath"`
}

// Load reads a YAML config file (if path is not empty), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Budget:         100,
			Granularity:    2,
			Scale:          checkpoint.DefaultScale,
			MaxCheckpoints: checkpoint.DefaultMaxCheckpoints,
			Lookup:         knapsack.LookupFloor.String(),
			BenefitPolicy:  knapsack.DoubleCount.String(),
			Workers:        1,
		},
		Dataset: DatasetConfig{
			CostProperty: "Cost",
			CostDivisor:  1e5,
		},
		Benefits: BenefitsConfig{
			Seed:          3,
			Scale:         10,
			ActiveFactors: []float64{1, 1, 1},
			Buses:         1,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			PoolSize:  10,
			CacheTTL:  10 * time.Minute,
			KeyPrefix: "knapgrid:",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks value ranges and enum fields.
func (c *Config) Validate() error {
	s := c.Solver
	if math.IsNaN(s.Budget) || math.IsInf(s.Budget, 0) || s.Budget < 0 {
		return fmt.Errorf("%w: solver.budget %v", ErrInvalidConfig, s.Budget)
	}
	if !s.AutoGranularity && !(s.Granularity > 0) {
		return fmt.Errorf("%w: solver.granularity %v", ErrInvalidConfig, s.Granularity)
	}
	if s.Scale <= 0 {
		return fmt.Errorf("%w: solver.scale %d", ErrInvalidConfig, s.Scale)
	}
	if s.Workers < 0 || s.MaxCheckpoints < 0 {
		return fmt.Errorf("%w: solver.workers/maxCheckpoints must be non-negative", ErrInvalidConfig)
	}
	if _, err := knapsack.ParseLookupMode(s.Lookup); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := knapsack.ParseBenefitPolicy(s.BenefitPolicy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Dataset.Format {
	case "", "geojson", "items":
	default:
		return fmt.Errorf("%w: dataset.format %q", ErrInvalidConfig, c.Dataset.Format)
	}
	if !(c.Dataset.CostDivisor > 0) {
		return fmt.Errorf("%w: dataset.costDivisor %v", ErrInvalidConfig, c.Dataset.CostDivisor)
	}
	if c.Benefits.Scale < 0 {
		return fmt.Errorf("%w: benefits.scale %v", ErrInvalidConfig, c.Benefits.Scale)
	}
	if len(c.Benefits.ActiveFactors) != 3 {
		return fmt.Errorf("%w: benefits.activeFactors needs 3 values, got %d", ErrInvalidConfig, len(c.Benefits.ActiveFactors))
	}
	for _, f := range c.Benefits.ActiveFactors {
		if !(f >= 0) {
			return fmt.Errorf("%w: benefits.activeFactors %v", ErrInvalidConfig, c.Benefits.ActiveFactors)
		}
	}
	if c.Benefits.Buses < 1 {
		return fmt.Errorf("%w: benefits.buses %d", ErrInvalidConfig, c.Benefits.Buses)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.TextfilePath == "" {
		return fmt.Errorf("%w: metrics.textfilePath is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}

// SolverOptions converts the solver section into knapsack.Options.
func (c *Config) SolverOptions() (knapsack.Options, error) {
	lookup, err := knapsack.ParseLookupMode(c.Solver.Lookup)
	if err != nil {
		return knapsack.Options{}, err
	}
	policy, err := knapsack.ParseBenefitPolicy(c.Solver.BenefitPolicy)
	if err != nil {
		return knapsack.Options{}, err
	}

	return knapsack.Options{
		Scale:          c.Solver.Scale,
		MaxCheckpoints: c.Solver.MaxCheckpoints,
		Lookup:         lookup,
		Benefit:        policy,
		Workers:        c.Solver.Workers,
	}, nil
}

// applyEnvOverrides reads KG_* environment variables and overrides the
// corresponding config fields. Unparseable numbers are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KG_SOLVER_BUDGET"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solver.Budget = f
		}
	}
	if v := os.Getenv("KG_SOLVER_GRANULARITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solver.Granularity = f
		}
	}
	if v := os.Getenv("KG_SOLVER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.Workers = n
		}
	}
	if v := os.Getenv("KG_SOLVER_LOOKUP"); v != "" {
		cfg.Solver.Lookup = v
	}
	if v := os.Getenv("KG_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("KG_DATASET_REGIONS"); v != "" {
		cfg.Dataset.RegionsPath = v
	}
	if v := os.Getenv("KG_BENEFITS_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Benefits.Seed = n
		}
	}
	if v := os.Getenv("KG_REDIS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enabled = b
		}
	}
	if v := os.Getenv("KG_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("KG_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("KG_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("KG_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("KG_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.TextfilePath = v
	}
}
