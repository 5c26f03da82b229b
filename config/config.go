// Package config loads and validates the run configuration for a generation
// run. Configuration is read once at startup from defaults, an optional YAML
// file, and STAGEHAND_* environment variables; after Load returns the Config
// is never mutated, so all workers share it without synchronization.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultDays is the default simulation length.
	DefaultDays = 14
	// DefaultSourceTimeout bounds one source's full generation pass.
	DefaultSourceTimeout = 2 * time.Minute
)

// Config holds all configuration for one generation run. Read-only after Load.
type Config struct {
	// StartDate is the first simulated day, YYYY-MM-DD, interpreted as UTC.
	StartDate string `mapstructure:"start_date"`
	// Days is the simulated day count; total cells = Days * 24.
	Days int `mapstructure:"days"`
	// Scale multiplies every source's expected baseline hourly volume.
	Scale float64 `mapstructure:"scale"`
	// Seed is the deterministic basis for every random stream in the run.
	Seed int64 `mapstructure:"seed"`
	// Parallelism is the worker lane count. Each lane owns whole sources.
	Parallelism int `mapstructure:"parallelism"`
	// OutputDir receives one flat file per source.
	OutputDir string `mapstructure:"output_dir"`
	// Sources selects the generators to run ("all" or explicit ids).
	Sources []string `mapstructure:"sources"`
	// Scenarios selects scenarios by name, "all", or category shortcut.
	Scenarios []string `mapstructure:"scenarios"`
	// ScenarioFile optionally points at a scenario override file.
	ScenarioFile string `mapstructure:"scenario_file"`
	// SourceTimeout bounds one source's generation; past it the source is
	// marked failed and excluded from output.
	SourceTimeout time.Duration `mapstructure:"source_timeout"`
	// Volume holds per-source multipliers applied on top of Scale.
	Volume map[string]float64 `mapstructure:"volume"`
}

// Load reads configuration from the given file (optional), environment, and
// defaults, then validates it. Validation failures are fatal for the run and
// occur before any generation starts.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("start_date", time.Now().UTC().AddDate(0, 0, -DefaultDays).Format("2006-01-02"))
	v.SetDefault("days", DefaultDays)
	v.SetDefault("scale", 1.0)
	v.SetDefault("seed", 1)
	v.SetDefault("parallelism", 4)
	v.SetDefault("output_dir", "./out")
	v.SetDefault("sources", []string{"all"})
	v.SetDefault("scenarios", []string{"all"})
	v.SetDefault("source_timeout", DefaultSourceTimeout)

	v.SetEnvPrefix("STAGEHAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fail-fast invariants.
func (c *Config) Validate() error {
	if _, err := c.Start(); err != nil {
		return err
	}
	if c.Days <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDays, c.Days)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidScale, c.Scale)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidParallelism, c.Parallelism)
	}
	if c.SourceTimeout <= 0 {
		c.SourceTimeout = DefaultSourceTimeout
	}
	for src, mult := range c.Volume {
		if mult < 0 {
			return fmt.Errorf("%w: volume.%s = %g", ErrInvalidScale, src, mult)
		}
	}
	return nil
}

// Start parses the configured start date.
func (c *Config) Start() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidStartDate, c.StartDate)
	}
	return t.UTC(), nil
}

// VolumeFor returns the per-source multiplier, defaulting to 1.
func (c *Config) VolumeFor(source string) float64 {
	if m, ok := c.Volume[source]; ok {
		return m
	}
	return 1.0
}
