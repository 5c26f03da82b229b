package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		StartDate:     "2024-03-04",
		Days:          14,
		Scale:         1.0,
		Seed:          1,
		Parallelism:   4,
		OutputDir:     "./out",
		Sources:       []string{"all"},
		Scenarios:     []string{"all"},
		SourceTimeout: time.Minute,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDays, cfg.Days)
	assert.Equal(t, 1.0, cfg.Scale)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, []string{"all"}, cfg.Sources)
	assert.Equal(t, []string{"all"}, cfg.Scenarios)
	assert.Equal(t, DefaultSourceTimeout, cfg.SourceTimeout)

	start, err := cfg.Start()
	require.NoError(t, err)
	assert.True(t, start.Before(time.Now().UTC()))
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stagehand.yaml")
	body := `
start_date: "2024-06-01"
days: 7
scale: 2.5
seed: 99
sources: [dns, vpn]
volume:
  dns: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", cfg.StartDate)
	assert.Equal(t, 7, cfg.Days)
	assert.Equal(t, 2.5, cfg.Scale)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, []string{"dns", "vpn"}, cfg.Sources)
	assert.Equal(t, 0.5, cfg.VolumeFor("dns"))
	assert.Equal(t, 1.0, cfg.VolumeFor("vpn"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero days", func(c *Config) { c.Days = 0 }, ErrInvalidDays},
		{"negative days", func(c *Config) { c.Days = -3 }, ErrInvalidDays},
		{"zero scale", func(c *Config) { c.Scale = 0 }, ErrInvalidScale},
		{"negative scale", func(c *Config) { c.Scale = -1 }, ErrInvalidScale},
		{"zero parallelism", func(c *Config) { c.Parallelism = 0 }, ErrInvalidParallelism},
		{"bad start date", func(c *Config) { c.StartDate = "04/03/2024" }, ErrInvalidStartDate},
		{"negative volume", func(c *Config) { c.Volume = map[string]float64{"dns": -2} }, ErrInvalidScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_DefaultsZeroTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.SourceTimeout = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultSourceTimeout, cfg.SourceTimeout)
}

func TestStart_ParsesAsUTCMidnight(t *testing.T) {
	cfg := validConfig()
	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), start)
}
