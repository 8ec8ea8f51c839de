// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// DataDir is the directory holding the three input files.
	DataDir string `koanf:"data_dir"`

	// CountryCodesFile, ExchangeRatesFile and DebtFile are names inside DataDir.
	CountryCodesFile  string `koanf:"country_codes_file"`
	ExchangeRatesFile string `koanf:"exchange_rates_file"`
	DebtFile          string `koanf:"debt_file"`

	// FirstYear and LastYear bound the animated range, inclusive.
	FirstYear int `koanf:"first_year"`
	LastYear  int `koanf:"last_year"`

	// EuroAdoptionYear is the first year DEU, FRA, ESP and ITA count as Euro members.
	EuroAdoptionYear int `koanf:"euro_adoption_year"`

	// FramePauseMS is the display time of one frame.
	FramePauseMS int `koanf:"frame_pause_ms"`

	// Output is the animated GIF path. FramesDir, when set, also receives one PNG per year.
	Output    string `koanf:"output"`
	FramesDir string `koanf:"frames_dir"`

	// Figure geometry.
	WidthIn  float64 `koanf:"width_in"`
	HeightIn float64 `koanf:"height_in"`
	DPI      int     `koanf:"dpi"`

	// RenderWorkers is the number of frames drawn concurrently; 0 means one per CPU.
	RenderWorkers int `koanf:"render_workers"`

	// Addr configures the viewer listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MetricsFile, when set, receives a Prometheus textfile dump after render.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		DataDir:           "data",
		CountryCodesFile:  "country_codes_ISO_3166-1_alpha-3.xlsx",
		ExchangeRatesFile: "exchange_rates.csv",
		DebtFile:          "central_government_debt.xlsx",
		FirstYear:         1994,
		LastYear:          2021,
		EuroAdoptionYear:  1998,
		FramePauseMS:      400,
		Output:            "debt_vs_purchasing_power.gif",
		WidthIn:           19.18,
		HeightIn:          9.58,
		DPI:               50,
		RenderWorkers:     1,
		Addr:              ":9080",
	}
}

// Pause returns FramePauseMS as a duration.
func (c *Config) Pause() time.Duration {
	return time.Duration(c.FramePauseMS) * time.Millisecond
}

// CountryCodesPath joins DataDir and CountryCodesFile.
func (c *Config) CountryCodesPath() string {
	return filepath.Join(c.DataDir, c.CountryCodesFile)
}

// ExchangeRatesPath joins DataDir and ExchangeRatesFile.
func (c *Config) ExchangeRatesPath() string {
	return filepath.Join(c.DataDir, c.ExchangeRatesFile)
}

// DebtPath joins DataDir and DebtFile.
func (c *Config) DebtPath() string {
	return filepath.Join(c.DataDir, c.DebtFile)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.CountryCodesFile == "" || c.ExchangeRatesFile == "" || c.DebtFile == "":
		return fmt.Errorf("%w: input file names must not be empty", ErrInvalidConfig)
	case c.FirstYear > c.LastYear:
		return fmt.Errorf("%w: first_year %d after last_year %d", ErrInvalidConfig, c.FirstYear, c.LastYear)
	case c.FramePauseMS < 0:
		return fmt.Errorf("%w: frame_pause_ms must not be negative", ErrInvalidConfig)
	case c.WidthIn <= 0 || c.HeightIn <= 0:
		return fmt.Errorf("%w: figure size must be positive", ErrInvalidConfig)
	case c.DPI <= 0:
		return fmt.Errorf("%w: dpi must be positive", ErrInvalidConfig)
	case c.RenderWorkers < 0:
		return fmt.Errorf("%w: render_workers must not be negative", ErrInvalidConfig)
	}
	return nil
}
