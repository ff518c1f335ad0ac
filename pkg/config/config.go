package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Plot    PlotConfig    `yaml:"plot"`
	Markers MarkersConfig `yaml:"markers"`
	Source  SourceConfig  `yaml:"source"`
	Log     LogConfig     `yaml:"log"`
}

// PlotConfig contains plot surface parameters.
type PlotConfig struct {
	MaxDisplayPoints int     `yaml:"max_display_points"` // Maximum points per line after decimation
	RescaleMargin    float64 `yaml:"rescale_margin"`     // Fraction of the data range added around it on rescale
	DefaultLineWidth int     `yaml:"default_line_width"` // 1 = normal, 2 = large, 3 = larger
	DefaultPlotType  int     `yaml:"default_plot_type"`  // Index into the plot type list, 0 = time domain
}

// MarkersConfig contains range marker parameters.
type MarkersConfig struct {
	HitTolerance float64   `yaml:"hit_tolerance"` // Grab distance in pixels
	Bindings     []string  `yaml:"bindings"`      // Per-marker drag axis, "x" or "y", exactly 4 entries
	Fractions    []float64 `yaml:"fractions"`     // Initial positions as fractions of the bound axis range
}

// SourceConfig contains synthetic data source parameters.
type SourceConfig struct {
	SampleRate      time.Duration `yaml:"sample_rate"`      // Live update period
	WindowSeconds   float64       `yaml:"window_seconds"`   // Live trace history window
	WaveFrequency   float64       `yaml:"wave_frequency"`   // Primary tone (Hz)
	WaveAmplitude   float64       `yaml:"wave_amplitude"`   // Primary tone amplitude (V)
	SecondFrequency float64       `yaml:"second_frequency"` // Secondary tone (Hz)
	NoiseLevel      float64       `yaml:"noise_level"`      // Deterministic noise amplitude (V)
	FFTSize         int           `yaml:"fft_size"`         // Points in synthetic FFT snapshots
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Plot: PlotConfig{
			MaxDisplayPoints: 1000,
			RescaleMargin:    0.05,
			DefaultLineWidth: 1,
			DefaultPlotType:  0,
		},
		Markers: MarkersConfig{
			HitTolerance: 8.0,
			Bindings:     []string{"x", "x", "y", "y"},
			Fractions:    []float64{0.25, 0.75, 0.25, 0.75},
		},
		Source: SourceConfig{
			SampleRate:      20 * time.Millisecond, // 50 samples per second
			WindowSeconds:   10,
			WaveFrequency:   2.0,
			WaveAmplitude:   1.0,
			SecondFrequency: 7.0,
			NoiseLevel:      0.01,
			FFTSize:         256,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Plot.MaxDisplayPoints <= 0 {
		c.Plot.MaxDisplayPoints = def.Plot.MaxDisplayPoints
	}
	if c.Plot.RescaleMargin <= 0 {
		c.Plot.RescaleMargin = def.Plot.RescaleMargin
	}
	if c.Plot.DefaultLineWidth < 1 || c.Plot.DefaultLineWidth > 3 {
		c.Plot.DefaultLineWidth = def.Plot.DefaultLineWidth
	}
	if c.Plot.DefaultPlotType < 0 || c.Plot.DefaultPlotType > 5 {
		c.Plot.DefaultPlotType = def.Plot.DefaultPlotType
	}

	if c.Markers.HitTolerance <= 0 {
		c.Markers.HitTolerance = def.Markers.HitTolerance
	}
	if len(c.Markers.Bindings) != 4 {
		c.Markers.Bindings = append([]string(nil), def.Markers.Bindings...)
	}
	for i, b := range c.Markers.Bindings {
		if b != "x" && b != "y" {
			c.Markers.Bindings[i] = def.Markers.Bindings[i]
		}
	}
	if len(c.Markers.Fractions) != 4 {
		c.Markers.Fractions = append([]float64(nil), def.Markers.Fractions...)
	}

	if c.Source.SampleRate <= 0 {
		c.Source.SampleRate = def.Source.SampleRate
	}
	if c.Source.WindowSeconds <= 0 {
		c.Source.WindowSeconds = def.Source.WindowSeconds
	}
	if c.Source.WaveFrequency <= 0 {
		c.Source.WaveFrequency = def.Source.WaveFrequency
	}
	if c.Source.WaveAmplitude <= 0 {
		c.Source.WaveAmplitude = def.Source.WaveAmplitude
	}
	if c.Source.SecondFrequency <= 0 {
		c.Source.SecondFrequency = def.Source.SecondFrequency
	}
	if c.Source.FFTSize <= 0 {
		c.Source.FFTSize = def.Source.FFTSize
	}

	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
