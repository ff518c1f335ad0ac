package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, 1000, cfg.Plot.MaxDisplayPoints)
	assert.Equal(t, 0.05, cfg.Plot.RescaleMargin)
	assert.Equal(t, 1, cfg.Plot.DefaultLineWidth)
	assert.Equal(t, 0, cfg.Plot.DefaultPlotType)
	assert.Equal(t, 8.0, cfg.Markers.HitTolerance)
	assert.Equal(t, []string{"x", "x", "y", "y"}, cfg.Markers.Bindings)
	assert.Len(t, cfg.Markers.Fractions, 4)
	assert.Equal(t, 20*time.Millisecond, cfg.Source.SampleRate)
	assert.Equal(t, float64(10), cfg.Source.WindowSeconds)
	assert.Equal(t, 256, cfg.Source.FFTSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, 1000, cfg.Plot.MaxDisplayPoints)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
plot:
  max_display_points: 500
  rescale_margin: 0.1
  default_line_width: 2
  default_plot_type: 2

markers:
  hit_tolerance: 12
  bindings: [x, y, x, y]
  fractions: [0.1, 0.9, 0.2, 0.8]

source:
  sample_rate: 50ms
  window_seconds: 5
  wave_frequency: 3.5
  wave_amplitude: 0.5
  second_frequency: 11
  noise_level: 0.002
  fft_size: 512

log:
  level: debug
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 500, cfg.Plot.MaxDisplayPoints)
	assert.Equal(t, 0.1, cfg.Plot.RescaleMargin)
	assert.Equal(t, 2, cfg.Plot.DefaultLineWidth)
	assert.Equal(t, 2, cfg.Plot.DefaultPlotType)
	assert.Equal(t, 12.0, cfg.Markers.HitTolerance)
	assert.Equal(t, []string{"x", "y", "x", "y"}, cfg.Markers.Bindings)
	assert.Equal(t, []float64{0.1, 0.9, 0.2, 0.8}, cfg.Markers.Fractions)
	assert.Equal(t, 50*time.Millisecond, cfg.Source.SampleRate)
	assert.Equal(t, float64(5), cfg.Source.WindowSeconds)
	assert.Equal(t, 512, cfg.Source.FFTSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
plot:
  max_display_points: 250
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, 250, cfg.Plot.MaxDisplayPoints)
	assert.Equal(t, 0.05, cfg.Plot.RescaleMargin)                       // default
	assert.Equal(t, []string{"x", "x", "y", "y"}, cfg.Markers.Bindings) // default
	assert.Equal(t, 20*time.Millisecond, cfg.Source.SampleRate)         // default
}

func TestLoad_BadMarkerBindings(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
markers:
  bindings: [x, z, y, q]
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)

	// Unknown axis names fall back to the default binding per marker
	assert.Equal(t, []string{"x", "x", "y", "y"}, cfg.Markers.Bindings)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Plot.MaxDisplayPoints = 2000
	cfg.Log.Level = "trace"

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, 2000, loaded.Plot.MaxDisplayPoints)
	assert.Equal(t, "trace", loaded.Log.Level)
}
