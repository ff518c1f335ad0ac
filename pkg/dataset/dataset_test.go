package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotTypeAxisLabels(t *testing.T) {
	tests := []struct {
		name  string
		typ   PlotType
		wantX string
		wantY string
	}{
		{
			name:  "time domain",
			typ:   Time,
			wantX: "Time (s)",
			wantY: "Amplitude (V)",
		},
		{
			name:  "fft amplitude",
			typ:   FFTAmplitude,
			wantX: "Frequency (Hz)",
			wantY: "Amplitude (V)",
		},
		{
			name:  "fft phase",
			typ:   FFTPhase,
			wantX: "Frequency (Hz)",
			wantY: "Phase (rad)",
		},
		{
			name:  "fft phase linearized",
			typ:   FFTPhaseLinear,
			wantX: "Frequency (Hz)",
			wantY: "Phase residual (rad)",
		},
		{
			name:  "oscilloscope channel 1",
			typ:   Osc1,
			wantX: "Time (s)",
			wantY: "Voltage (V)",
		},
		{
			name:  "oscilloscope channel 2",
			typ:   Osc2,
			wantX: "Time (s)",
			wantY: "Voltage (V)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.typ.AxisLabels()
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestPlotTypeIsPhase(t *testing.T) {
	assert.True(t, FFTPhase.IsPhase())
	assert.True(t, FFTPhaseLinear.IsPhase())
	assert.False(t, Time.IsPhase())
	assert.False(t, FFTAmplitude.IsPhase())
	assert.False(t, Osc1.IsPhase())
	assert.False(t, Osc2.IsPhase())
}

func TestLineWidthStroke(t *testing.T) {
	assert.Equal(t, float32(1), Normal.Stroke())
	assert.Equal(t, float32(2), Large.Stroke())
	assert.Equal(t, float32(3), Larger.Stroke())
	// Out-of-range values fall back to normal
	assert.Equal(t, float32(1), LineWidth(0).Stroke())
	assert.Equal(t, float32(1), LineWidth(17).Stroke())
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name    string
		samples []Sample
		ok      bool
		xMin    float64
		xMax    float64
		yMin    float64
		yMax    float64
	}{
		{
			name:    "empty",
			samples: nil,
			ok:      false,
		},
		{
			name:    "single sample",
			samples: []Sample{{X: 1, Y: 2}},
			ok:      true,
			xMin:    1, xMax: 1, yMin: 2, yMax: 2,
		},
		{
			name: "unordered samples",
			samples: []Sample{
				{X: 3, Y: -1},
				{X: -2, Y: 5},
				{X: 1, Y: 0},
			},
			ok:   true,
			xMin: -2, xMax: 3, yMin: -1, yMax: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xMin, xMax, yMin, yMax, ok := Bounds(tt.samples)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.xMin, xMin)
			assert.Equal(t, tt.xMax, xMax)
			assert.Equal(t, tt.yMin, yMin)
			assert.Equal(t, tt.yMax, yMax)
		})
	}
}

func TestDownsample_NoDownsampling(t *testing.T) {
	samples := []Sample{
		{X: 0, Y: 1.0},
		{X: 1, Y: 1.1},
		{X: 2, Y: 1.2},
	}

	// Test with nil dst
	result := Downsample(nil, samples, 10)
	require.Equal(t, 3, len(result))
	assert.Equal(t, samples, result)

	// Test with sufficient capacity dst
	dst := make([]Sample, 0, 10)
	result = Downsample(dst, samples, 10)
	require.Equal(t, 3, len(result))
	assert.Equal(t, cap(dst), cap(result))
}

func TestDownsample_WithDownsampling(t *testing.T) {
	samples := make([]Sample, 100)
	for i := range samples {
		samples[i] = Sample{X: float64(i), Y: float64(i) * 0.01}
	}

	dst := make([]Sample, 0, 20)
	result := Downsample(dst, samples, 10)
	require.Equal(t, 10, len(result))

	// First sample always survives decimation
	assert.Equal(t, samples[0], result[0])
	// Points come from across the full range
	assert.GreaterOrEqual(t, result[len(result)-1].X, 80.0)
}

func TestDownsample_DestinationReuse(t *testing.T) {
	dst := make([]Sample, 0, 10)
	samples := make([]Sample, 50)
	for i := range samples {
		samples[i] = Sample{X: float64(i)}
	}

	first := Downsample(dst, samples, 10)
	second := Downsample(first, samples, 10)
	assert.Equal(t, cap(first), cap(second))
	assert.Equal(t, first, second)
}
