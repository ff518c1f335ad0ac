// Package dataset defines the measurement dataset model shared by the data
// source and the graph widget.
package dataset

import "github.com/google/uuid"

// ID uniquely identifies a dataset. IDs are assigned by the dataset provider,
// never by the graph.
type ID = uuid.UUID

// Sample is a single (x, y) measurement point.
type Sample struct {
	X float64
	Y float64
}

// Dataset is an ordered sequence of samples tagged with the plot type it
// belongs to. The graph never mutates a dataset; it only reads the samples at
// render time.
type Dataset struct {
	ID      ID
	Name    string
	Samples []Sample
	Type    PlotType
	Live    bool
}

// PlotType selects how samples are interpreted and labelled.
type PlotType int

const (
	Time PlotType = iota
	FFTAmplitude
	FFTPhase
	FFTPhaseLinear
	Osc1
	Osc2
)

// String returns the display name of the plot type.
func (t PlotType) String() string {
	switch t {
	case Time:
		return "Time"
	case FFTAmplitude:
		return "FFT Amplitude"
	case FFTPhase:
		return "FFT Phase"
	case FFTPhaseLinear:
		return "FFT Phase (linearized)"
	case Osc1:
		return "Oscilloscope CH1"
	case Osc2:
		return "Oscilloscope CH2"
	default:
		return "Unknown"
	}
}

// AxisLabels returns the x and y axis titles for the plot type.
func (t PlotType) AxisLabels() (x, y string) {
	switch t {
	case FFTAmplitude:
		return "Frequency (Hz)", "Amplitude (V)"
	case FFTPhase:
		return "Frequency (Hz)", "Phase (rad)"
	case FFTPhaseLinear:
		return "Frequency (Hz)", "Phase residual (rad)"
	case Osc1, Osc2:
		return "Time (s)", "Voltage (V)"
	default:
		return "Time (s)", "Amplitude (V)"
	}
}

// IsPhase reports whether samples of this type carry wrapped phase angles.
func (t PlotType) IsPhase() bool {
	return t == FFTPhase || t == FFTPhaseLinear
}

// PlotTypes lists all plot types in display order.
func PlotTypes() []PlotType {
	return []PlotType{Time, FFTAmplitude, FFTPhase, FFTPhaseLinear, Osc1, Osc2}
}

// LineWidth is a display attribute applied uniformly to rendered lines and
// range markers.
type LineWidth int

const (
	Normal LineWidth = 1
	Large  LineWidth = 2
	Larger LineWidth = 3
)

// String returns the display name of the line width.
func (w LineWidth) String() string {
	switch w {
	case Large:
		return "Large"
	case Larger:
		return "Larger"
	default:
		return "Normal"
	}
}

// Stroke returns the stroke width in pixels.
func (w LineWidth) Stroke() float32 {
	if w < Normal || w > Larger {
		return float32(Normal)
	}
	return float32(w)
}

// LineWidths lists all line widths in display order.
func LineWidths() []LineWidth {
	return []LineWidth{Normal, Large, Larger}
}

// Bounds returns the data range covered by samples. ok is false when the
// sequence is empty, in which case the bounds are unspecified.
func Bounds(samples []Sample) (xMin, xMax, yMin, yMax float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin, xMax = samples[0].X, samples[0].X
	yMin, yMax = samples[0].Y, samples[0].Y
	for _, s := range samples[1:] {
		if s.X < xMin {
			xMin = s.X
		}
		if s.X > xMax {
			xMax = s.X
		}
		if s.Y < yMin {
			yMin = s.Y
		}
		if s.Y > yMax {
			yMax = s.Y
		}
	}
	return xMin, xMax, yMin, yMax, true
}
