package graph

import (
	"image/color"

	"fyne.io/fyne/v2/canvas"
	"github.com/itohio/traceview/pkg/anglemath"
	"github.com/itohio/traceview/pkg/dataset"
	"gonum.org/v1/gonum/stat"
)

// palette assigns line colors in slot-creation order.
var palette = []color.RGBA{
	{R: 255, G: 165, B: 0, A: 255},   // orange
	{R: 100, G: 200, B: 255, A: 255}, // light blue
	{R: 120, G: 220, B: 120, A: 255}, // green
	{R: 230, G: 110, B: 230, A: 255}, // magenta
	{R: 240, G: 220, B: 80, A: 255},  // yellow
	{R: 235, G: 100, B: 100, A: 255}, // red
}

// liveColor marks the live trace apart from static lines.
var liveColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}

// series is the rendered representation of one dataset: the display-ready
// point sequence plus the cached canvas segments drawn for it. The dataset
// itself stays owned by the provider; the series only reads it when rebuilt.
type series struct {
	ds     *dataset.Dataset
	points []dataset.Sample
	col    color.Color
	stroke float32

	// Cached canvas objects. Rebuilt by the renderer only while dirty, so a
	// live update does not touch any other line's segments.
	segments []*canvas.Line
	dirty    bool
}

func newSeries(ds *dataset.Dataset, col color.Color, stroke float32, typ dataset.PlotType, maxPoints int) *series {
	s := &series{
		ds:     ds,
		col:    col,
		stroke: stroke,
	}
	s.rebuild(typ, maxPoints)
	return s
}

// rebuild recomputes the display points from the underlying dataset under the
// given plot type and marks the cached segments stale.
func (s *series) rebuild(typ dataset.PlotType, maxPoints int) {
	s.points = buildPoints(s.points[:0], s.ds.Samples, typ, maxPoints)
	s.dirty = true
}

// replace swaps the underlying dataset reference and rebuilds. Used for the
// live slot where new samples arrive at high frequency.
func (s *series) replace(ds *dataset.Dataset, typ dataset.PlotType, maxPoints int) {
	s.ds = ds
	s.rebuild(typ, maxPoints)
}

// setStroke updates the stroke width of the cached segments in place.
func (s *series) setStroke(w float32) {
	s.stroke = w
	for _, seg := range s.segments {
		seg.StrokeWidth = w
	}
}

// buildPoints produces the display-ready point sequence for one dataset. For
// phase plot types the samples are unwrapped at full resolution before
// decimation, so skipped samples cannot hide a wrap. The linearized phase
// type additionally subtracts the least-squares linear component, leaving the
// residual phase.
func buildPoints(dst []dataset.Sample, src []dataset.Sample, typ dataset.PlotType, maxPoints int) []dataset.Sample {
	if !typ.IsPhase() || len(src) == 0 {
		return dataset.Downsample(dst, src, maxPoints)
	}

	ys := make([]float64, len(src))
	for i, p := range src {
		ys[i] = p.Y
	}
	ys = anglemath.UnwrapSlice(ys)

	if typ == dataset.FFTPhaseLinear && len(src) >= 2 {
		xs := make([]float64, len(src))
		for i, p := range src {
			xs[i] = p.X
		}
		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		for i := range ys {
			ys[i] -= alpha + beta*xs[i]
		}
	}

	unwrapped := make([]dataset.Sample, len(src))
	for i := range src {
		unwrapped[i] = dataset.Sample{X: src[i].X, Y: ys[i]}
	}
	return dataset.Downsample(dst, unwrapped, maxPoints)
}

// colorForSlot picks a palette color for a newly created line.
func colorForSlot(slot int) color.Color {
	return palette[slot%len(palette)]
}
