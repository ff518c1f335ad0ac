package graph

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"
)

// graphRenderer renders the graph widget.
type graphRenderer struct {
	g *GraphWidget

	// Background
	background *canvas.Rectangle

	// Grid lines and tick labels
	gridLines []*canvas.Line
	gridTexts []*canvas.Text

	// Axis titles
	xTitle *canvas.Text
	yTitle *canvas.Text

	// Range markers and their delta readout
	markerLines []*canvas.Line
	deltaLabel  *canvas.Text

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last layout to detect when cached segments go stale
	lastSize fyne.Size
	lastXR   Range
	lastYR   Range
}

var (
	backgroundColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	gridColor       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	tickColor       = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	markerColor     = color.RGBA{R: 0, G: 120, B: 220, A: 255}
	labelColor      = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

func newGraphRenderer(g *GraphWidget) *graphRenderer {
	bg := canvas.NewRectangle(backgroundColor)
	return &graphRenderer{
		g:          g,
		background: bg,
		objects:    []fyne.CanvasObject{bg},
	}
}

// MinSize returns the minimum size of the widget.
func (r *graphRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *graphRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		// Size changed, trigger widget refresh to redraw with new dimensions
		r.g.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *graphRenderer) Refresh() {
	size := r.g.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	marginLeft := float32(60.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(40.0)

	plotW := size.Width - marginLeft - marginRight
	plotH := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	r.g.mu.Lock()
	xr := r.g.xr
	yr := r.g.yr
	typ := r.g.typ
	width := r.g.width
	visible := r.g.visibleLocked()
	markers := r.g.overlay.Markers()
	delta := r.g.overlay.DeltaText()

	r.g.setPlotArea(plotX, plotY, plotW, plotH)

	// A new size or viewport invalidates every cached segment; otherwise only
	// series marked dirty (added, updated, or retyped) are rebuilt, which is
	// what keeps live updates from touching unrelated lines.
	if size != r.lastSize || xr != r.lastXR || yr != r.lastYR {
		for _, s := range visible {
			s.dirty = true
		}
		r.lastSize = size
		r.lastXR = xr
		r.lastYR = yr
	}
	for _, s := range visible {
		if s.dirty {
			r.rebuildSegments(s, plotX, plotY, plotW, plotH, xr, yr)
		}
	}
	r.g.mu.Unlock()

	// Reassemble the object list (keep the background first)
	r.objects = r.objects[:0]
	r.objects = append(r.objects, r.background)
	r.gridLines = r.gridLines[:0]
	r.gridTexts = r.gridTexts[:0]
	r.markerLines = r.markerLines[:0]

	r.drawGrid(plotX, plotY, plotW, plotH, xr, yr)
	xLabel, yLabel := typ.AxisLabels()
	r.drawAxisTitles(plotX, plotY, plotW, plotH, xLabel, yLabel)

	for _, s := range visible {
		for _, seg := range s.segments {
			r.objects = append(r.objects, seg)
		}
	}

	r.drawMarkers(plotX, plotY, plotW, plotH, markers, xr, yr, width.Stroke())
	r.drawDeltaLabel(plotX, plotY, plotW, delta)
}

// rebuildSegments recomputes the cached canvas segments of one series from
// its display points. Caller holds the widget lock.
func (r *graphRenderer) rebuildSegments(s *series, plotX, plotY, plotW, plotH float32, xr, yr Range) {
	s.segments = s.segments[:0]
	s.dirty = false

	if len(s.points) < 2 || xr.Span() == 0 || yr.Span() == 0 {
		// An empty or single-point dataset yields a visually empty line.
		return
	}

	prev := r.project(s.points[0].X, s.points[0].Y, plotX, plotY, plotW, plotH, xr, yr)
	for _, p := range s.points[1:] {
		pos := r.project(p.X, p.Y, plotX, plotY, plotW, plotH, xr, yr)
		line := canvas.NewLine(s.col)
		line.Position1 = prev
		line.Position2 = pos
		line.StrokeWidth = s.stroke
		s.segments = append(s.segments, line)
		prev = pos
	}
}

// project maps a data point into widget pixels, clamped to the plot area so
// off-viewport points cannot draw over the margins.
func (r *graphRenderer) project(x, y float64, plotX, plotY, plotW, plotH float32, xr, yr Range) fyne.Position {
	px := plotX + float32((x-xr.Min)/xr.Span())*plotW
	py := plotY + plotH - float32((y-yr.Min)/yr.Span())*plotH
	px = math32.Max(plotX, math32.Min(plotX+plotW, px))
	py = math32.Max(plotY, math32.Min(plotY+plotH, py))
	return fyne.NewPos(px, py)
}

// drawGrid draws the oscilloscope-style grid with tick labels.
func (r *graphRenderer) drawGrid(plotX, plotY, plotW, plotH float32, xr, yr Range) {
	// Horizontal grid lines with y-axis tick labels
	numHLines := 8
	for i := 0; i <= numHLines; i++ {
		y := plotY + float32(i)*plotH/float32(numHLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(plotX, y)
		line.Position2 = fyne.NewPos(plotX+plotW, y)
		line.StrokeWidth = 1
		r.gridLines = append(r.gridLines, line)
		r.objects = append(r.objects, line)

		value := yr.Max - float64(i)*yr.Span()/float64(numHLines)
		text := canvas.NewText(formatTick(value), tickColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.gridTexts = append(r.gridTexts, text)
		r.objects = append(r.objects, text)
	}

	// Vertical grid lines with x-axis tick labels
	numVLines := 10
	for i := 0; i <= numVLines; i++ {
		x := plotX + float32(i)*plotW/float32(numVLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotH)
		line.StrokeWidth = 1
		r.gridLines = append(r.gridLines, line)
		r.objects = append(r.objects, line)

		value := xr.Min + float64(i)*xr.Span()/float64(numVLines)
		text := canvas.NewText(formatTick(value), tickColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, plotY+plotH+5))
		r.gridTexts = append(r.gridTexts, text)
		r.objects = append(r.objects, text)
	}
}

// drawAxisTitles draws the axis titles for the active plot type.
func (r *graphRenderer) drawAxisTitles(plotX, plotY, plotW, plotH float32, xLabel, yLabel string) {
	r.xTitle = canvas.NewText(xLabel, tickColor)
	r.xTitle.TextSize = 11
	r.xTitle.Alignment = fyne.TextAlignCenter
	r.xTitle.Move(fyne.NewPos(plotX+plotW/2-40, plotY+plotH+20))
	r.objects = append(r.objects, r.xTitle)

	r.yTitle = canvas.NewText(yLabel, tickColor)
	r.yTitle.TextSize = 11
	r.yTitle.Alignment = fyne.TextAlignLeading
	r.yTitle.Move(fyne.NewPos(5, plotY-16))
	r.objects = append(r.objects, r.yTitle)
}

// drawMarkers draws the range marker bars across the plot area.
func (r *graphRenderer) drawMarkers(plotX, plotY, plotW, plotH float32, markers []Marker, xr, yr Range, stroke float32) {
	for _, m := range markers {
		line := canvas.NewLine(markerColor)
		line.StrokeWidth = stroke
		if m.Axis == AxisX {
			if xr.Span() == 0 {
				continue
			}
			x := plotX + float32((m.Value-xr.Min)/xr.Span())*plotW
			x = math32.Max(plotX, math32.Min(plotX+plotW, x))
			line.Position1 = fyne.NewPos(x, plotY)
			line.Position2 = fyne.NewPos(x, plotY+plotH)
		} else {
			if yr.Span() == 0 {
				continue
			}
			y := plotY + plotH - float32((m.Value-yr.Min)/yr.Span())*plotH
			y = math32.Max(plotY, math32.Min(plotY+plotH, y))
			line.Position1 = fyne.NewPos(plotX, y)
			line.Position2 = fyne.NewPos(plotX+plotW, y)
		}
		r.markerLines = append(r.markerLines, line)
		r.objects = append(r.objects, line)
	}
}

// drawDeltaLabel draws the delta readout in the top-right plot corner.
func (r *graphRenderer) drawDeltaLabel(plotX, plotY, plotW float32, delta string) {
	r.deltaLabel = canvas.NewText(delta, labelColor)
	r.deltaLabel.TextSize = 12
	r.deltaLabel.Alignment = fyne.TextAlignTrailing
	r.deltaLabel.Move(fyne.NewPos(plotX+plotW-10, plotY+6))
	r.objects = append(r.objects, r.deltaLabel)
}

// Objects returns all canvas objects for rendering.
func (r *graphRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *graphRenderer) Destroy() {
	// Cleanup handled by Fyne
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.3g", v)
}
