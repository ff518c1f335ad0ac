// Package graph implements the shared plot surface: a Fyne widget that
// renders measurement datasets as lines, keeps each line in sync with its
// dataset, and layers draggable range markers with a delta readout on top.
package graph

import (
	"fmt"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/traceview/pkg/config"
	"github.com/itohio/traceview/pkg/dataset"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
)

// GraphWidget is a custom Fyne widget that displays measurement datasets as
// lines on a shared 2-D plot. All mutators must be called on the Fyne event
// loop; the internal lock only covers the renderer's concurrent reads.
type GraphWidget struct {
	widget.BaseWidget

	cfg *config.Config
	log zerolog.Logger

	// Shared state (protected by mu)
	mu       sync.RWMutex
	registry *Registry
	lines    []*series // indexed by slot, parallel to the registry table
	live     *series   // the live slot, nil when no live dataset is shown
	overlay  *Overlay
	typ      dataset.PlotType
	width    dataset.LineWidth
	xr, yr   Range
	amp      float64
	colorSeq int

	// Plot area in widget pixels, maintained by the renderer
	plotX, plotY, plotW, plotH float32
}

// New creates a graph widget with the configured defaults and an empty plot.
func New(cfg *config.Config, log zerolog.Logger) *GraphWidget {
	g := &GraphWidget{
		cfg:      cfg,
		log:      log.With().Str("component", "graph").Logger(),
		registry: NewRegistry(),
		typ:      dataset.PlotTypes()[cfg.Plot.DefaultPlotType],
		width:    dataset.LineWidth(cfg.Plot.DefaultLineWidth),
		xr:       Range{Min: 0, Max: 10},
		yr:       Range{Min: -1, Max: 1},
	}
	g.overlay = NewOverlay(bindingsFromConfig(cfg.Markers.Bindings), cfg.Markers.Fractions, g.xr, g.yr)
	g.ExtendBaseWidget(g)
	g.Refresh()
	return g
}

// bindingsFromConfig translates the per-marker axis names from the config
// into axis bindings. Unknown names already fall back to defaults in config.
func bindingsFromConfig(names []string) []Axis {
	out := make([]Axis, len(names))
	for i, n := range names {
		if n == "y" {
			out[i] = AxisY
		}
	}
	return out
}

// DisplayDataSet shows a dataset on the plot. A live dataset replaces the
// single live slot; a static dataset is assigned the next free slot.
// Re-displaying an already shown static dataset redraws it in place. The axes
// are rescaled to fit all visible content afterwards.
func (g *GraphWidget) DisplayDataSet(ds *dataset.Dataset, live bool) {
	if ds == nil {
		return
	}

	g.mu.Lock()
	maxPts := g.cfg.Plot.MaxDisplayPoints
	if live {
		if g.live == nil {
			g.live = newSeries(ds, liveColor, g.width.Stroke(), g.typ, maxPts)
		} else {
			g.live.replace(ds, g.typ, maxPts)
		}
	} else {
		slot := g.registry.Assign(ds.ID)
		if slot < len(g.lines) {
			g.lines[slot].replace(ds, g.typ, maxPts)
		} else {
			g.lines = append(g.lines, newSeries(ds, colorForSlot(g.colorSeq), g.width.Stroke(), g.typ, maxPts))
			g.colorSeq++
		}
	}
	g.rescaleLocked()
	g.mu.Unlock()

	g.log.Debug().Stringer("id", ds.ID).Str("name", ds.Name).Bool("live", live).
		Int("samples", len(ds.Samples)).Msg("display dataset")
	g.Refresh()
}

// UpdateLive re-renders the live slot from a fresh dataset reference. Only
// the live line is rebuilt; static lines, their slots, and the viewport are
// untouched, so this stays cheap at acquisition rates. A no-op when no live
// dataset is displayed.
func (g *GraphWidget) UpdateLive(ds *dataset.Dataset) {
	g.mu.Lock()
	if ds == nil || g.live == nil {
		g.mu.Unlock()
		g.log.Warn().Msg("live update without a live slot")
		return
	}
	g.live.replace(ds, g.typ, g.cfg.Plot.MaxDisplayPoints)
	g.mu.Unlock()

	g.Refresh()
}

// RemoveItem removes the line belonging to id and compacts the remaining
// slots. Removing an unknown id is a no-op. The axes are rescaled to fit the
// remaining content.
func (g *GraphWidget) RemoveItem(id dataset.ID) {
	g.mu.Lock()
	if g.live != nil && g.live.ds.ID == id {
		g.live = nil
		g.rescaleLocked()
		g.mu.Unlock()
		g.log.Debug().Stringer("id", id).Msg("removed live dataset")
		g.Refresh()
		return
	}

	slot, ok := g.registry.Release(id)
	if !ok {
		g.mu.Unlock()
		g.log.Warn().Stringer("id", id).Msg("remove of unknown dataset ignored")
		return
	}
	g.lines = append(g.lines[:slot], g.lines[slot+1:]...)
	g.rescaleLocked()
	g.mu.Unlock()

	g.log.Debug().Stringer("id", id).Int("slot", slot).Msg("removed dataset")
	g.Refresh()
}

// RescaleToFit sets both axes to bound the union of all visible lines' data
// ranges with a small margin. With no visible lines the viewport is left
// unchanged.
func (g *GraphWidget) RescaleToFit() {
	g.mu.Lock()
	g.rescaleLocked()
	g.mu.Unlock()
	g.Refresh()
}

func (g *GraphWidget) rescaleLocked() {
	var xMins, xMaxs, yMins, yMaxs []float64
	for _, s := range g.visibleLocked() {
		x0, x1, y0, y1, ok := dataset.Bounds(s.points)
		if !ok {
			continue
		}
		xMins = append(xMins, x0)
		xMaxs = append(xMaxs, x1)
		yMins = append(yMins, y0)
		yMaxs = append(yMaxs, y1)
	}
	if len(xMins) == 0 {
		return
	}

	g.xr = padded(floats.Min(xMins), floats.Max(xMaxs), g.cfg.Plot.RescaleMargin)
	g.yr = padded(floats.Min(yMins), floats.Max(yMaxs), g.cfg.Plot.RescaleMargin)
	g.overlay.ClampTo(g.xr, g.yr)
	g.markAllDirtyLocked()
}

// padded widens [min, max] by the margin fraction, substituting a unit span
// for degenerate ranges.
func padded(min, max, margin float64) Range {
	span := max - min
	if span == 0 {
		min -= 0.5
		max += 0.5
		span = 1
	}
	pad := span * margin
	return Range{Min: min - pad, Max: max + pad}
}

// SetLineWidth applies w to every rendered line and marker in place and
// stores it as the default for subsequently added lines.
func (g *GraphWidget) SetLineWidth(w dataset.LineWidth) {
	g.mu.Lock()
	g.width = w
	for _, s := range g.visibleLocked() {
		s.setStroke(w.Stroke())
	}
	g.mu.Unlock()

	g.log.Debug().Stringer("width", w).Msg("line width changed")
	g.Refresh()
}

// SetPlotType switches the active plot type, relabels the axes, and
// re-renders every visible line under the new type's semantics (most notably
// whether phase unwrapping applies).
func (g *GraphWidget) SetPlotType(t dataset.PlotType) {
	g.mu.Lock()
	g.typ = t
	for _, s := range g.visibleLocked() {
		s.rebuild(t, g.cfg.Plot.MaxDisplayPoints)
	}
	g.rescaleLocked()
	g.mu.Unlock()

	g.log.Debug().Stringer("type", t).Msg("plot type changed")
	g.Refresh()
}

// SetXRange sets the visible x-axis range explicitly. Markers bound to the
// axis are clamped into the new range.
func (g *GraphWidget) SetXRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	g.mu.Lock()
	g.xr = Range{Min: min, Max: max}
	g.overlay.ClampTo(g.xr, g.yr)
	g.markAllDirtyLocked()
	g.mu.Unlock()
	g.Refresh()
}

// SetYRange sets the visible y-axis range explicitly. Markers bound to the
// axis are clamped into the new range.
func (g *GraphWidget) SetYRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	g.mu.Lock()
	g.yr = Range{Min: min, Max: max}
	g.overlay.ClampTo(g.xr, g.yr)
	g.markAllDirtyLocked()
	g.mu.Unlock()
	g.Refresh()
}

// SetAmplitude stores the amplitude readout shown alongside the delta label.
// Non-finite or negative values are rejected so the shell can surface the
// problem to the user.
func (g *GraphWidget) SetAmplitude(a float64) error {
	if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
		return fmt.Errorf("invalid amplitude %v", a)
	}
	g.mu.Lock()
	g.amp = a
	g.mu.Unlock()
	return nil
}

// Amplitude returns the last amplitude set via SetAmplitude.
func (g *GraphWidget) Amplitude() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.amp
}

// XRange returns the visible x-axis range.
func (g *GraphWidget) XRange() Range {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.xr
}

// YRange returns the visible y-axis range.
func (g *GraphWidget) YRange() Range {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.yr
}

// PlotType returns the active plot type.
func (g *GraphWidget) PlotType() dataset.PlotType {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.typ
}

// LineWidth returns the current line width.
func (g *GraphWidget) LineWidth() dataset.LineWidth {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// DeltaText returns the range markers' delta readout for display in an
// adjoining readout such as the amplitude dialog.
func (g *GraphWidget) DeltaText() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.overlay.DeltaText()
}

// Markers returns a copy of the current range markers.
func (g *GraphWidget) Markers() []Marker {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.overlay.Markers()
}

// SlotCount returns the number of occupied static slots.
func (g *GraphWidget) SlotCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.registry.Len()
}

// SlotFor returns the slot of a displayed static dataset.
func (g *GraphWidget) SlotFor(id dataset.ID) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.registry.SlotFor(id)
}

// IDFor returns the identity of the static dataset occupying slot.
func (g *GraphWidget) IDFor(slot int) (dataset.ID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.registry.IDFor(slot)
}

// visibleLocked returns all visible series, static lines first, the live
// line last. Callers must hold mu.
func (g *GraphWidget) visibleLocked() []*series {
	out := make([]*series, 0, len(g.lines)+1)
	out = append(out, g.lines...)
	if g.live != nil {
		out = append(out, g.live)
	}
	return out
}

func (g *GraphWidget) markAllDirtyLocked() {
	for _, s := range g.visibleLocked() {
		s.dirty = true
	}
}

// MouseDown feeds a pointer-down into the marker drag state machine.
func (g *GraphWidget) MouseDown(ev *desktop.MouseEvent) {
	g.mu.Lock()
	x, y, tolX, tolY, ok := g.axisCoordsLocked(ev.Position)
	if ok {
		g.overlay.MouseDown(x, y, tolX, tolY)
	}
	g.mu.Unlock()
}

// MouseUp ends any marker drag in progress.
func (g *GraphWidget) MouseUp(ev *desktop.MouseEvent) {
	g.mu.Lock()
	g.overlay.MouseUp()
	g.mu.Unlock()
}

// MouseIn implements desktop.Hoverable.
func (g *GraphWidget) MouseIn(ev *desktop.MouseEvent) {}

// MouseMoved relocates the dragged marker, if any, along its bound axis.
func (g *GraphWidget) MouseMoved(ev *desktop.MouseEvent) {
	g.mu.Lock()
	x, y, _, _, ok := g.axisCoordsLocked(ev.Position)
	moved := false
	if ok {
		moved = g.overlay.MouseMove(x, y, g.xr, g.yr)
	}
	g.mu.Unlock()

	if moved {
		g.Refresh()
	}
}

// MouseOut implements desktop.Hoverable. Leaving the widget does not end a
// drag; only a pointer-up does.
func (g *GraphWidget) MouseOut() {}

// axisCoordsLocked converts a pointer position in widget pixels into axis
// coordinates, plus the hit tolerance expressed in axis units. ok is false
// before the first layout, when the plot area is still empty.
func (g *GraphWidget) axisCoordsLocked(pos fyne.Position) (x, y, tolX, tolY float64, ok bool) {
	if g.plotW <= 0 || g.plotH <= 0 {
		return 0, 0, 0, 0, false
	}
	fx := float64(pos.X-g.plotX) / float64(g.plotW)
	fy := float64(pos.Y-g.plotY) / float64(g.plotH)
	x = g.xr.Min + fx*g.xr.Span()
	y = g.yr.Max - fy*g.yr.Span()
	tolX = g.cfg.Markers.HitTolerance / float64(g.plotW) * g.xr.Span()
	tolY = g.cfg.Markers.HitTolerance / float64(g.plotH) * g.yr.Span()
	return x, y, tolX, tolY, true
}

// setPlotArea records the plot rectangle computed by the renderer so pointer
// events can be projected into axis coordinates.
func (g *GraphWidget) setPlotArea(x, y, w, h float32) {
	g.plotX, g.plotY, g.plotW, g.plotH = x, y, w, h
}

// CreateRenderer creates the widget renderer.
func (g *GraphWidget) CreateRenderer() fyne.WidgetRenderer {
	return newGraphRenderer(g)
}
