package graph

import (
	"fmt"
	"math"
	"strings"
)

// Axis identifies the plot axis a marker is bound to. A marker moves only
// along its bound axis, no matter how the pointer travels on the other one.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the display name of the axis.
func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

// Range is a closed interval on one axis.
type Range struct {
	Min float64
	Max float64
}

// Span returns the width of the range.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Clamp constrains v into the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Marker is a movable measurement boundary at a single coordinate on its
// bound axis.
type Marker struct {
	Axis  Axis
	Value float64
}

// Overlay owns the four range markers, the derived delta readout, and the
// pointer-drag state machine. Consecutive markers bound to the same axis form
// a pair; each pair contributes one delta (upper minus lower) to the readout.
//
// The state machine has two states: idle, and dragging a single marker. A
// pointer-down within hit tolerance of a marker starts a drag; pointer-moves
// relocate the marker along its bound axis, clamped to the visible range;
// any pointer-up returns to idle. Pointer-downs during a drag are ignored.
type Overlay struct {
	markers []Marker

	dragging bool
	dragIdx  int

	deltaText string
}

// NewOverlay creates an overlay with one marker per binding, positioned at
// the given fraction of its bound axis range. bindings and fractions must
// have equal length.
func NewOverlay(bindings []Axis, fractions []float64, xr, yr Range) *Overlay {
	o := &Overlay{markers: make([]Marker, len(bindings))}
	for i, axis := range bindings {
		r := xr
		if axis == AxisY {
			r = yr
		}
		frac := 0.5
		if i < len(fractions) {
			frac = fractions[i]
		}
		o.markers[i] = Marker{Axis: axis, Value: r.Min + frac*r.Span()}
	}
	o.recomputeDelta()
	return o
}

// MouseDown feeds a pointer-down at axis coordinates (x, y) into the state
// machine. tolX and tolY are the hit tolerances expressed in axis units.
// Returns true when a drag started. A pointer-down while a drag is already in
// progress is ignored.
func (o *Overlay) MouseDown(x, y, tolX, tolY float64) bool {
	if o.dragging {
		return false
	}

	best := -1
	bestDist := math.Inf(1)
	for i, m := range o.markers {
		var dist, tol float64
		if m.Axis == AxisX {
			dist, tol = math.Abs(x-m.Value), tolX
		} else {
			dist, tol = math.Abs(y-m.Value), tolY
		}
		if dist <= tol && dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return false
	}

	o.dragging = true
	o.dragIdx = best
	return true
}

// MouseMove feeds a pointer-move at axis coordinates (x, y). While idle it
// does nothing. While dragging it projects the pointer onto the dragged
// marker's bound axis, clamps the coordinate into the visible range, and
// recomputes the delta readout. Returns true when a marker moved.
func (o *Overlay) MouseMove(x, y float64, xr, yr Range) bool {
	if !o.dragging {
		return false
	}

	m := &o.markers[o.dragIdx]
	var v float64
	if m.Axis == AxisX {
		v = xr.Clamp(x)
	} else {
		v = yr.Clamp(y)
	}
	if v == m.Value {
		return false
	}
	m.Value = v
	o.recomputeDelta()
	return true
}

// MouseUp ends any drag in progress, regardless of pointer position.
func (o *Overlay) MouseUp() {
	o.dragging = false
}

// Dragging reports whether a drag gesture is in progress.
func (o *Overlay) Dragging() bool {
	return o.dragging
}

// DraggedMarker returns the index of the marker being dragged.
func (o *Overlay) DraggedMarker() (int, bool) {
	if !o.dragging {
		return 0, false
	}
	return o.dragIdx, true
}

// Markers returns a copy of the current markers in binding order.
func (o *Overlay) Markers() []Marker {
	out := make([]Marker, len(o.markers))
	copy(out, o.markers)
	return out
}

// SetMarker moves marker i to v directly, bypassing the drag machinery.
// Out-of-range indices are ignored.
func (o *Overlay) SetMarker(i int, v float64) {
	if i < 0 || i >= len(o.markers) {
		return
	}
	o.markers[i].Value = v
	o.recomputeDelta()
}

// ClampTo constrains every marker into the given visible ranges. Called when
// the viewport changes underneath the markers.
func (o *Overlay) ClampTo(xr, yr Range) {
	for i := range o.markers {
		m := &o.markers[i]
		if m.Axis == AxisX {
			m.Value = xr.Clamp(m.Value)
		} else {
			m.Value = yr.Clamp(m.Value)
		}
	}
	o.recomputeDelta()
}

// DeltaText returns the current delta readout, one entry per marker pair.
func (o *Overlay) DeltaText() string {
	return o.deltaText
}

func (o *Overlay) recomputeDelta() {
	var parts []string
	for _, axis := range []Axis{AxisX, AxisY} {
		var vals []float64
		for _, m := range o.markers {
			if m.Axis == axis {
				vals = append(vals, m.Value)
			}
		}
		for i := 0; i+1 < len(vals); i += 2 {
			lo, hi := vals[i], vals[i+1]
			if lo > hi {
				lo, hi = hi, lo
			}
			parts = append(parts, fmt.Sprintf("Δ%s = %.4g", axis, hi-lo))
		}
	}
	o.deltaText = strings.Join(parts, "   ")
}
