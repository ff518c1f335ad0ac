package graph

import "github.com/itohio/traceview/pkg/dataset"

// Plotter is the capability surface a host shell drives. The graph widget is
// the only implementation; shells should depend on this interface rather
// than the widget type.
type Plotter interface {
	DisplayDataSet(ds *dataset.Dataset, live bool)
	UpdateLive(ds *dataset.Dataset)
	RemoveItem(id dataset.ID)
	RescaleToFit()
	SetPlotType(t dataset.PlotType)
	SetLineWidth(w dataset.LineWidth)
	SetXRange(min, max float64)
	SetYRange(min, max float64)
	SetAmplitude(a float64) error
}

// Ensure GraphWidget implements Plotter.
var _ Plotter = (*GraphWidget)(nil)
