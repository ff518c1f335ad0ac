package main

import (
	"flag"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/traceview/pkg/config"
	"github.com/itohio/traceview/pkg/dataset"
	"github.com/itohio/traceview/pkg/graph"
	"github.com/itohio/traceview/pkg/source"
	"github.com/rs/zerolog"
)

func main() {
	configFlag := flag.String("config", "config.yaml", "Configuration file path")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		log = log.Level(level)
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.traceview")

	// Create main window
	window := application.NewWindow("Trace Viewer")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	// Create graph widget and data generator
	graphWidget := graph.New(cfg, log)
	generator := source.New(&cfg.Source, log)

	state := &appState{
		cfg:    cfg,
		log:    log,
		window: window,
		graph:  graphWidget,
		gen:    generator,
	}

	toolbar := createToolbar(state)

	window.SetContent(container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		graphWidget,
	))

	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg    *config.Config
	log    zerolog.Logger
	window fyne.Window
	graph  *graph.GraphWidget
	gen    *source.Generator

	runBtn *widget.Button

	// Static datasets currently on the plot, in display order
	displayed []dataset.ID

	// Throttling for live updates
	lastUpdate time.Time
	updateMu   sync.Mutex
}

// createToolbar creates the application toolbar.
func createToolbar(state *appState) fyne.CanvasObject {
	// Run button toggles the live data source
	runBtn := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		handleRunToggle(state)
	})
	state.runBtn = runBtn

	// Plot type selector re-renders all visible lines under the new type
	typeOptions := make([]string, 0, len(dataset.PlotTypes()))
	for _, t := range dataset.PlotTypes() {
		typeOptions = append(typeOptions, t.String())
	}
	typeSelect := widget.NewSelect(typeOptions, func(selected string) {
		for _, t := range dataset.PlotTypes() {
			if t.String() == selected {
				state.graph.SetPlotType(t)
				return
			}
		}
	})
	typeSelect.SetSelectedIndex(state.cfg.Plot.DefaultPlotType)

	// Line width selector applies to all lines and markers at once
	widthOptions := make([]string, 0, len(dataset.LineWidths()))
	for _, w := range dataset.LineWidths() {
		widthOptions = append(widthOptions, w.String())
	}
	widthSelect := widget.NewSelect(widthOptions, func(selected string) {
		for _, w := range dataset.LineWidths() {
			if w.String() == selected {
				state.graph.SetLineWidth(w)
				return
			}
		}
	})
	widthSelect.SetSelectedIndex(state.cfg.Plot.DefaultLineWidth - 1)

	// Snapshot button adds a static dataset of the active plot type
	snapshotBtn := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		ds := state.gen.Snapshot(state.graph.PlotType())
		state.graph.DisplayDataSet(ds, false)
		state.displayed = append(state.displayed, ds.ID)
	})

	// Remove button drops the most recently added static dataset
	removeBtn := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() {
		if len(state.displayed) == 0 {
			return
		}
		id := state.displayed[len(state.displayed)-1]
		state.displayed = state.displayed[:len(state.displayed)-1]
		state.graph.RemoveItem(id)
	})

	// Rescale button refits the axes around all visible lines
	rescaleBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		state.graph.RescaleToFit()
	})

	// Amplitude dialog shows the amplitude setting and the marker delta readout
	amplitudeBtn := widget.NewButtonWithIcon("", theme.InfoIcon(), func() {
		showAmplitudeDialog(state)
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(runBtn, snapshotBtn, removeBtn, rescaleBtn, amplitudeBtn), // left
		container.NewHBox(typeSelect, widthSelect),                                 // right
		nil, // center (spacer)
	)
}

// handleRunToggle starts or stops the live data source.
func handleRunToggle(state *appState) {
	if state.gen.IsRunning() {
		state.gen.Stop()
		state.runBtn.SetIcon(theme.MediaPlayIcon())
		state.log.Info().Msg("live source stopped")
		return
	}

	if err := state.gen.Start(); err != nil {
		state.log.Error().Err(err).Msg("failed to start live source")
		return
	}
	state.runBtn.SetIcon(theme.MediaStopIcon())
	state.log.Info().Msg("live source started")

	// Bridge generator updates onto the UI event loop, throttled so a fast
	// source cannot starve rendering.
	const updateInterval = 16 * time.Millisecond // ~60 FPS
	updates := state.gen.Updates()
	go func() {
		liveShown := false
		for ds := range updates {
			state.updateMu.Lock()
			tooSoon := time.Since(state.lastUpdate) < updateInterval
			if !tooSoon {
				state.lastUpdate = time.Now()
			}
			state.updateMu.Unlock()
			if tooSoon && liveShown {
				continue
			}

			first := !liveShown
			liveShown = true
			fyne.Do(func() {
				if first {
					state.graph.DisplayDataSet(ds, true)
				} else {
					state.graph.UpdateLive(ds)
				}
			})
		}
	}()
}
