package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showAmplitudeDialog displays the amplitude configuration next to the range
// markers' delta readout. Invalid input is surfaced as a blocking error
// dialog; the graph itself never raises UI.
func showAmplitudeDialog(state *appState) {
	deltaLabel := widget.NewLabel(state.graph.DeltaText())

	ampEntry := widget.NewEntry()
	ampEntry.SetText(strconv.FormatFloat(state.graph.Amplitude(), 'g', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Amplitude (V)", Widget: ampEntry},
			{Text: "Marker deltas", Widget: deltaLabel},
		},
		OnSubmit: func() {
			amp, err := strconv.ParseFloat(ampEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid amplitude %q: %w", ampEntry.Text, err), state.window)
				return
			}
			if err := state.graph.SetAmplitude(amp); err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			state.log.Debug().Float64("amplitude", amp).Msg("amplitude updated")
		},
	}

	content := container.NewVBox(form)
	content.Resize(fyne.NewSize(400, 200))

	d := dialog.NewCustom("Amplitude", "Close", content, state.window)
	d.Resize(fyne.NewSize(400, 200))
	d.Show()
}
