package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/DinoBektesevic/fdtd"
)

var (
	probColor = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	realColor = color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	imagColor = color.NRGBA{R: 30, G: 30, B: 200, A: 255}
	potColor  = color.NRGBA{R: 240, G: 220, B: 60, A: 80}
	bgColor   = color.NRGBA{R: 252, G: 252, B: 252, A: 255}
)

// AppUI holds the widgets and plotting state of the main window.
type AppUI struct {
	App    fyne.App
	Window fyne.Window

	plot        *canvas.Raster
	timeLabel   *widget.Label
	startButton *widget.Button
	stopButton  *widget.Button
	resetButton *widget.Button
	probCheck   *widget.Check
	realCheck   *widget.Check
	imagCheck   *widget.Check
	potCheck    *widget.Check

	// Static backdrop data read once from the simulation.
	potentialV []float64

	// Plotting state.
	lastPlotData PlotData
	plotMutex    sync.Mutex
	show         PlotConfig
	yMax         float64

	updateChan  <-chan PlotData
	controlChan chan<- ControlMsg

	Container fyne.CanvasObject
}

// setupMainUI builds the plot area and controls and starts the GUI update
// loop.
func setupMainUI(a fyne.App, sim *fdtd.Simulation, sc Scenario, updateChan <-chan PlotData, controlChan chan<- ControlMsg, mainWindow fyne.Window) *AppUI {
	ui := &AppUI{
		App:         a,
		Window:      mainWindow,
		potentialV:  sim.Potential(),
		show:        sc.Plot,
		updateChan:  updateChan,
		controlChan: controlChan,
	}

	ui.timeLabel = widget.NewLabel("Time: 0.000")
	ui.timeLabel.Alignment = fyne.TextAlignTrailing

	ui.startButton = widget.NewButton("Start", func() { ui.sendControl("start") })
	ui.stopButton = widget.NewButton("Stop", func() { ui.sendControl("stop") })
	ui.resetButton = widget.NewButton("Reset", func() {
		ui.plotMutex.Lock()
		ui.yMax = 0 // rescale axes from the next t=0 frame
		ui.plotMutex.Unlock()
		ui.sendControl("reset")
		ui.timeLabel.SetText("Time: 0.000")
	})

	ui.plot = canvas.NewRaster(ui.drawPlot)
	ui.plot.SetMinSize(fyne.NewSize(900, 450))

	ui.probCheck = ui.newCurveCheck("Prob", &ui.show.Prob)
	ui.realCheck = ui.newCurveCheck("Real", &ui.show.Real)
	ui.imagCheck = ui.newCurveCheck("Imag", &ui.show.Imag)
	ui.potCheck = ui.newCurveCheck("Potential", &ui.show.Potential)

	buttons := container.NewHBox(ui.startButton, ui.stopButton, ui.resetButton)
	toggles := container.NewHBox(ui.probCheck, ui.realCheck, ui.imagCheck, ui.potCheck)
	controls := container.NewVBox(buttons, toggles, ui.timeLabel)
	ui.Container = container.NewBorder(nil, controls, nil, nil, ui.plot)

	go ui.guiUpdateLoop()
	logger.Info("GUI update loop started.")
	return ui
}

func (ui *AppUI) newCurveCheck(name string, flag **bool) *widget.Check {
	c := widget.NewCheck(name, func(on bool) {
		ui.plotMutex.Lock()
		*flag = &on
		ui.plotMutex.Unlock()
		if ui.plot != nil {
			ui.plot.Refresh()
		}
	})
	c.SetChecked(enabled(*flag))
	return c
}

func (ui *AppUI) sendControl(cmd string) {
	select {
	case ui.controlChan <- ControlMsg{Command: cmd}:
	default:
		logger.Warnf("Control channel full, cannot send %s.", cmd)
	}
}

// guiUpdateLoop receives frames from the simulation goroutine and refreshes
// the plot. It exits when the update channel closes.
func (ui *AppUI) guiUpdateLoop() {
	for plotData := range ui.updateChan {
		if plotData.Err != nil {
			logger.Errorf("Error in plot data: %v", plotData.Err)
			if ui.Window != nil {
				dialog.ShowError(plotData.Err, ui.Window)
			}
			continue
		}
		if plotData.Done {
			ui.timeLabel.SetText(fmt.Sprintf("Time: %.3f (finished)", plotData.Time))
			continue
		}

		ui.plotMutex.Lock()
		ui.lastPlotData = plotData
		if ui.yMax == 0 {
			ui.yMax = frameScale(plotData)
		}
		ui.plotMutex.Unlock()

		ui.timeLabel.SetText(fmt.Sprintf("Time: %.3f", plotData.Time))
		ui.plot.Refresh()
	}
	logger.Info("GUI update loop finished (update channel closed).")
}

// frameScale picks a fixed vertical scale from the first frame, so the axes
// do not jump while the packet disperses.
func frameScale(pd PlotData) float64 {
	m := 0.0
	for _, arr := range [][]float64{pd.Prob, pd.Real, pd.Imag} {
		for _, v := range arr {
			if a := math.Abs(v); a > m && !math.IsNaN(a) && !math.IsInf(a, 0) {
				m = a
			}
		}
	}
	if m <= 0 {
		m = 1
	}
	return 1.1 * m
}

// drawPlot renders the enabled curves over the shaded potential region.
func (ui *AppUI) drawPlot(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	ui.plotMutex.Lock()
	data := ui.lastPlotData
	show := ui.show
	yMax := ui.yMax
	ui.plotMutex.Unlock()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bgColor)
		}
	}
	if len(data.Prob) == 0 || yMax <= 0 || w < 2 || h < 2 {
		return img
	}

	mid := h / 2
	toY := func(v float64) int {
		return mid - int(v/yMax*float64(mid-5))
	}

	// Potential backdrop, shaded from the axis like the area fill in a
	// conventional plot.
	if enabled(show.Potential) && len(ui.potentialV) == len(data.Prob) {
		vMax := 0.0
		for _, v := range ui.potentialV {
			if a := math.Abs(v); a > vMax {
				vMax = a
			}
		}
		if vMax > 0 {
			for x := 0; x < w; x++ {
				v := sampleAt(ui.potentialV, x, w)
				// Potential drawn on its own scale, filling a
				// quarter of the plot height at most.
				py := mid - int(v/vMax*float64(mid)/2)
				fillColumn(img, x, mid, py, potColor)
			}
		}
	}

	if enabled(show.Prob) {
		drawCurve(img, data.Prob, w, toY, probColor)
	}
	if enabled(show.Real) {
		drawCurve(img, data.Real, w, toY, realColor)
	}
	if enabled(show.Imag) {
		drawCurve(img, data.Imag, w, toY, imagColor)
	}
	return img
}

// sampleAt linearly interpolates arr at pixel column x of a plot w wide.
func sampleAt(arr []float64, x, w int) float64 {
	pos := float64(x) / float64(w-1) * float64(len(arr)-1)
	i := int(pos)
	if i >= len(arr)-1 {
		return arr[len(arr)-1]
	}
	frac := pos - float64(i)
	return arr[i]*(1-frac) + arr[i+1]*frac
}

// drawCurve draws arr as a connected trace, one sample per pixel column.
// NaN samples leave a gap.
func drawCurve(img *image.RGBA, arr []float64, w int, toY func(float64) int, c color.Color) {
	prevY := 0
	prevOK := false
	for x := 0; x < w; x++ {
		v := sampleAt(arr, x, w)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			prevOK = false
			continue
		}
		y := toY(v)
		if prevOK {
			fillColumn(img, x, prevY, y, c)
		} else {
			img.Set(x, y, c)
		}
		prevY = y
		prevOK = true
	}
}

// fillColumn draws a vertical run of pixels from y0 to y1 in column x,
// clamped to the image bounds.
func fillColumn(img *image.RGBA, x, y0, y1 int, c color.Color) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	b := img.Bounds()
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 >= b.Max.Y {
		y1 = b.Max.Y - 1
	}
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}
