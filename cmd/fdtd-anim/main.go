// Command fdtd-anim animates a 1D Schrödinger FDTD simulation: it draws the
// real and imaginary wavefunction components and the probability density as
// they evolve across a user-defined potential field.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/DinoBektesevic/fdtd"
	"github.com/DinoBektesevic/fdtd/potential"
)

// logger is the binary's logger, shared with the library packages.
var logger *zap.SugaredLogger

// runner owns the simulation goroutine: it drives the snapshot sequence on
// a ticker, reacts to control messages, and pushes frames to the GUI.
type runner struct {
	scenario Scenario

	sim     *fdtd.Simulation
	sampler *fdtd.Sampler
	running bool

	updateChan  chan<- PlotData
	controlChan <-chan ControlMsg

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newRunner(sc Scenario, updateChan chan<- PlotData, controlChan <-chan ControlMsg) (*runner, error) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &runner{
		scenario:    sc,
		updateChan:  updateChan,
		controlChan: controlChan,
		ctx:         ctx,
		cancel:      cancel,
	}
	if err := r.rebuild(); err != nil {
		cancel()
		return nil, err
	}
	return r, nil
}

// rebuild constructs a fresh simulation and sampler. Snapshot sequences are
// forward-only, so this is the only way to return to t=0.
func (r *runner) rebuild() error {
	sim, err := r.scenario.buildSimulation()
	if err != nil {
		return fmt.Errorf("failed to initialize simulation: %w", err)
	}
	sampler, err := sim.Sample(r.scenario.DeltaT)
	if err != nil {
		return err
	}
	r.sim = sim
	r.sampler = sampler
	logger.Infof("Simulation ready: N=%d dt=%.6f steps=%d (%d frames)",
		sim.Grid().Len(), sim.Dt(), sim.TotalSteps(), sampler.Count())
	return nil
}

// Run is the main loop of the simulation goroutine.
func (r *runner) Run() {
	defer r.wg.Done()
	defer close(r.updateChan)
	logger.Info("Simulation goroutine started.")

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	// Push the initial state so the window is not blank before Start.
	if snap, ok := r.sampler.Next(); ok {
		r.send(PlotData{Time: snap.Time, Prob: snap.Prob, Real: snap.Real, Imag: snap.Imag})
	}

	for {
		select {
		case <-r.ctx.Done():
			logger.Info("Simulation context cancelled, exiting run loop.")
			return
		case msg := <-r.controlChan:
			r.handleControlMessage(msg)
		case <-ticker.C:
			if !r.running {
				continue
			}
			snap, ok := r.sampler.Next()
			if !ok {
				logger.Info("Snapshot sequence exhausted.")
				r.running = false
				r.send(PlotData{Time: float64(r.sim.CurrentStep()) * r.sim.Dt(), Done: true})
				continue
			}
			r.send(PlotData{
				Time: snap.Time,
				Prob: snap.Prob,
				Real: snap.Real,
				Imag: snap.Imag,
			})
		}
	}
}

// send pushes a frame without blocking; the GUI may lag behind.
func (r *runner) send(pd PlotData) {
	select {
	case r.updateChan <- pd:
	default:
		logger.Debug("Update channel full, skipping frame.")
	}
}

func (r *runner) handleControlMessage(msg ControlMsg) {
	switch msg.Command {
	case "start":
		if !r.running {
			r.running = true
			logger.Info("Simulation started.")
		}
	case "stop":
		if r.running {
			r.running = false
			logger.Info("Simulation stopped.")
		}
	case "reset":
		logger.Info("Resetting simulation...")
		r.running = false
		if err := r.rebuild(); err != nil {
			logger.Errorf("Reset failed: %v", err)
			r.send(PlotData{Err: err})
			return
		}
		// Push the t=0 frame so the GUI redraws immediately.
		if snap, ok := r.sampler.Next(); ok {
			r.send(PlotData{Time: snap.Time, Prob: snap.Prob, Real: snap.Real, Imag: snap.Imag})
		}
	default:
		logger.Warnf("Unknown control command: %s", msg.Command)
	}
}

func main() {
	configPath := flag.String("config", "", "YAML scenario file; when unset a configuration dialog is shown")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zl, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	if !*debug {
		zl = zl.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	defer zl.Sync()
	logger = zl.Sugar()
	fdtd.SetLogger(zl)
	potential.SetLogger(zl)

	myApp := app.New()
	simWindow := myApp.NewWindow("FDTD Simulation Setup")
	simWindow.Resize(fyne.NewSize(400, 200))
	simWindow.CenterOnScreen()
	simWindow.Show()

	if *configPath != "" {
		sc, err := LoadScenario(*configPath)
		if err != nil {
			logger.Errorf("Failed to load scenario: %v", err)
			dialog.ShowError(err, simWindow)
			return
		}
		startSimulation(myApp, simWindow, sc)
	} else {
		showConfigDialog(simWindow, DefaultScenario(), func(sc *Scenario, ok bool) {
			if !ok {
				logger.Info("Simulation setup cancelled, exiting.")
				simWindow.Close()
				return
			}
			startSimulation(myApp, simWindow, *sc)
		})
	}

	myApp.Run()
	logger.Info("Application finished.")
}

// startSimulation wires the runner goroutine to the main UI.
func startSimulation(a fyne.App, w fyne.Window, sc Scenario) {
	updateChan := make(chan PlotData, 100)
	controlChan := make(chan ControlMsg, 50)

	r, err := newRunner(sc, updateChan, controlChan)
	if err != nil {
		logger.Errorf("Error initializing simulation: %v", err)
		dialog.ShowError(err, w)
		return
	}
	r.wg.Add(1)
	go r.Run()

	ui := setupMainUI(a, r.sim, sc, updateChan, controlChan, w)

	w.SetTitle(fmt.Sprintf("1D Schrödinger FDTD - N=%d", r.sim.Grid().Len()))
	w.SetContent(ui.Container)
	w.Resize(fyne.NewSize(1000, 600))
	w.CenterOnScreen()

	w.SetOnClosed(func() {
		logger.Info("Main window closed by user.")
		r.cancel()
		done := make(chan struct{})
		go func() {
			defer close(done)
			r.wg.Wait()
		}()
		select {
		case <-done:
			logger.Info("Simulation finished cleanly.")
		case <-time.After(2 * time.Second):
			logger.Warn("Timeout waiting for simulation shutdown.")
		}
	})
}

// showConfigDialog collects scenario parameters with validated entries.
func showConfigDialog(parent fyne.Window, defaults Scenario, onComplete func(*Scenario, bool)) {
	positiveInt := func(name string) fyne.StringValidator {
		return func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("%s must be a positive integer", name)
			}
			return nil
		}
	}
	positiveFloat := func(name string) fyne.StringValidator {
		return func(s string) error {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("%s must be a positive number", name)
			}
			return nil
		}
	}
	anyFloat := func(s string) error {
		_, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("must be a number")
		}
		return nil
	}

	nEntry := widget.NewEntry()
	nEntry.SetText(strconv.Itoa(defaults.Grid.N))
	nEntry.Validator = positiveInt("N")

	dxEntry := widget.NewEntry()
	dxEntry.SetText(strconv.FormatFloat(defaults.Grid.Dx, 'g', -1, 64))
	dxEntry.Validator = positiveFloat("dx")

	x0Entry := widget.NewEntry()
	x0Entry.SetText(strconv.FormatFloat(defaults.Particle.X0, 'g', -1, 64))
	x0Entry.Validator = anyFloat

	sigmaEntry := widget.NewEntry()
	sigmaEntry.SetText(strconv.FormatFloat(defaults.Particle.Sigma, 'g', -1, 64))
	sigmaEntry.Validator = positiveFloat("sigma")

	deltaTEntry := widget.NewEntry()
	deltaTEntry.SetText(strconv.Itoa(defaults.DeltaT))
	deltaTEntry.Validator = positiveInt("deltaT")

	items := []*widget.FormItem{
		widget.NewFormItem("Grid points N", nEntry),
		widget.NewFormItem("Spacing dx", dxEntry),
		widget.NewFormItem("Packet center x0", x0Entry),
		widget.NewFormItem("Packet spread sigma", sigmaEntry),
		widget.NewFormItem("Sample every (steps)", deltaTEntry),
	}

	dialog.ShowForm("Simulation parameters", "Run", "Cancel", items, func(ok bool) {
		if !ok {
			onComplete(nil, false)
			return
		}
		sc := defaults
		sc.Grid.N, _ = strconv.Atoi(nEntry.Text)
		sc.Grid.Dx, _ = strconv.ParseFloat(dxEntry.Text, 64)
		sc.Particle.X0, _ = strconv.ParseFloat(x0Entry.Text, 64)
		sc.Particle.Sigma, _ = strconv.ParseFloat(sigmaEntry.Text, 64)
		sc.DeltaT, _ = strconv.Atoi(deltaTEntry.Text)
		onComplete(&sc, true)
	}, parent)
}
