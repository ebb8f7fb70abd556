package main

// PlotData is sent FROM the simulation goroutine TO the GUI goroutine via
// the update channel. It carries one snapshot's curves, ready to redraw.
type PlotData struct {
	// Current simulated time.
	Time float64

	// Sampled curves over the grid.
	Prob []float64
	Real []float64
	Imag []float64

	// Done marks the end of the snapshot sequence; the GUI should stop
	// expecting further frames until a reset.
	Done bool

	// If not nil, an error occurred while rebuilding the simulation.
	// The GUI should display it instead of updating plots.
	Err error
}

// ControlMsg is sent FROM the GUI goroutine TO the simulation goroutine.
type ControlMsg struct {
	// Command is one of "start", "stop" or "reset". Reset rebuilds the
	// simulation from the scenario: a consumed snapshot sequence cannot
	// be rewound.
	Command string
}
