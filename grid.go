package fdtd

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is an ordered sequence of equally spaced spatial coordinates.
// It is immutable after construction.
type Grid struct {
	xs []float64
	dx float64
}

// NewGrid builds a grid of n coordinates starting at start with spacing dx.
func NewGrid(start, dx float64, n int) (Grid, error) {
	if n <= 0 {
		return Grid{}, errors.New("grid point count (N) must be positive")
	}
	if dx <= 0 {
		return Grid{}, errors.New("grid spacing (dx) must be positive")
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = start
	} else {
		floats.Span(xs, start, start+dx*float64(n-1))
	}
	return Grid{xs: xs, dx: dx}, nil
}

// NewGridFromLimits builds a grid covering [start, end) with spacing dx,
// holding every coordinate start + i*dx strictly below end.
func NewGridFromLimits(start, end, dx float64) (Grid, error) {
	if dx <= 0 {
		return Grid{}, errors.New("grid spacing (dx) must be positive")
	}
	if end <= start {
		return Grid{}, errors.New("grid limits must satisfy start < end")
	}
	n := int(math.Ceil((end - start) / dx))
	// Guard against end landing exactly on a grid point after rounding;
	// the interval is half-open.
	if start+float64(n-1)*dx >= end {
		n--
	}
	return NewGrid(start, dx, n)
}

// Len returns the number of grid points.
func (g Grid) Len() int { return len(g.xs) }

// Dx returns the grid spacing.
func (g Grid) Dx() float64 { return g.dx }

// Points returns a copy of the grid coordinates.
func (g Grid) Points() []float64 {
	xs := make([]float64, len(g.xs))
	copy(xs, g.xs)
	return xs
}
