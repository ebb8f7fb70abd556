// Package potential provides the potential-energy shapes a wavefunction can
// scatter against, and a resolver that combines them into a single field.
//
// The contributor set is closed: Null, Point, Barrier and Step. Each shape
// evaluates at a scalar position with At and over an array of positions with
// Eval; the two paths use the same boundary convention.
package potential

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the allowed distance between a point potential's
// position and the nearest grid coordinate. Evaluating a point potential on
// a discrete grid can leave no coordinate close enough to the requested
// position; too loose a tolerance would make the point look like a barrier.
const DefaultTolerance = 1e-4

// Potential is a single contribution to the combined potential field.
// Evaluation is pure; the only observable side effect is a non-fatal
// diagnostic logged when a point potential cannot be placed on the grid.
type Potential interface {
	// At evaluates the potential at a single position.
	At(x float64) float64
	// Eval evaluates the potential over an ordered array of positions,
	// returning an array of the same length.
	Eval(xs []float64) []float64
}

// Resolve sums all contributions over the given positions into one field.
// Contributions compose additively, so a shape that cannot be placed on the
// grid simply adds zero rather than failing the whole resolution.
func Resolve(xs []float64, pots []Potential) []float64 {
	v := make([]float64, len(xs))
	for _, pot := range pots {
		floats.Add(v, pot.Eval(xs))
	}
	return v
}

// Null is the potential of a free particle, identically zero everywhere.
type Null struct{}

// NewNull returns a free-particle potential.
func NewNull() Null { return Null{} }

func (Null) At(x float64) float64 { return 0 }

func (Null) Eval(xs []float64) []float64 { return make([]float64, len(xs)) }

// Point has amplitude A at a single position and is zero everywhere else.
type Point struct {
	A         float64
	Pos       float64
	Tolerance float64
}

// NewPoint returns a point potential of amplitude a at position pos.
// A non-positive tolerance falls back to DefaultTolerance.
func NewPoint(a, pos, tolerance float64) Point {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return Point{A: a, Pos: pos, Tolerance: tolerance}
}

func (p Point) At(x float64) float64 {
	if math.Abs(x-p.Pos) <= p.Tolerance {
		return p.A
	}
	return 0
}

// Eval places the amplitude on the grid coordinate closest to Pos. If the
// positions do not cover Pos, or the closest coordinate misses it by more
// than Tolerance, the contribution is reported and dropped.
func (p Point) Eval(xs []float64) []float64 {
	res := make([]float64, len(xs))
	if len(xs) == 0 {
		return res
	}

	if floats.Min(xs) > p.Pos || floats.Max(xs) < p.Pos {
		Logger().Warn("point potential lies outside the grid range, contributing zero",
			zap.Float64("pos", p.Pos),
			zap.Float64("min", floats.Min(xs)),
			zap.Float64("max", floats.Max(xs)))
		return res
	}

	idx := 0
	best := math.Abs(xs[0] - p.Pos)
	for i, x := range xs {
		if d := math.Abs(x - p.Pos); d < best {
			idx, best = i, d
		}
	}

	if best > p.Tolerance {
		Logger().Warn("closest grid coordinate is outside the point tolerance, contributing zero",
			zap.Float64("pos", p.Pos),
			zap.Float64("closest", xs[idx]),
			zap.Float64("tolerance", p.Tolerance))
		return res
	}

	res[idx] = p.A
	return res
}

// Barrier has amplitude A on the closed interval [Pos-Width, Pos+Width] and
// is zero elsewhere.
type Barrier struct {
	A     float64
	Width float64
	Pos   float64
}

// NewBarrier returns a barrier of amplitude a and half-width width centered
// at pos.
func NewBarrier(a, width, pos float64) Barrier {
	return Barrier{A: a, Width: width, Pos: pos}
}

func (b Barrier) At(x float64) float64 {
	if x >= b.Pos-b.Width && x <= b.Pos+b.Width {
		return b.A
	}
	return 0
}

func (b Barrier) Eval(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = b.At(x)
	}
	return res
}

// Step has amplitude A strictly left of Pos and is zero at and beyond Pos.
type Step struct {
	A   float64
	Pos float64
}

// NewStep returns a step potential of amplitude a located at pos.
func NewStep(a, pos float64) Step {
	return Step{A: a, Pos: pos}
}

func (s Step) At(x float64) float64 {
	if x < s.Pos {
		return s.A
	}
	return 0
}

func (s Step) Eval(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = s.At(x)
	}
	return res
}
