package fdtd

import "gonum.org/v1/gonum/floats"

// triple is a 3-slot ring buffer holding the past, present and future time
// slices of one wavefunction component. Rotation relabels the slots instead
// of copying: the present becomes the past, the future becomes the present,
// and the old past slab is recycled as the slab the next future is written
// into.
type triple struct {
	slabs      [3][]float64
	pa, pr, fu int
}

func newTriple(n int) *triple {
	t := &triple{pa: 0, pr: 1, fu: 2}
	for i := range t.slabs {
		t.slabs[i] = make([]float64, n)
	}
	return t
}

func (t *triple) past() []float64    { return t.slabs[t.pa] }
func (t *triple) present() []float64 { return t.slabs[t.pr] }
func (t *triple) future() []float64  { return t.slabs[t.fu] }

// rotate advances the buffer by one time slice. The rotation order is fixed
// and must not skip slices.
func (t *triple) rotate() {
	t.pa, t.pr, t.fu = t.pr, t.fu, t.pa
}

// seed copies vals into all three slabs. Interior points of the future slab
// are overwritten every step, so after seeding the never-updated boundary
// cells hold their initial values through any number of rotations.
func (t *triple) seed(vals []float64) {
	for i := range t.slabs {
		copy(t.slabs[i], vals)
	}
}

// scale multiplies every slab elementwise by c.
func (t *triple) scale(c float64) {
	for i := range t.slabs {
		floats.Scale(c, t.slabs[i])
	}
}
