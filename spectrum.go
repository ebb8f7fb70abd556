package fdtd

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Wavenumbers returns the momentum grid matching MomentumDensity, in FFT
// frequency order: [0, 1, ..., n/2-1, -n/2, ..., -1] · 2π/(n·dx).
func (s *Simulation) Wavenumbers() []float64 {
	n := s.grid.Len()
	scale := 2 * math.Pi / (float64(n) * s.grid.Dx())
	ks := make([]float64, n)
	for i := range ks {
		if i < (n+1)/2 {
			ks[i] = float64(i) * scale
		} else {
			ks[i] = float64(i-n) * scale
		}
	}
	return ks
}

// MomentumDensity returns the momentum-space probability density
// |ψ̃(k)|²·dx²/2π of the present state, a diagnostic view of the packet's
// wavenumber content. It does not mutate the simulation.
func (s *Simulation) MomentumDensity() []float64 {
	n := s.grid.Len()
	psi := make([]complex128, n)
	re, im := s.psiR.present(), s.psiI.present()
	for i := range psi {
		psi[i] = complex(re[i], im[i])
	}

	f := fft.FFT(psi)
	norm := s.grid.Dx() * s.grid.Dx() / (2 * math.Pi)
	res := make([]float64, n)
	for i, c := range f {
		a := cmplx.Abs(c)
		res[i] = a * a * norm
	}
	return res
}
