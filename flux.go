/*
Copyright © 2026 the Meep authors.
This file is part of Meep.

Meep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Meep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Meep.  If not, see <http://www.gnu.org/licenses/>.
*/

package meep

import "math"

// Flux returns the spectrally resolved power flowing through the near
// surface, one value per registered frequency. The integrand at each
// surface sample is the normal component of Re(E* × H) weighted by the
// sample's signed area, so for an outward-oriented closed surface the
// result is the net radiated power.
func (s *Spectrum) Flux() []float64 {
	out := make([]float64, len(s.Freqs))
	for i := range s.Samples {
		smp := &s.Samples[i]
		w := smp.Weight * smp.DS
		for fi := range out {
			// (E* × H)·n̂ = conj(E_t1)H_t2 - conj(E_t2)H_t1.
			out[fi] += w * real(cmul(smp.F[0][fi], smp.F[3][fi])-cmul(smp.F[1][fi], smp.F[2][fi]))
		}
	}
	return out
}

// FarFlux integrates the far-field Poynting vector over a rectangular
// surface patch normal to dir, centered at center with the given size
// (which must have zero extent along dir), sampled by midpoint
// quadrature at the given resolution. One value per registered
// frequency is returned. Flux is positive in the +dir direction;
// orient by negating the result for the opposite sense.
func (s *Spectrum) FarFlux(dir Direction, center, size Vec, resolution float64) ([]float64, error) {
	if dir < X || dir > Z {
		return nil, errConfig("flux plane requires an explicit normal direction")
	}
	if dir.axis() >= s.Dims {
		return nil, errConfig("flux normal %v does not exist in %d dimensions", dir, s.Dims)
	}
	if size.Get(dir) != 0 {
		return nil, errConfig("flux plane must have zero extent along its normal %v", dir)
	}
	if resolution <= 0 || math.IsInf(resolution, 0) || math.IsNaN(resolution) {
		return nil, errConfig("resolution must be positive and finite, got %g", resolution)
	}
	if err := s.checkQuery(center); err != nil {
		return nil, err
	}

	t1, t2 := dir.tangentials()
	n1, h1 := cellCounts(size.Get(t1), resolution, s.Dims, t1)
	n2, h2 := cellCounts(size.Get(t2), resolution, s.Dims, t2)
	dS := 1.0
	if h1 > 0 {
		dS *= h1
	}
	if h2 > 0 {
		dS *= h2
	}
	corner := center.Sub(size.Scale(0.5))

	out := make([]float64, len(s.Freqs))
	for i1 := 0; i1 < n1; i1++ {
		for i2 := 0; i2 < n2; i2++ {
			p := corner
			p.Set(t1, p.Get(t1)+(float64(i1)+0.5)*h1)
			p.Set(t2, p.Get(t2)+(float64(i2)+0.5)*h2)
			for fi := range out {
				ff := s.farFieldIndexed(p, fi)
				out[fi] += ff.Poynting().Get(dir) * dS
			}
		}
	}
	return out, nil
}

// FarFluxBox integrates the outward far-field flux over all faces of a
// rectangular box, returning the net radiated power per registered
// frequency. It is the far-field counterpart of Flux over a
// BoxRegions surface and should agree with it when both surfaces
// enclose the same sources.
func (s *Spectrum) FarFluxBox(center, size Vec, resolution float64) ([]float64, error) {
	out := make([]float64, len(s.Freqs))
	for _, d := range directions(s.Dims) {
		half := size.Get(d) / 2
		face := size
		face.Set(d, 0)
		for _, sign := range []float64{1, -1} {
			c := center
			c.Set(d, c.Get(d)+sign*half)
			flux, err := s.FarFlux(d, c, face, resolution)
			if err != nil {
				return nil, err
			}
			for fi := range out {
				out[fi] += sign * flux[fi]
			}
		}
	}
	return out, nil
}

// FarFluxCircle integrates the radial far-field flux over a circle of
// the given radius around center, returning the net radiated power per
// registered frequency. Only meaningful for 2D spectra.
func (s *Spectrum) FarFluxCircle(center Vec, radius float64, n int) ([]float64, error) {
	if s.Dims != 2 {
		return nil, errConfig("circle flux requires a 2D simulation, got %d dimensions", s.Dims)
	}
	if radius <= 0 || n <= 0 {
		return nil, errConfig("circle flux requires positive radius and point count, got %g, %d", radius, n)
	}
	if err := s.checkQuery(center); err != nil {
		return nil, err
	}
	dl := 2 * math.Pi * radius / float64(n)
	out := make([]float64, len(s.Freqs))
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * (float64(i) + 0.5) / float64(n))
		p := Vec{X: center.X + radius*cos, Y: center.Y + radius*sin}
		for fi := range out {
			ff := s.farFieldIndexed(p, fi)
			sv := ff.Poynting()
			out[fi] += (sv.X*cos + sv.Y*sin) * dl
		}
	}
	return out, nil
}
